package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluation() *model.DesignEvaluation {
	return &model.DesignEvaluation{
		ID:               "e1",
		FileName:         "plans.pdf",
		UploadDate:       time.Date(2026, 4, 9, 14, 5, 6, 0, time.UTC),
		Status:           model.StatusCompleted,
		TotalScore:       17,
		MaxPossibleScore: 30,
		Criteria: []model.CriteriaItem{
			{ID: "hi", Name: "High", Description: "top", Score: 8, MaxScore: 10, Feedback: "great"},
			{ID: "mid", Name: "Mid", Description: "middle", Score: 5, MaxScore: 10, Feedback: "fine"},
			{ID: "lo", Name: "Low", Description: "bottom", Score: 4, MaxScore: 10, Feedback: "<b>weak</b>"},
		},
		OverallFeedback: "Solid set & mostly coordinated.",
	}
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 56.6667, Percentage(17, 30), 0.001)
	assert.Equal(t, 150.0, Percentage(15, 10), "inconsistent data is not clamped")
	assert.Equal(t, -10.0, Percentage(-1, 10))
	assert.True(t, math.IsInf(Percentage(1, 0), 1))
	assert.True(t, math.IsNaN(Percentage(0, 0)))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{100, TierFavorable},
		{80, TierFavorable},
		{79.99, TierNeutral},
		{60, TierNeutral},
		{40.01, TierNeutral},
		{40, TierUnfavorable},
		{0, TierUnfavorable},
		{math.NaN(), TierNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.pct), "pct=%v", tt.pct)
	}
}

func TestStatusIndicator(t *testing.T) {
	assert.Equal(t, IndicatorPositive, StatusIndicator(model.StatusCompleted).Kind)
	assert.Equal(t, IndicatorInProgress, StatusIndicator(model.StatusProcessing).Kind)
	assert.Equal(t, IndicatorError, StatusIndicator(model.StatusError).Kind)
	assert.Equal(t, IndicatorError, StatusIndicator("unknown").Kind)
	assert.Equal(t, "Completed", StatusIndicator(model.StatusCompleted).Label)
}

func TestBuild(t *testing.T) {
	assert.Nil(t, Build(nil))

	v := Build(evaluation())
	require.NotNil(t, v)
	assert.Equal(t, "plans.pdf", v.FileName)
	assert.InDelta(t, 100*17.0/30.0, v.Percentage, 1e-9)
	require.Len(t, v.Cards, 3)
	assert.Equal(t, TierFavorable, v.Cards[0].Tier)
	assert.Equal(t, TierNeutral, v.Cards[1].Tier)
	assert.Equal(t, TierUnfavorable, v.Cards[2].Tier)
	assert.Equal(t, "hi", v.Cards[0].ID, "criteria order is preserved")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "57%", FormatPercent(56.6667))
	assert.Equal(t, "0%", FormatPercent(math.NaN()))
	assert.Equal(t, "0%", FormatPercent(math.Inf(1)))
	assert.Equal(t, "7.5", FormatScore(7.5))
	assert.Equal(t, "8", FormatScore(8))
	assert.Equal(t, 100.0, BarWidth(150))
	assert.Equal(t, 0.0, BarWidth(-3))
	assert.Equal(t, 0.0, BarWidth(math.NaN()))
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, nil))
	assert.Empty(t, buf.String())

	require.NoError(t, RenderHTML(&buf, Build(evaluation())))
	html := buf.String()
	assert.Contains(t, html, "plans.pdf")
	assert.Contains(t, html, "17/30")
	assert.Contains(t, html, "(57%)")
	assert.Contains(t, html, "status-positive")
	assert.Contains(t, html, "tier-favorable")
	assert.Contains(t, html, "tier-unfavorable")
	assert.Contains(t, html, "Apr 9, 2026 at 2:05:06 PM")
	assert.Contains(t, html, "&lt;b&gt;weak&lt;/b&gt;")
	assert.NotContains(t, html, "<b>weak</b>")
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, Page{
		AppName:      "Evaluator",
		FileName:     "plans.pdf",
		IsEvaluating: true,
		Toasts:       []Toast{{Variant: "destructive", Title: "No file selected"}},
		Year:         2026,
	}))
	html := buf.String()
	assert.Contains(t, html, "Design Quality Assurance")
	assert.Contains(t, html, "Analyzing your design...")
	assert.Contains(t, html, "Evaluating...")
	assert.Contains(t, html, `http-equiv="refresh"`)
	assert.Contains(t, html, "toast-destructive")
	assert.Contains(t, html, "Selected: plans.pdf")

	buf.Reset()
	require.NoError(t, RenderPage(&buf, Page{AppName: "Evaluator", Report: Build(evaluation()), Year: 2026}))
	html = buf.String()
	assert.Contains(t, html, "Quality Check")
	assert.Contains(t, html, "Evaluate Another Plan Set")
	assert.Contains(t, html, "Overall Feedback")
	assert.NotContains(t, html, "Upload your Plan Set")
}

func TestRenderTerminal(t *testing.T) {
	assert.Empty(t, RenderTerminal(nil))

	out := RenderTerminal(Build(evaluation()))
	assert.Contains(t, out, "Design Evaluation Results")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "17/30")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "<b>weak</b>")
}
