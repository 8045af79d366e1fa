package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation() *DesignEvaluation {
	return &DesignEvaluation{
		ID:               uuid.NewString(),
		FileName:         "plans.pdf",
		UploadDate:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:           StatusCompleted,
		TotalScore:       12,
		MaxPossibleScore: 20,
		Criteria: []CriteriaItem{
			{ID: "a", Name: "A", Score: 8, MaxScore: 10},
			{ID: "b", Name: "B", Score: 4, MaxScore: 10},
		},
		OverallFeedback: "ok",
	}
}

func TestDesignEvaluation_SumScores(t *testing.T) {
	e := sampleEvaluation()
	total, max := e.SumScores()
	assert.Equal(t, 12.0, total)
	assert.Equal(t, 20.0, max)
	assert.True(t, e.Consistent())
}

func TestDesignEvaluation_Normalized(t *testing.T) {
	e := sampleEvaluation()
	e.TotalScore = 99

	n := e.Normalized()
	assert.Equal(t, 12.0, n.TotalScore)
	assert.Equal(t, 20.0, n.MaxPossibleScore)
	assert.Equal(t, 99.0, e.TotalScore, "original must not change")

	n.Criteria[0].Score = 0
	assert.Equal(t, 8.0, e.Criteria[0].Score, "criteria slice must be copied")
}

func TestDesignEvaluation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *DesignEvaluation)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *DesignEvaluation) {}},
		{name: "missing file name", mutate: func(e *DesignEvaluation) { e.FileName = "" }, wantErr: true},
		{name: "unknown status", mutate: func(e *DesignEvaluation) { e.Status = "done" }, wantErr: true},
		{name: "score above max", mutate: func(e *DesignEvaluation) { e.Criteria[0].Score = 11 }, wantErr: true},
		{name: "negative score", mutate: func(e *DesignEvaluation) { e.Criteria[1].Score = -1 }, wantErr: true},
		{name: "zero max", mutate: func(e *DesignEvaluation) { e.Criteria[1].MaxScore = 0; e.Criteria[1].Score = 0 }, wantErr: true},
		{name: "score equals max", mutate: func(e *DesignEvaluation) { e.Criteria[0].Score = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sampleEvaluation()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvaluationRecord_RoundTrip(t *testing.T) {
	e := sampleEvaluation()

	rec, err := NewEvaluationRecord(e)
	require.NoError(t, err)
	assert.Equal(t, "completed", rec.Status)
	assert.Contains(t, rec.Criteria, `"maxScore":10`)

	back, err := rec.Evaluation()
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

func TestNewEvaluationRecord_InvalidID(t *testing.T) {
	e := sampleEvaluation()
	e.ID = "not-a-uuid"
	_, err := NewEvaluationRecord(e)
	assert.Error(t, err)
}
