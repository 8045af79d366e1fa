// Package report turns an evaluation record into a presentation model and
// renders it as HTML or terminal text. Building the view has no side effects.
package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
)

type Tier string

const (
	TierFavorable   Tier = "favorable"
	TierNeutral     Tier = "neutral"
	TierUnfavorable Tier = "unfavorable"
)

type IndicatorKind string

const (
	IndicatorPositive   IndicatorKind = "positive"
	IndicatorInProgress IndicatorKind = "in_progress"
	IndicatorError      IndicatorKind = "error"
)

type Indicator struct {
	Kind  IndicatorKind
	Label string
}

type Card struct {
	ID          string
	Name        string
	Description string
	Score       float64
	MaxScore    float64
	Feedback    string
	Percentage  float64
	Tier        Tier
}

type View struct {
	FileName         string
	UploadDate       time.Time
	Status           Indicator
	TotalScore       float64
	MaxPossibleScore float64
	Percentage       float64
	OverallFeedback  string
	Cards            []Card
}

// Percentage is score/max*100. Inconsistent input is not clamped and a zero
// max yields NaN or Inf.
func Percentage(score, max float64) float64 {
	return score / max * 100
}

// TierFor maps a percentage to a color tier: >=80 favorable, <=40 unfavorable.
func TierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierFavorable
	case pct <= 40:
		return TierUnfavorable
	default:
		return TierNeutral
	}
}

func StatusIndicator(status model.EvaluationStatus) Indicator {
	switch status {
	case model.StatusCompleted:
		return Indicator{Kind: IndicatorPositive, Label: "Completed"}
	case model.StatusProcessing:
		return Indicator{Kind: IndicatorInProgress, Label: "Processing"}
	default:
		return Indicator{Kind: IndicatorError, Label: "Error"}
	}
}

// Build returns nil for a nil evaluation.
func Build(e *model.DesignEvaluation) *View {
	if e == nil {
		return nil
	}
	v := &View{
		FileName:         e.FileName,
		UploadDate:       e.UploadDate,
		Status:           StatusIndicator(e.Status),
		TotalScore:       e.TotalScore,
		MaxPossibleScore: e.MaxPossibleScore,
		Percentage:       Percentage(e.TotalScore, e.MaxPossibleScore),
		OverallFeedback:  e.OverallFeedback,
		Cards:            make([]Card, 0, len(e.Criteria)),
	}
	for _, c := range e.Criteria {
		pct := Percentage(c.Score, c.MaxScore)
		v.Cards = append(v.Cards, Card{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Score:       c.Score,
			MaxScore:    c.MaxScore,
			Feedback:    c.Feedback,
			Percentage:  pct,
			Tier:        TierFor(pct),
		})
	}
	return v
}

// FormatPercent renders a percentage with no decimals, "0%" when not finite.
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", pct)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func FormatTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// BarWidth is the percentage clamped to [0, 100] for drawing progress bars.
func BarWidth(pct float64) float64 {
	switch {
	case math.IsNaN(pct) || pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
