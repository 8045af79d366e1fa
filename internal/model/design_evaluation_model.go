package model

import (
	"errors"
	"fmt"
	"time"
)

type EvaluationStatus string

const (
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusError      EvaluationStatus = "error"
)

// CriteriaItem is one scored dimension of an evaluation.
type CriteriaItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"maxScore"`
	Feedback    string  `json:"feedback"`
}

func (c CriteriaItem) Validate() error {
	if c.MaxScore <= 0 {
		return fmt.Errorf("criterion %q: max score must be positive, got %v", c.ID, c.MaxScore)
	}
	if c.Score < 0 || c.Score > c.MaxScore {
		return fmt.Errorf("criterion %q: score %v outside [0, %v]", c.ID, c.Score, c.MaxScore)
	}
	return nil
}

// DesignEvaluation is the complete result of scoring one uploaded plan set.
// Records are built once by an evaluator and treated as read-only afterwards.
type DesignEvaluation struct {
	ID               string           `json:"id,omitempty"`
	FileName         string           `json:"fileName"`
	UploadDate       time.Time        `json:"uploadDate"`
	Status           EvaluationStatus `json:"status"`
	TotalScore       float64          `json:"totalScore"`
	MaxPossibleScore float64          `json:"maxPossibleScore"`
	Criteria         []CriteriaItem   `json:"criteria"`
	OverallFeedback  string           `json:"overallFeedback"`
}

// SumScores returns the totals implied by the criteria list.
func (e *DesignEvaluation) SumScores() (total, max float64) {
	for _, c := range e.Criteria {
		total += c.Score
		max += c.MaxScore
	}
	return total, max
}

// Consistent reports whether the stored totals match the criteria.
func (e *DesignEvaluation) Consistent() bool {
	total, max := e.SumScores()
	return total == e.TotalScore && max == e.MaxPossibleScore
}

// Normalized returns a copy whose totals are recomputed from the criteria.
// The criteria slice is copied so the original record is left untouched.
func (e *DesignEvaluation) Normalized() *DesignEvaluation {
	out := *e
	out.Criteria = append([]CriteriaItem(nil), e.Criteria...)
	out.TotalScore, out.MaxPossibleScore = out.SumScores()
	return &out
}

func (e *DesignEvaluation) Validate() error {
	var errs []error
	if e.FileName == "" {
		errs = append(errs, errors.New("file name is required"))
	}
	switch e.Status {
	case StatusProcessing, StatusCompleted, StatusError:
	default:
		errs = append(errs, fmt.Errorf("unknown status %q", e.Status))
	}
	for _, c := range e.Criteria {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
