package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EvaluationRecord is the archived row of a DesignEvaluation.
type EvaluationRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileName         string    `gorm:"type:varchar(255)" json:"file_name"`
	UploadDate       time.Time `json:"upload_date"`
	Status           string    `gorm:"type:varchar(50)" json:"status"` // processing, completed, error
	TotalScore       float64   `gorm:"type:float" json:"total_score"`
	MaxPossibleScore float64   `gorm:"type:float" json:"max_possible_score"`
	Criteria         string    `gorm:"type:jsonb" json:"criteria"`
	OverallFeedback  string    `gorm:"type:text" json:"overall_feedback"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r *EvaluationRecord) TableName() string {
	return "design_evaluations"
}

func NewEvaluationRecord(e *DesignEvaluation) (*EvaluationRecord, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid evaluation id %q: %w", e.ID, err)
	}
	criteria, err := json.Marshal(e.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to encode criteria: %w", err)
	}
	return &EvaluationRecord{
		ID:               id,
		FileName:         e.FileName,
		UploadDate:       e.UploadDate,
		Status:           string(e.Status),
		TotalScore:       e.TotalScore,
		MaxPossibleScore: e.MaxPossibleScore,
		Criteria:         string(criteria),
		OverallFeedback:  e.OverallFeedback,
	}, nil
}

func (r *EvaluationRecord) Evaluation() (*DesignEvaluation, error) {
	var criteria []CriteriaItem
	if r.Criteria != "" {
		if err := json.Unmarshal([]byte(r.Criteria), &criteria); err != nil {
			return nil, fmt.Errorf("failed to decode criteria of %s: %w", r.ID, err)
		}
	}
	return &DesignEvaluation{
		ID:               r.ID.String(),
		FileName:         r.FileName,
		UploadDate:       r.UploadDate,
		Status:           EvaluationStatus(r.Status),
		TotalScore:       r.TotalScore,
		MaxPossibleScore: r.MaxPossibleScore,
		Criteria:         criteria,
		OverallFeedback:  r.OverallFeedback,
	}, nil
}
