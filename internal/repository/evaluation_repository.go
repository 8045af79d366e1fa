package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("evaluation not found")

type EvaluationRepositoryInterface interface {
	Save(ctx context.Context, eval *model.DesignEvaluation) error
	FindByID(ctx context.Context, id string) (*model.DesignEvaluation, error)
	List(ctx context.Context, offset, limit int) ([]model.DesignEvaluation, int64, error)
}

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

func (r *EvaluationRepository) Save(ctx context.Context, eval *model.DesignEvaluation) error {
	rec, err := model.NewEvaluationRecord(eval)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*model.DesignEvaluation, error) {
	// ids are uuid columns; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var rec model.EvaluationRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find evaluation %s: %w", id, err)
	}
	return rec.Evaluation()
}

func (r *EvaluationRepository) List(ctx context.Context, offset, limit int) ([]model.DesignEvaluation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.EvaluationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	var recs []model.EvaluationRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}

	out := make([]model.DesignEvaluation, 0, len(recs))
	for i := range recs {
		e, err := recs[i].Evaluation()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	return out, total, nil
}
