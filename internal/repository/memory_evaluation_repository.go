package repository

import (
	"context"
	"sync"

	"github.com/fadilmartias/design-evaluator/internal/model"
)

// MemoryEvaluationRepository keeps evaluations in process memory. It is used
// when no database is configured.
type MemoryEvaluationRepository struct {
	mu    sync.RWMutex
	byID  map[string]*model.DesignEvaluation
	order []string
}

func NewMemoryEvaluationRepository() *MemoryEvaluationRepository {
	return &MemoryEvaluationRepository{byID: make(map[string]*model.DesignEvaluation)}
}

func (r *MemoryEvaluationRepository) Save(ctx context.Context, eval *model.DesignEvaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[eval.ID]; !ok {
		r.order = append(r.order, eval.ID)
	}
	r.byID[eval.ID] = eval
	return nil
}

func (r *MemoryEvaluationRepository) FindByID(ctx context.Context, id string) (*model.DesignEvaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// List returns evaluations newest first.
func (r *MemoryEvaluationRepository) List(ctx context.Context, offset, limit int) ([]model.DesignEvaluation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.order))
	out := []model.DesignEvaluation{}
	for i := len(r.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.byID[r.order[i]])
	}
	return out, total, nil
}
