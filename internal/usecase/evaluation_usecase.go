package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/fadilmartias/design-evaluator/internal/repository"
	"github.com/fadilmartias/design-evaluator/internal/response"
	"github.com/fadilmartias/design-evaluator/internal/service"
)

var ErrNoResult = errors.New("evaluator returned no result")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// EvaluationUsecase is the backend side of the evaluation seam: it scores an
// uploaded file right away and archives the record.
type EvaluationUsecase struct {
	evaluationRepo repository.EvaluationRepositoryInterface
	evaluator      service.Evaluator
}

func NewEvaluationUsecase(evaluationRepo repository.EvaluationRepositoryInterface, evaluator service.Evaluator) *EvaluationUsecase {
	return &EvaluationUsecase{evaluationRepo: evaluationRepo, evaluator: evaluator}
}

func (uc *EvaluationUsecase) Submit(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error) {
	eval, err := uc.evaluator.Evaluate(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("evaluation of %s failed: %w", file.Name, err)
	}
	if eval == nil {
		return nil, fmt.Errorf("evaluation of %s failed: %w", file.Name, ErrNoResult)
	}
	if err := eval.Validate(); err != nil {
		return nil, fmt.Errorf("evaluation of %s produced an invalid record: %w", file.Name, err)
	}
	if err := uc.evaluationRepo.Save(ctx, eval); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	log.Printf("Evaluation %s stored for %s", eval.ID, eval.FileName)
	return eval, nil
}

func (uc *EvaluationUsecase) GetResult(ctx context.Context, id string) (*model.DesignEvaluation, error) {
	return uc.evaluationRepo.FindByID(ctx, id)
}

func (uc *EvaluationUsecase) List(ctx context.Context, page, pageSize int) ([]model.DesignEvaluation, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	offset := (page - 1) * pageSize
	items, total, err := uc.evaluationRepo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	return items, response.NewPagination(page, pageSize, len(items), total), nil
}
