package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ EvaluationRepositoryInterface = (*EvaluationRepository)(nil)
var _ EvaluationRepositoryInterface = (*MemoryEvaluationRepository)(nil)

func TestMemoryEvaluationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &model.DesignEvaluation{
			ID:         fmt.Sprintf("id-%d", i),
			FileName:   fmt.Sprintf("plan-%d.pdf", i),
			UploadDate: time.Now(),
			Status:     model.StatusCompleted,
		}))
	}

	got, err := repo.FindByID(ctx, "id-2")
	require.NoError(t, err)
	assert.Equal(t, "plan-2.pdf", got.FileName)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	page, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "id-4", page[0].ID)
	assert.Equal(t, "id-3", page[1].ID)

	page, _, err = repo.List(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "id-0", page[0].ID)

	page, _, err = repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryEvaluationRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEvaluationRepository()

	require.NoError(t, repo.Save(ctx, &model.DesignEvaluation{ID: "a", FileName: "one.pdf"}))
	require.NoError(t, repo.Save(ctx, &model.DesignEvaluation{ID: "a", FileName: "two.pdf"}))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "two.pdf", got.FileName)

	_, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
