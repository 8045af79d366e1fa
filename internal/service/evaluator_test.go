package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		max      int64
		wantErr  bool
	}{
		{name: "valid pdf", fileName: "plans.pdf", size: 1024, max: 2048},
		{name: "upper case extension", fileName: "PLANS.PDF", size: 1024, max: 2048},
		{name: "no limit", fileName: "plans.pdf", size: 1 << 30, max: 0},
		{name: "empty name", fileName: " ", size: 10, max: 0, wantErr: true},
		{name: "wrong extension", fileName: "plans.docx", size: 10, max: 0, wantErr: true},
		{name: "no extension", fileName: "plans", size: 10, max: 0, wantErr: true},
		{name: "empty file", fileName: "plans.pdf", size: 0, max: 0, wantErr: true},
		{name: "too large", fileName: "plans.pdf", size: 2049, max: 2048, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.fileName, tt.size, tt.max)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMockEvaluationResults(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	eval := MockEvaluationResults("plans.pdf", at)

	assert.Equal(t, "plans.pdf", eval.FileName)
	assert.Equal(t, at, eval.UploadDate)
	assert.Equal(t, model.StatusCompleted, eval.Status)
	assert.NotEmpty(t, eval.ID)
	assert.NotEmpty(t, eval.Criteria)
	assert.True(t, eval.Consistent())
	assert.NoError(t, eval.Validate())

	other := MockEvaluationResults("other.pdf", at)
	assert.NotEqual(t, eval.ID, other.ID)
	other.Criteria[0].Score = 0
	assert.NotEqual(t, other.Criteria[0].Score, eval.Criteria[0].Score, "records must not share criteria storage")
}

func TestMockEvaluator_Evaluate(t *testing.T) {
	selected := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMockEvaluator(5 * time.Millisecond)

	eval, err := m.Evaluate(context.Background(), model.UploadedFile{Name: "plans.pdf", SelectedAt: selected})
	require.NoError(t, err)
	assert.Equal(t, "plans.pdf", eval.FileName)
	assert.Equal(t, selected, eval.UploadDate)
}

func TestMockEvaluator_UsesClockWithoutSelectionTime(t *testing.T) {
	fixed := time.Date(2026, 7, 7, 7, 7, 7, 0, time.UTC)
	m := &MockEvaluator{Now: func() time.Time { return fixed }}

	eval, err := m.Evaluate(context.Background(), model.UploadedFile{Name: "plans.pdf"})
	require.NoError(t, err)
	assert.Equal(t, fixed, eval.UploadDate)
}

func TestMockEvaluator_Cancelled(t *testing.T) {
	m := NewMockEvaluator(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Evaluate(ctx, model.UploadedFile{Name: "plans.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockEvaluator_RequiresName(t *testing.T) {
	_, err := NewMockEvaluator(0).Evaluate(context.Background(), model.UploadedFile{})
	assert.True(t, errors.Is(err, ErrInvalidFile))
}
