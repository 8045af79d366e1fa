package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/design-evaluator/internal/model"
)

var ErrInvalidFile = errors.New("invalid file")

// Evaluator produces an evaluation record for one uploaded file. It is the
// seam between the workflow controller and whatever does the scoring.
type Evaluator interface {
	Evaluate(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error)
}

type EvaluatorFunc func(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error) {
	return f(ctx, file)
}

// ValidateUpload checks the name and size of an uploaded plan set. A
// maxBytes of zero disables the size limit.
func ValidateUpload(name string, size, maxBytes int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidFile)
	}
	if ext := strings.ToLower(filepath.Ext(name)); ext != ".pdf" {
		return fmt.Errorf("%w: unsupported file type %q, expected .pdf", ErrInvalidFile, ext)
	}
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidFile)
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: file size %d exceeds limit of %d bytes", ErrInvalidFile, size, maxBytes)
	}
	return nil
}
