package service

import (
	"context"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilientEvaluator retries a failing evaluator and bounds the whole call.
// ErrPermanent failures and cancellations are returned without retrying.
type ResilientEvaluator struct {
	inner       Evaluator
	retryConfig retry.Config
	timeout     time.Duration
}

func NewResilientEvaluator(inner Evaluator, maxAttempts int, initialDelay, callTimeout time.Duration) *ResilientEvaluator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if callTimeout <= 0 {
		callTimeout = 90 * time.Second
	}
	return &ResilientEvaluator{
		inner: inner,
		retryConfig: retry.Config{
			MaxAttempts:        maxAttempts,
			InitialDelay:       initialDelay,
			BackoffPolicy:      retry.BackoffExponential,
			NonRetryableErrors: []error{ErrPermanent, context.Canceled},
		},
		timeout: callTimeout,
	}
}

func (e *ResilientEvaluator) Evaluate(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error) {
	r := retry.New[*model.DesignEvaluation](e.retryConfig)
	t := timeout.New[*model.DesignEvaluation](timeout.Config{
		DefaultTimeout: e.timeout,
	})

	return t.Execute(ctx, e.timeout, func(ctx context.Context) (*model.DesignEvaluation, error) {
		return r.Do(ctx, func(ctx context.Context) (*model.DesignEvaluation, error) {
			return e.inner.Evaluate(ctx, file)
		})
	})
}
