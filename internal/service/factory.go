package service

import (
	"fmt"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/config"
)

// NewEvaluator builds the evaluator selected by cfg. Remote evaluators are
// wrapped with retry and a call timeout.
func NewEvaluator(cfg *config.EvaluatorConfig) (Evaluator, error) {
	switch cfg.Mode {
	case config.EvaluatorModeMock, "":
		return NewMockEvaluator(cfg.Delay), nil
	case config.EvaluatorModeRemote:
		remote, err := NewRemoteEvaluator(cfg.BackendURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return NewResilientEvaluator(remote, cfg.MaxAttempts, 500*time.Millisecond, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown evaluator mode %q", cfg.Mode)
	}
}
