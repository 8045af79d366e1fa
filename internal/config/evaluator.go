package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	EvaluatorModeMock   = "mock"
	EvaluatorModeRemote = "remote"
)

// EvaluatorConfig selects the workflow's evaluator. MaxAttempts counts the
// first call, so 1 disables retries.
type EvaluatorConfig struct {
	Mode        string
	Delay       time.Duration
	BackendURL  string
	Timeout     time.Duration
	MaxAttempts int
}

var (
	evaluatorConfig *EvaluatorConfig
	evaluatorOnce   sync.Once
)

func LoadEvaluatorConfig() *EvaluatorConfig {
	evaluatorOnce.Do(func() {
		mode := os.Getenv("EVALUATOR_MODE")
		switch mode {
		case "":
			mode = EvaluatorModeMock
		case EvaluatorModeMock, EvaluatorModeRemote:
		default:
			log.Printf("Warning: unknown EVALUATOR_MODE %q, defaulting to %s", mode, EvaluatorModeMock)
			mode = EvaluatorModeMock
		}

		attempts := 3
		if raw := os.Getenv("EVALUATOR_MAX_ATTEMPTS"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 {
				attempts = v
			} else {
				log.Printf("Warning: invalid EVALUATOR_MAX_ATTEMPTS=%q, using %d", raw, attempts)
			}
		}

		evaluatorConfig = &EvaluatorConfig{
			Mode:        mode,
			Delay:       getEnvDuration("EVALUATOR_DELAY", 3*time.Second),
			BackendURL:  os.Getenv("EVALUATOR_BACKEND_URL"),
			Timeout:     getEnvDuration("EVALUATOR_TIMEOUT", 90*time.Second),
			MaxAttempts: attempts,
		}
	})
	return evaluatorConfig
}
