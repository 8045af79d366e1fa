package service

import (
	"testing"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluator(t *testing.T) {
	ev, err := NewEvaluator(&config.EvaluatorConfig{Mode: config.EvaluatorModeMock, Delay: time.Second})
	require.NoError(t, err)
	mock, ok := ev.(*MockEvaluator)
	require.True(t, ok)
	assert.Equal(t, time.Second, mock.Delay)

	ev, err = NewEvaluator(&config.EvaluatorConfig{
		Mode:        config.EvaluatorModeRemote,
		BackendURL:  "http://localhost:9999",
		Timeout:     time.Second,
		MaxAttempts: 2,
	})
	require.NoError(t, err)
	resilient, ok := ev.(*ResilientEvaluator)
	require.True(t, ok)
	assert.Equal(t, 2, resilient.retryConfig.MaxAttempts, "attempts include the first call")

	_, err = NewEvaluator(&config.EvaluatorConfig{Mode: config.EvaluatorModeRemote})
	assert.Error(t, err)

	_, err = NewEvaluator(&config.EvaluatorConfig{Mode: "llm"})
	assert.Error(t, err)
}
