package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrPermanent marks failures that would fail the same way on retry: the
// backend rejected the request or answered with an unusable record.
var ErrPermanent = errors.New("permanent evaluation failure")

// RemoteEvaluator submits the file to an evaluation backend exposing
// POST /api/evaluate and decodes the record from the response envelope.
type RemoteEvaluator struct {
	client *resty.Client
}

func NewRemoteEvaluator(baseURL string, timeout time.Duration) (*RemoteEvaluator, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("EVALUATOR_BACKEND_URL not set")
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RemoteEvaluator{client: client}, nil
}

func (s *RemoteEvaluator) Evaluate(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, bytes.NewReader(file.Data)).
		Post("/api/evaluate")
	if err != nil {
		return nil, fmt.Errorf("evaluate request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "message").String()
		if msg == "" {
			msg = gjson.Get(body, "error").String()
		}
		if msg == "" {
			msg = resp.Status()
		}
		err := fmt.Errorf("evaluation backend returned %d: %s", resp.StatusCode(), msg)
		if resp.StatusCode() < http.StatusInternalServerError && resp.StatusCode() != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %w", ErrPermanent, err)
		}
		return nil, err
	}

	data := gjson.Get(body, "data")
	if !data.Exists() || !data.IsObject() {
		return nil, fmt.Errorf("%w: evaluation backend response has no data object", ErrPermanent)
	}

	var eval model.DesignEvaluation
	if err := json.Unmarshal([]byte(data.Raw), &eval); err != nil {
		return nil, fmt.Errorf("%w: failed to decode evaluation: %w", ErrPermanent, err)
	}
	if err := eval.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid evaluation from backend: %w", ErrPermanent, err)
	}

	if !eval.Consistent() {
		log.Printf("Warning: backend totals %v/%v for %s disagree with criteria, recomputing",
			eval.TotalScore, eval.MaxPossibleScore, eval.FileName)
		return eval.Normalized(), nil
	}
	return &eval, nil
}
