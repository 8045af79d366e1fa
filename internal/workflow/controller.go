package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/fadilmartias/design-evaluator/internal/service"
)

var (
	ErrNoFileSelected         = errors.New("no file selected")
	ErrEvaluationInProgress   = errors.New("evaluation already in progress")
	ErrControllerClosed       = errors.New("controller closed")
	errEvaluatorReturnedEmpty = errors.New("evaluator returned no result")
)

// FileInfo describes the selected file without its contents.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type,omitempty"`
	SelectedAt time.Time `json:"selectedAt"`
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	State        State                   `json:"state"`
	File         *FileInfo               `json:"file,omitempty"`
	IsEvaluating bool                    `json:"isEvaluating"`
	Result       *model.DesignEvaluation `json:"result,omitempty"`
	LastError    string                  `json:"lastError,omitempty"`
}

// Controller drives one user's upload and evaluation workflow:
// idle -> file_selected -> evaluating -> completed, with reset back to idle.
// At most one evaluation runs at a time. Selecting another file, resetting or
// closing cancels the running evaluation and its outcome is discarded.
type Controller struct {
	mu        sync.Mutex
	fsm       *machine
	evaluator service.Evaluator
	notifier  Notifier

	file    *model.UploadedFile
	result  *model.DesignEvaluation
	lastErr error

	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	wg         sync.WaitGroup
	closed     bool
}

func NewController(evaluator service.Evaluator, notifier Notifier) (*Controller, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	c := &Controller{evaluator: evaluator, notifier: notifier}
	fsm, err := newMachine(func() bool { return c.file != nil })
	if err != nil {
		return nil, err
	}
	c.fsm = fsm
	return c, nil
}

// Select stores file as the current selection and drops any previous result.
func (c *Controller) Select(file model.UploadedFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrControllerClosed
	}
	if file.Name == "" {
		return fmt.Errorf("%w: file name is required", service.ErrInvalidFile)
	}
	if file.SelectedAt.IsZero() {
		file.SelectedAt = time.Now()
	}

	c.cancelInFlight()
	if c.fsm.current() != StateFileSelected {
		if err := c.fsm.send(eventSelect); err != nil {
			return err
		}
	}
	c.file = &file
	c.result = nil
	c.lastErr = nil
	return nil
}

// Evaluate starts evaluating the selected file in the background. Without a
// selection it raises a validation notification and leaves the state alone.
// A call while an evaluation is running is ignored with ErrEvaluationInProgress.
func (c *Controller) Evaluate() error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.fsm.current() == StateEvaluating {
		c.mu.Unlock()
		return ErrEvaluationInProgress
	}
	if c.file == nil {
		c.mu.Unlock()
		c.notifier.Notify(noFileSelected)
		return ErrNoFileSelected
	}
	if err := c.fsm.send(eventEvaluate); err != nil {
		c.mu.Unlock()
		return err
	}

	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.lastErr = nil
	file := *c.file

	c.wg.Add(1)
	c.mu.Unlock()

	log.Printf("Evaluation started for %s", file.Name)
	go c.run(ctx, gen, file, done)
	return nil
}

func (c *Controller) run(ctx context.Context, gen uint64, file model.UploadedFile, done chan struct{}) {
	defer c.wg.Done()
	defer close(done)

	eval, err := c.evaluator.Evaluate(ctx, file)
	if err == nil && eval == nil {
		err = errEvaluatorReturnedEmpty
	}
	c.finish(gen, eval, err)
}

func (c *Controller) finish(gen uint64, eval *model.DesignEvaluation, err error) {
	c.mu.Lock()

	if c.closed || gen != c.generation || c.fsm.current() != StateEvaluating {
		c.mu.Unlock()
		log.Printf("Discarding stale evaluation result (generation %d)", gen)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var n Notification
	if err != nil {
		if sendErr := c.fsm.send(eventFail); sendErr != nil {
			log.Printf("Workflow failed to leave evaluating: %v", sendErr)
		}
		c.lastErr = err
		n = evaluationFailed
		log.Printf("Evaluation failed for %s: %v", c.file.Name, err)
	} else {
		if sendErr := c.fsm.send(eventSucceed); sendErr != nil {
			log.Printf("Workflow failed to leave evaluating: %v", sendErr)
		}
		c.result = eval
		n = evaluationComplete
		log.Printf("Evaluation completed for %s: %v/%v", eval.FileName, eval.TotalScore, eval.MaxPossibleScore)
	}
	c.mu.Unlock()

	c.notifier.Notify(n)
}

// Reset clears the selection and result. It cancels a running evaluation.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrControllerClosed
	}
	if c.fsm.current() == StateIdle {
		return nil
	}
	c.cancelInFlight()
	if err := c.fsm.send(eventReset); err != nil {
		return err
	}
	c.file = nil
	c.result = nil
	c.lastErr = nil
	return nil
}

// Wait blocks until the evaluation running at call time has finished or ctx
// is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any running evaluation and waits for it to return. Later
// calls on the controller fail with ErrControllerClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelInFlight()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fsm.current()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:        c.fsm.current(),
		IsEvaluating: c.fsm.current() == StateEvaluating,
		Result:       c.result,
	}
	if c.file != nil {
		s.File = &FileInfo{
			Name:       c.file.Name,
			Size:       c.file.Size,
			Type:       c.file.Type,
			SelectedAt: c.file.SelectedAt,
		}
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// cancelInFlight must be called with c.mu held.
func (c *Controller) cancelInFlight() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}
