package workflow

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

type State string

// State values double as statekit state IDs.
const (
	StateIdle         State = "idle"
	StateFileSelected State = "file_selected"
	StateEvaluating   State = "evaluating"
	StateCompleted    State = "completed"
)

const (
	eventSelect   = "select"
	eventEvaluate = "evaluate"
	eventSucceed  = "succeed"
	eventFail     = "fail"
	eventReset    = "reset"
)

var ErrTransitionNotAllowed = errors.New("transition not allowed")

type machineContext struct {
	HasFile func() bool
}

type machine struct {
	interpreter *statekit.Interpreter[machineContext]
}

func newMachine(hasFile func() bool) (*machine, error) {
	builder := statekit.NewMachine[machineContext]("evaluation-workflow").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(machineContext{HasFile: hasFile}).
		WithGuard("hasFile", func(ctx machineContext, e statekit.Event) bool {
			return ctx.HasFile()
		})

	builder.State(statekit.StateID(StateIdle)).
		On(eventSelect).Target(statekit.StateID(StateFileSelected)).
		Done()

	builder.State(statekit.StateID(StateFileSelected)).
		On(eventEvaluate).Target(statekit.StateID(StateEvaluating)).Guard("hasFile").
		On(eventReset).Target(statekit.StateID(StateIdle)).
		Done()

	builder.State(statekit.StateID(StateEvaluating)).
		On(eventSucceed).Target(statekit.StateID(StateCompleted)).
		On(eventFail).Target(statekit.StateID(StateFileSelected)).
		On(eventSelect).Target(statekit.StateID(StateFileSelected)).
		On(eventReset).Target(statekit.StateID(StateIdle)).
		Done()

	builder.State(statekit.StateID(StateCompleted)).
		On(eventSelect).Target(statekit.StateID(StateFileSelected)).
		On(eventReset).Target(statekit.StateID(StateIdle)).
		Done()

	m, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(m)
	interpreter.Start()

	return &machine{interpreter: interpreter}, nil
}

func (m *machine) current() State {
	return State(m.interpreter.State().Value)
}

// send fires event and reports an error when the machine did not move.
// Every transition in the workflow changes state, so an unchanged state
// means the event was not accepted.
func (m *machine) send(event string) error {
	before := m.current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.current() != before {
		return nil
	}
	return fmt.Errorf("%w: %q while %s", ErrTransitionNotAllowed, event, before)
}
