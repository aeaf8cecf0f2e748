package machine

import (
	"log/slog"

	"github.com/joomcode/errorx"
)

// Machine drives a State through the step function until it is final
type Machine struct {
	state *State

	// Exec hook, coreStep unless replaced via SetExecStep
	execStep func(*State) (final bool, err error)

	tracer *slog.Logger // per-step debug records, nil = off

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Machine)

// WithMaxSteps sets a maximum number of steps before Step returns StepLimitExceeded
func WithMaxSteps(n int) Option {
	return func(m *Machine) { m.maxSteps = n }
}

// WithTracer emits one debug record per executed instruction
func WithTracer(l *slog.Logger) Option {
	return func(m *Machine) { m.tracer = l }
}

// New creates a machine in the initial state for code
func New(code CodeStore, opts ...Option) *Machine {
	m := &Machine{
		state:    NewState(code),
		execStep: coreStep,
	}

	for _, o := range opts {
		o(m)
	}

	return m
}

// Load replaces the code store, resetting the machine to its initial state
func (m *Machine) Load(code CodeStore) {
	m.state = NewState(code)
	m.steps = 0
}

// Reset puts the machine back into the initial state for its current code store
func (m *Machine) Reset() {
	m.Load(m.state.code)
}

// State returns the live machine state
func (m *Machine) State() *State {
	return m.state
}

// Steps returns the number of instructions executed so far
func (m *Machine) Steps() int {
	return m.steps
}

// SetExecStep installs a different step function
func (m *Machine) SetExecStep(fn func(*State) (bool, error)) {
	m.execStep = fn
}

// Step executes a single instruction, returning (final, error)
func (m *Machine) Step() (bool, error) {
	if m.state.IsFinal() {
		return true, nil
	}

	if m.maxSteps > 0 && m.steps >= m.maxSteps {
		return false, StepLimitExceeded.New("stopped after %d steps", m.steps)
	}

	if m.tracer != nil {
		in, _ := m.state.peekInstruction()
		m.tracer.Debug("step",
			"step", m.steps,
			"instr", in.String(),
			"closures", m.state.closures.Size(),
			"values", m.state.values.Size(),
			"frame", m.state.frame.String(),
		)
	}

	final, err := m.execStep(m.state)
	if err != nil {
		if e := errorx.Cast(err); e != nil {
			err = e.WithProperty(PropStep, m.steps)
		}
	}
	m.steps++

	return final, err
}

// Run executes until the state is final or a fatal error occurs
func (m *Machine) Run() error {
	for {
		final, err := m.Step()
		if err != nil {
			return err
		}

		if final {
			return nil
		}
	}
}
