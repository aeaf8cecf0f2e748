package machine

import (
	"maps"
	"slices"

	"tim/pkg/stack"
)

// EntryLabel is the label every run starts by entering.
const EntryLabel = "main"

// CodeStore maps labels to their instruction sequences. It is read-only once a run starts.
type CodeStore map[string][]Instruction

// State is the machine's register set.
type State struct {
	instructions []Instruction          // remaining instructions of the current closure
	closures     *stack.Stack[*Closure] // closure stack
	values       *stack.Stack[int64]    // value stack
	frame        FrameIndex             // current frame
	code         CodeStore              // code store
}

// NewState builds the initial state for a code store: Enter main, empty stacks, no frame.
func NewState(code CodeStore) *State {
	return &State{
		instructions: []Instruction{Enter(Label(EntryLabel))},
		closures:     stack.NewStack[*Closure](),
		values:       stack.NewStack[int64](),
		frame:        NoFrame(),
		code:         maps.Clone(code),
	}
}

// IsFinal reports whether no instructions remain
func (s *State) IsFinal() bool {
	return len(s.instructions) == 0
}

// Instructions returns a copy of the remaining instructions
func (s *State) Instructions() []Instruction {
	return slices.Clone(s.instructions)
}

// Closures returns a copy of the closure stack, bottom first
func (s *State) Closures() []*Closure {
	return slices.Clone(s.closures.Array())
}

// Values returns a copy of the value stack, bottom first
func (s *State) Values() []int64 {
	return slices.Clone(s.values.Array())
}

func (s *State) CurrentFrame() FrameIndex {
	return s.frame
}

// Code returns the code store. Callers must not modify it.
func (s *State) Code() CodeStore {
	return s.code
}

// Labels returns the code store labels in sorted order
func (s *State) Labels() []string {
	return slices.Sorted(maps.Keys(s.code))
}

// PushClosure pushes c onto the closure stack
func (s *State) PushClosure(c *Closure) {
	s.closures.Push(c)
}

// PopClosure pops the top of the closure stack
func (s *State) PopClosure() (*Closure, error) {
	c, ok := s.closures.Pop()
	if !ok {
		return nil, StackUnderflow.New("closure stack is empty")
	}
	return c, nil
}

func (s *State) PushValue(v int64) {
	s.values.Push(v)
}

func (s *State) PopValue() (int64, error) {
	v, ok := s.values.Pop()
	if !ok {
		return 0, StackUnderflow.New("value stack is empty")
	}
	return v, nil
}

// AllocFrame pops n closures into a new frame, index 0 being the most recently
// pushed, and makes it the current frame. On underflow nothing is popped.
func (s *State) AllocFrame(n int) error {
	if n < 0 {
		return MalformedInstruction.New("negative frame size %d", n)
	}

	frame, ok := s.closures.PopN(n)
	if !ok {
		return StackUnderflow.New("frame of size %d needs %d closures, have %d", n, n, s.closures.Size())
	}

	s.frame = PtrFrame(frame)
	return nil
}

// Enter transfers control into c: its code becomes the instruction stream and
// its environment the current frame. No return address is kept.
func (s *State) Enter(c *Closure) {
	s.instructions = c.Code
	s.frame = c.Env
}

// halt drops the remaining instructions, making the state final
func (s *State) halt() {
	s.instructions = nil
}

// nextInstruction removes and returns the next instruction
func (s *State) nextInstruction() (Instruction, bool) {
	if len(s.instructions) == 0 {
		return Instruction{}, false
	}

	in := s.instructions[0]
	s.instructions = s.instructions[1:]
	return in, true
}

// peekInstruction returns the next instruction without consuming it
func (s *State) peekInstruction() (Instruction, bool) {
	if len(s.instructions) == 0 {
		return Instruction{}, false
	}
	return s.instructions[0], true
}
