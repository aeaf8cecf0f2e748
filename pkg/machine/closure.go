package machine

import "fmt"

// Closure is a suspended computation: code plus the environment it runs under.
// Closures are shared by pointer and never mutated once built.
type Closure struct {
	Code []Instruction
	Env  FrameIndex
}

func (c *Closure) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{%d instrs, %s}", len(c.Code), c.Env)
}

// Frame is the argument vector bound by a Take. Its length never changes.
type Frame []*Closure

type FrameKind int

const (
	FrameNone FrameKind = iota
	FramePtr
	FrameInt
)

// FrameIndex is the environment pointer of a closure or of the machine.
type FrameIndex struct {
	Kind  FrameKind
	Frame Frame // FramePtr only
	Int   int64 // FrameInt only
}

func NoFrame() FrameIndex {
	return FrameIndex{Kind: FrameNone}
}

func PtrFrame(f Frame) FrameIndex {
	return FrameIndex{Kind: FramePtr, Frame: f}
}

func IntFrame(i int64) FrameIndex {
	return FrameIndex{Kind: FrameInt, Int: i}
}

func (f FrameIndex) String() string {
	switch f.Kind {
	case FrameNone:
		return "FrameNone"
	case FramePtr:
		return fmt.Sprintf("FramePtr[%d]", len(f.Frame))
	case FrameInt:
		return fmt.Sprintf("FrameInt %d", f.Int)
	default:
		return fmt.Sprintf("FrameKind(%d)", int(f.Kind))
	}
}
