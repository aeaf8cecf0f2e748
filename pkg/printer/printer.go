package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/kr/pretty"

	"tim/pkg/color"
	"tim/pkg/machine"
)

// maxEnvDepth bounds how many levels of closure environments Text expands
const maxEnvDepth = 2

// ClosureView is a flat rendering of a closure
type ClosureView struct {
	Code []string
	Env  string
}

// Snapshot is a flat, acyclic view of a machine state
type Snapshot struct {
	Final        bool
	Instructions []string
	Closures     []ClosureView // top first
	Values       []int64       // top first
	Frame        string
	FrameSlots   []ClosureView // slots of a FramePtr frame, index order
	Labels       []string
}

func viewOf(c *machine.Closure) ClosureView {
	v := ClosureView{Code: make([]string, 0, len(c.Code)), Env: c.Env.String()}
	for _, in := range c.Code {
		v.Code = append(v.Code, in.String())
	}
	return v
}

// NewSnapshot captures s
func NewSnapshot(s *machine.State) Snapshot {
	snap := Snapshot{
		Final:  s.IsFinal(),
		Frame:  s.CurrentFrame().String(),
		Labels: s.Labels(),
	}

	for _, in := range s.Instructions() {
		snap.Instructions = append(snap.Instructions, in.String())
	}

	closures := s.Closures()
	slices.Reverse(closures)
	for _, c := range closures {
		snap.Closures = append(snap.Closures, viewOf(c))
	}

	snap.Values = s.Values()
	slices.Reverse(snap.Values)

	if f := s.CurrentFrame(); f.Kind == machine.FramePtr {
		for _, c := range f.Frame {
			snap.FrameSlots = append(snap.FrameSlots, viewOf(c))
		}
	}

	return snap
}

// Pretty writes a Go-syntax structural dump of s
func Pretty(w io.Writer, s *machine.State) error {
	_, err := pretty.Fprintf(w, "%# v\n", NewSnapshot(s))
	return err
}

// Text writes a human-readable dump of s
func Text(w io.Writer, s *machine.State) error {
	var b strings.Builder

	status := color.GreenText("final")
	if !s.IsFinal() {
		status = color.YellowText("running")
	}
	fmt.Fprintf(&b, "%s %s\n", color.BoldText("state:"), status)

	b.WriteString(color.BoldText("instructions:"))
	instrs := s.Instructions()
	if len(instrs) == 0 {
		b.WriteString(color.GrayText(" (none)"))
	}
	b.WriteString("\n")
	for _, in := range instrs {
		fmt.Fprintf(&b, "  %s\n", color.YellowText(in.String()))
	}

	fmt.Fprintf(&b, "%s\n", color.BoldText("closure stack (top first):"))
	closures := s.Closures()
	for i := len(closures) - 1; i >= 0; i-- {
		writeClosure(&b, fmt.Sprintf("%d", len(closures)-1-i), closures[i], 1, 0)
	}

	b.WriteString(color.BoldText("value stack (top first):"))
	values := s.Values()
	for i := len(values) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, " %s", color.CyanText(fmt.Sprintf("%d", values[i])))
	}
	b.WriteString("\n")

	frame := s.CurrentFrame()
	fmt.Fprintf(&b, "%s %s\n", color.BoldText("frame:"), color.BlueText(frame.String()))
	if frame.Kind == machine.FramePtr {
		for i, c := range frame.Frame {
			writeClosure(&b, fmt.Sprintf("arg %d", i), c, 1, 1)
		}
	}

	fmt.Fprintf(&b, "%s %s\n", color.BoldText("labels:"), strings.Join(s.Labels(), " "))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeClosure(b *strings.Builder, name string, c *machine.Closure, indent, depth int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%s%s: %s\n", pad, color.MagentaText(name), c)

	for _, in := range c.Code {
		fmt.Fprintf(b, "%s    %s\n", pad, color.GrayText(in.String()))
	}

	if c.Env.Kind != machine.FramePtr || depth >= maxEnvDepth {
		return
	}
	for i, slot := range c.Env.Frame {
		writeClosure(b, fmt.Sprintf("arg %d", i), slot, indent+2, depth+1)
	}
}
