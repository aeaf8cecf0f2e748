package machine

import "fmt"

type AddrMode int

const (
	AddrUnknown AddrMode = iota
	AddrArg
	AddrConst
	AddrLabel
	AddrComb // reserved, never resolvable
)

var addrNames = map[AddrMode]string{
	AddrArg:   "Arg",
	AddrConst: "Const",
	AddrLabel: "Label",
	AddrComb:  "Comb",
}

func (m AddrMode) String() string {
	if name, ok := addrNames[m]; ok {
		return name
	}
	return fmt.Sprintf("AddrMode(%d)", int(m))
}

// Address is an operand that resolves to a closure.
type Address struct {
	Mode  AddrMode
	Index int    // Arg slot
	Int   int64  // Const value
	Name  string // Label or Comb name
}

func Arg(index int) Address {
	return Address{Mode: AddrArg, Index: index}
}

func Const(i int64) Address {
	return Address{Mode: AddrConst, Int: i}
}

func Label(name string) Address {
	return Address{Mode: AddrLabel, Name: name}
}

func Comb(name string) Address {
	return Address{Mode: AddrComb, Name: name}
}

func (a Address) String() string {
	switch a.Mode {
	case AddrArg:
		return fmt.Sprintf("Arg %d", a.Index)
	case AddrConst:
		return fmt.Sprintf("Const %d", a.Int)
	case AddrLabel, AddrComb:
		return fmt.Sprintf("%s %q", a.Mode, a.Name)
	default:
		return a.Mode.String()
	}
}

// Resolve turns an address into a closure against the current state.
// It never mutates the state.
func (s *State) Resolve(a Address) (*Closure, error) {
	switch a.Mode {
	case AddrConst:
		return &Closure{Code: []Instruction{}, Env: IntFrame(a.Int)}, nil

	case AddrLabel:
		code, ok := s.code[a.Name]
		if !ok {
			return nil, UnboundLabel.New("label %q is not in the code store", a.Name).
				WithProperty(PropAddress, a.String())
		}
		// the callee sees the caller's frame
		return &Closure{Code: code, Env: s.frame}, nil

	case AddrArg:
		if s.frame.Kind != FramePtr {
			return nil, NotAFrame.New("argument %d addressed from %s", a.Index, s.frame).
				WithProperty(PropAddress, a.String())
		}
		if a.Index < 0 || a.Index >= len(s.frame.Frame) {
			return nil, ArgOutOfRange.New("argument %d outside frame of size %d", a.Index, len(s.frame.Frame)).
				WithProperty(PropAddress, a.String())
		}
		return s.frame.Frame[a.Index], nil

	case AddrComb:
		return nil, UnsupportedAddress.New("combinator addresses have no resolution rule").
			WithProperty(PropAddress, a.String())

	default:
		return nil, UnsupportedAddress.New("unknown address mode %d", int(a.Mode))
	}
}
