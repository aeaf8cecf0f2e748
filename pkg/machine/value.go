package machine

import "fmt"

type ValueSource int

const (
	ValueUnknown      ValueSource = iota
	ValueCurrentFrame             // integer bound by the current FrameInt
	ValueIntVal                   // literal
)

// ValueAddress is the operand of PushV.
type ValueAddress struct {
	Source ValueSource
	Int    int64
}

func CurrentFrame() ValueAddress {
	return ValueAddress{Source: ValueCurrentFrame}
}

func IntVal(i int64) ValueAddress {
	return ValueAddress{Source: ValueIntVal, Int: i}
}

func (v ValueAddress) String() string {
	switch v.Source {
	case ValueCurrentFrame:
		return "CurrentFrame"
	case ValueIntVal:
		return fmt.Sprintf("IntVal %d", v.Int)
	default:
		return fmt.Sprintf("ValueSource(%d)", int(v.Source))
	}
}

type ValueOp string

// List of arithmetic operators
const (
	OpAdd ValueOp = "Add"
	OpSub ValueOp = "Sub"
	OpMul ValueOp = "Mul"
	OpDiv ValueOp = "Div"
)

// ParseValueOp maps an operator name to its ValueOp
func ParseValueOp(name string) (ValueOp, bool) {
	switch op := ValueOp(name); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, true
	default:
		return "", false
	}
}

func (op ValueOp) String() string {
	return string(op)
}

// apply computes val1 <op> val2, where val1 is the first value popped.
func (op ValueOp) apply(val1, val2 int64) (int64, error) {
	switch op {
	case OpAdd:
		return val1 + val2, nil
	case OpSub:
		return val1 - val2, nil
	case OpMul:
		return val1 * val2, nil
	case OpDiv:
		if val2 == 0 {
			return 0, DivisionByZero.New("%d / 0", val1)
		}
		return val1 / val2, nil
	default:
		return 0, MalformedInstruction.New("unsupported operator %q", string(op))
	}
}
