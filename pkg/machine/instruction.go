package machine

import "fmt"

type InstrKind int

// List of machine instructions
const (
	InstrUnknown InstrKind = iota
	InstrTake              // Take n
	InstrPush              // Push addr
	InstrEnter             // Enter addr
	InstrReturn            // Return
	InstrPushV             // PushV value_addr
	InstrOp                // Op op
)

var instrNames = map[InstrKind]string{
	InstrTake:   "Take",
	InstrPush:   "Push",
	InstrEnter:  "Enter",
	InstrReturn: "Return",
	InstrPushV:  "PushV",
	InstrOp:     "Op",
}

func (k InstrKind) String() string {
	if name, ok := instrNames[k]; ok {
		return name
	}
	return fmt.Sprintf("InstrKind(%d)", int(k))
}

// Instruction is a single machine instruction. Only the operand matching Kind is meaningful.
type Instruction struct {
	Kind InstrKind

	N     int          // frame size for Take
	Addr  Address      // operand for Push and Enter
	Value ValueAddress // operand for PushV
	Op    ValueOp      // operator for Op
}

func Take(n int) Instruction {
	return Instruction{Kind: InstrTake, N: n}
}

func Push(addr Address) Instruction {
	return Instruction{Kind: InstrPush, Addr: addr}
}

func Enter(addr Address) Instruction {
	return Instruction{Kind: InstrEnter, Addr: addr}
}

func Return() Instruction {
	return Instruction{Kind: InstrReturn}
}

func PushV(v ValueAddress) Instruction {
	return Instruction{Kind: InstrPushV, Value: v}
}

func Op(op ValueOp) Instruction {
	return Instruction{Kind: InstrOp, Op: op}
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	switch i.Kind {
	case InstrTake:
		return fmt.Sprintf("Take %d", i.N)
	case InstrPush, InstrEnter:
		return fmt.Sprintf("%s %s", i.Kind, i.Addr)
	case InstrReturn:
		return "Return"
	case InstrPushV:
		return fmt.Sprintf("PushV %s", i.Value)
	case InstrOp:
		return fmt.Sprintf("Op %s", i.Op)
	default:
		return i.Kind.String()
	}
}
