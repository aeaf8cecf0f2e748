package loader

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"tim/pkg/machine"
)

var (
	ErrEmptyProgram       = errors.New("program has no labels")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrUnknownAddress     = errors.New("unknown address mode")
	ErrBadArg             = errors.New("bad instruction argument")
)

// wireInstruction is one instruction object as written on disk:
// {"instr": "Push", "addr": "Label", "arg": "f"}
type wireInstruction struct {
	Instr string `json:"instr" yaml:"instr"`
	Addr  string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Arg   any    `json:"arg,omitempty" yaml:"arg,omitempty"`
}

// build converts decoded wire instructions into a code store
func build(raw map[string][]wireInstruction) (machine.CodeStore, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyProgram
	}

	code := make(machine.CodeStore, len(raw))
	for label, list := range raw {
		instrs := make([]machine.Instruction, 0, len(list))
		for idx, w := range list {
			in, err := w.instruction()
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", label, idx, err)
			}
			instrs = append(instrs, in)
		}
		code[label] = instrs
	}

	return code, nil
}

func (w wireInstruction) instruction() (machine.Instruction, error) {
	switch w.Instr {
	case "Take":
		n, err := intArg(w.Arg)
		if err != nil {
			return machine.Instruction{}, err
		}
		if n < 0 || n > math.MaxInt32 {
			return machine.Instruction{}, fmt.Errorf("%w: frame size %d", ErrBadArg, n)
		}
		return machine.Take(int(n)), nil

	case "Push", "Enter":
		addr, err := w.address()
		if err != nil {
			return machine.Instruction{}, err
		}
		if w.Instr == "Push" {
			return machine.Push(addr), nil
		}
		return machine.Enter(addr), nil

	case "Return":
		return machine.Return(), nil

	case "PushV":
		switch w.Addr {
		case "CurrentFrame":
			return machine.PushV(machine.CurrentFrame()), nil
		case "IntVal":
			i, err := intArg(w.Arg)
			if err != nil {
				return machine.Instruction{}, err
			}
			return machine.PushV(machine.IntVal(i)), nil
		default:
			return machine.Instruction{}, fmt.Errorf("%w: %q for PushV", ErrUnknownAddress, w.Addr)
		}

	case "Op":
		name, ok := w.Arg.(string)
		if !ok {
			return machine.Instruction{}, fmt.Errorf("%w: operator must be a string, got %T", ErrBadArg, w.Arg)
		}
		op, ok := machine.ParseValueOp(name)
		if !ok {
			return machine.Instruction{}, fmt.Errorf("%w: unknown operator %q", ErrBadArg, name)
		}
		return machine.Op(op), nil

	default:
		return machine.Instruction{}, fmt.Errorf("%w: %q", ErrUnknownInstruction, w.Instr)
	}
}

func (w wireInstruction) address() (machine.Address, error) {
	switch w.Addr {
	case "Arg":
		i, err := intArg(w.Arg)
		if err != nil {
			return machine.Address{}, err
		}
		if i < 0 || i > math.MaxInt32 {
			return machine.Address{}, fmt.Errorf("%w: argument index %d", ErrBadArg, i)
		}
		return machine.Arg(int(i)), nil
	case "Const":
		i, err := intArg(w.Arg)
		if err != nil {
			return machine.Address{}, err
		}
		return machine.Const(i), nil
	case "Label", "Comb":
		name, ok := w.Arg.(string)
		if !ok {
			return machine.Address{}, fmt.Errorf("%w: %s needs a string, got %T", ErrBadArg, w.Addr, w.Arg)
		}
		if w.Addr == "Label" {
			return machine.Label(name), nil
		}
		return machine.Comb(name), nil
	case "":
		return machine.Address{}, fmt.Errorf("%w: missing addr for %s", ErrUnknownAddress, w.Instr)
	default:
		return machine.Address{}, fmt.Errorf("%w: %q", ErrUnknownAddress, w.Addr)
	}
}

// intArg accepts the integer shapes the JSON, CUE and YAML decoders produce
func intArg(arg any) (int64, error) {
	switch x := arg.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrBadArg, x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrBadArg, x)
		}
		return int64(x), nil
	case *big.Int:
		if !x.IsInt64() {
			return 0, fmt.Errorf("%w: %s overflows int64", ErrBadArg, x)
		}
		return x.Int64(), nil
	case nil:
		return 0, fmt.Errorf("%w: missing integer arg", ErrBadArg)
	default:
		return 0, fmt.Errorf("%w: expected an integer, got %T", ErrBadArg, arg)
	}
}
