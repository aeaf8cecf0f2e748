package machine_test

import (
	"testing"

	"tim/pkg/machine"

	"github.com/joomcode/errorx"
)

// runExpectError runs code and fails the test unless it aborts with an error of type want
func runExpectError(t *testing.T, code machine.CodeStore, want *errorx.Type) error {
	t.Helper()
	_, err := machine.Exec(code)
	if err == nil {
		t.Fatalf("expected %s, but the program ran successfully", want.FullName())
	}
	if !errorx.IsOfType(err, want) {
		t.Fatalf("expected %s, got %v", want.FullName(), err)
	}
	return err
}

func TestFatalConditions(t *testing.T) {
	tests := []struct {
		name string
		code machine.CodeStore
		want *errorx.Type
	}{
		{"missing main", machine.CodeStore{"other": {machine.Return()}}, machine.UnboundLabel},
		{"enter unbound label", arith(machine.Enter(machine.Label("nowhere"))), machine.UnboundLabel},
		{"arg without frame", machine.CodeStore{"main": {machine.Enter(machine.Arg(0))}}, machine.NotAFrame},
		{"arg past frame", machine.CodeStore{"main": {
			machine.Push(machine.Const(1)), machine.Take(1), machine.Push(machine.Arg(1)),
		}}, machine.ArgOutOfRange},
		{"push comb", arith(machine.Push(machine.Comb("K"))), machine.UnsupportedAddress},
		{"take underflow", machine.CodeStore{"main": {machine.Take(2)}}, machine.StackUnderflow},
		{"op underflow", arith(pushInt(1), machine.Op(machine.OpAdd)), machine.StackUnderflow},
		{"op on empty stack", arith(machine.Op(machine.OpMul)), machine.StackUnderflow},
		{"return with nothing", machine.CodeStore{"main": {machine.Take(0), machine.Return()}}, machine.StackUnderflow},
		{"pushv current frame in arg frame", arith(machine.PushV(machine.CurrentFrame())), machine.UnexpectedFrameKind},
		{"pushv current frame without frame", machine.CodeStore{"main": {machine.PushV(machine.CurrentFrame())}}, machine.UnexpectedFrameKind},
		{"negative take", machine.CodeStore{"main": {machine.Take(-1)}}, machine.MalformedInstruction},
		{"zero instruction", machine.CodeStore{"main": {{}}}, machine.MalformedInstruction},
		{"unknown operator", arith(pushInt(1), pushInt(2), machine.Op("Mod")), machine.MalformedInstruction},
		{"unknown value source", arith(machine.PushV(machine.ValueAddress{})), machine.MalformedInstruction},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			runExpectError(t, test.code, test.want)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	// [0, 5]: 5 is popped first as val1, 0 second as val2, and val2 is the divisor
	err := runExpectError(t, arith(pushInt(0), pushInt(5), machine.Op(machine.OpDiv)), machine.DivisionByZero)

	instr, ok := errorx.ExtractProperty(err, machine.PropInstruction)
	if !ok || instr != "Op Div" {
		t.Errorf("expected the offending instruction on the error, got %v (ok=%v)", instr, ok)
	}
	step, ok := errorx.ExtractProperty(err, machine.PropStep)
	if !ok || step != 4 {
		t.Errorf("expected step 4 on the error, got %v (ok=%v)", step, ok)
	}

	// a zero dividend is fine
	s, err := machine.Exec(arith(pushInt(5), pushInt(0), machine.Op(machine.OpDiv)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, s, 0)
}

func TestUnboundLabelCarriesAddress(t *testing.T) {
	err := runExpectError(t, arith(machine.Push(machine.Label("ghost"))), machine.UnboundLabel)

	addr, ok := errorx.ExtractProperty(err, machine.PropAddress)
	if !ok || addr != `Label "ghost"` {
		t.Errorf("expected address property, got %v (ok=%v)", addr, ok)
	}
	instr, ok := errorx.ExtractProperty(err, machine.PropInstruction)
	if !ok || instr != `Push Label "ghost"` {
		t.Errorf("expected instruction property, got %v (ok=%v)", instr, ok)
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   machine.Instruction
		want string
	}{
		{machine.Take(2), "Take 2"},
		{machine.Push(machine.Arg(0)), "Push Arg 0"},
		{machine.Push(machine.Const(-3)), "Push Const -3"},
		{machine.Enter(machine.Label("f")), `Enter Label "f"`},
		{machine.Enter(machine.Comb("S")), `Enter Comb "S"`},
		{machine.Return(), "Return"},
		{machine.PushV(machine.IntVal(3)), "PushV IntVal 3"},
		{machine.PushV(machine.CurrentFrame()), "PushV CurrentFrame"},
		{machine.Op(machine.OpSub), "Op Sub"},
	}

	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}
