package machine

import "github.com/joomcode/errorx"

// Fatal conditions. Each one aborts the run: a malformed program is a contract
// violation of whoever produced the code store.
var (
	Errors = errorx.NewNamespace("machine")

	UnboundLabel         = Errors.NewType("unbound_label")
	NotAFrame            = Errors.NewType("not_a_frame")
	ArgOutOfRange        = Errors.NewType("arg_out_of_range")
	UnexpectedFrameKind  = Errors.NewType("unexpected_frame_kind")
	UnsupportedAddress   = Errors.NewType("unsupported_address")
	StackUnderflow       = Errors.NewType("stack_underflow")
	DivisionByZero       = Errors.NewType("division_by_zero")
	MalformedInstruction = Errors.NewType("malformed_instruction")
	StepLimitExceeded    = Errors.NewType("step_limit_exceeded")
)

var (
	PropInstruction = errorx.RegisterPrintableProperty("instruction")
	PropAddress     = errorx.RegisterPrintableProperty("address")
	PropStep        = errorx.RegisterPrintableProperty("step")
)

// withInstruction tags a fatal error with the instruction that raised it
func withInstruction(err error, in Instruction) error {
	if e := errorx.Cast(err); e != nil {
		return e.WithProperty(PropInstruction, in.String())
	}
	return err
}
