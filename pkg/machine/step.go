package machine

// Exec runs a code store to completion with the default step function
func Exec(code CodeStore) (*State, error) {
	m := New(code)
	if err := m.Run(); err != nil {
		return m.State(), err
	}
	return m.State(), nil
}

// coreStep is the main single-step execution function.
// It consumes one instruction and returns (final, error).
func coreStep(s *State) (bool, error) {
	in, ok := s.nextInstruction()
	if !ok {
		return true, nil
	}

	if err := execInstruction(s, in); err != nil {
		return false, withInstruction(err, in)
	}

	return s.IsFinal(), nil
}

func execInstruction(s *State, in Instruction) error {
	switch in.Kind {
	case InstrTake:
		return s.AllocFrame(in.N)

	case InstrPush:
		c, err := s.Resolve(in.Addr)
		if err != nil {
			return err
		}
		s.PushClosure(c)
		return nil

	case InstrEnter:
		c, err := s.Resolve(in.Addr)
		if err != nil {
			return err
		}
		s.Enter(c)
		return nil

	case InstrReturn:
		if s.closures.Size() == 0 {
			// no continuation left: the result on the value stack goes to the host
			if s.values.Size() == 0 {
				return StackUnderflow.New("return with empty closure and value stacks")
			}
			s.halt()
			return nil
		}
		// fall into the continuation pushed earlier
		c, _ := s.PopClosure()
		s.Enter(c)
		return nil

	case InstrPushV:
		switch in.Value.Source {
		case ValueCurrentFrame:
			if s.frame.Kind != FrameInt {
				return UnexpectedFrameKind.New("expected an integer frame, found %s", s.frame)
			}
			s.PushValue(s.frame.Int)
		case ValueIntVal:
			s.PushValue(in.Value.Int)
		default:
			return MalformedInstruction.New("unknown value source %d", int(in.Value.Source))
		}
		return nil

	case InstrOp:
		if n := s.values.Size(); n < 2 {
			return StackUnderflow.New("%s needs 2 values, have %d", in.Op, n)
		}
		val1, _ := s.PopValue()
		val2, _ := s.PopValue()
		res, err := in.Op.apply(val1, val2)
		if err != nil {
			return err
		}
		s.PushValue(res)
		return nil

	default:
		return MalformedInstruction.New("unknown instruction kind %d", int(in.Kind))
	}
}
