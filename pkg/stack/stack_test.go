package stack_test

import (
	"testing"

	"tim/pkg/stack"
)

func TestPushPop(t *testing.T) {
	s := stack.NewStack(1, 2)
	s.Push(3)

	if s.Size() != 3 {
		t.Fatalf("expected size 3, got %d", s.Size())
	}

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("pop failed, expected %d", want)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Errorf("pop on empty stack should fail")
	}
}

func TestPeek(t *testing.T) {
	s := stack.NewStack[string]()
	if _, ok := s.Peek(); ok {
		t.Errorf("peek on empty stack should fail")
	}

	s.Push("a")
	s.Push("b")
	top, ok := s.Peek()
	if !ok || top != "b" {
		t.Errorf("expected b on top, got %q (ok=%v)", top, ok)
	}
	if s.Size() != 2 {
		t.Errorf("peek should not change size, got %d", s.Size())
	}
}

func TestPopN(t *testing.T) {
	tests := []struct {
		description string
		start       []int
		n           int
		want        []int
		ok          bool
		left        int
	}{
		{"pop none", []int{1, 2}, 0, []int{}, true, 2},
		{"pop some", []int{1, 2, 3}, 2, []int{3, 2}, true, 1},
		{"pop all", []int{1, 2, 3}, 3, []int{3, 2, 1}, true, 0},
		{"underflow", []int{1}, 2, nil, false, 1},
		{"negative", []int{1}, -1, nil, false, 1},
	}

	for _, test := range tests {
		s := stack.NewStack(test.start...)
		got, ok := s.PopN(test.n)
		if ok != test.ok {
			t.Errorf("%s: expected ok=%v, got %v", test.description, test.ok, ok)
			continue
		}
		if len(got) != len(test.want) {
			t.Errorf("%s: expected %v, got %v", test.description, test.want, got)
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%s: expected %v, got %v", test.description, test.want, got)
				break
			}
		}
		if s.Size() != test.left {
			t.Errorf("%s: expected %d left, got %d", test.description, test.left, s.Size())
		}
	}
}
