package stack

type Stack[T any] struct {
	a []T
	l int
}

// NewStack creates a new stack instance, the last element ends up on top
func NewStack[T any](elm ...T) *Stack[T] {
	stack := Stack[T]{
		a: make([]T, 0, len(elm)),
		l: 0,
	}

	for _, e := range elm {
		stack.l++
		stack.a = append(stack.a, e)
	}

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.l++
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s.l < 1 {
		return zero, false
	}

	s.l--
	elm := s.a[s.l]
	s.a[s.l] = zero
	s.a = s.a[:s.l]

	return elm, true
}

// PopN removes the top n elements, most recently pushed first.
// The stack is left unchanged when it holds fewer than n elements.
func (s *Stack[T]) PopN(n int) ([]T, bool) {
	if n < 0 || s.l < n {
		return nil, false
	}

	out := make([]T, n)
	for i := range n {
		out[i], _ = s.Pop()
	}

	return out, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, bool) {
	if s.l < 1 {
		var zero T
		return zero, false
	}

	return s.a[s.l-1], true
}

// Get the size of the stack
func (s *Stack[T]) Size() int {
	return s.l
}

// Array returns the underlying array of the stack, bottom first
func (s *Stack[T]) Array() []T {
	return s.a
}
