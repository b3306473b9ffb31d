package ext

// Stack is a generic implementation of a Stack.
// The zero value is an empty Stack ready to use.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop removes and returns the top element.
// Pop panics if the Stack is empty.
func (s *Stack[T]) Pop() T {
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top
}

// Top returns the top element without removing it.
func (s *Stack[T]) Top() T {
	return (*s)[len(*s)-1]
}

func (s *Stack[T]) Len() int {
	return len(*s)
}

func (s *Stack[T]) Empty() bool {
	return len(*s) == 0
}
