package ext

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestCatchPanic(t *testing.T) {
	cause := errors.New("boom")

	be.Err(t, CatchPanic(func() {}), nil)
	be.Err(t, CatchPanic(func() { panic(cause) }), cause)
	be.Err(t, CatchPanic(func() { panic("not an error") }), "panic: not an error")
}

func TestStack(t *testing.T) {
	var s Stack[int]
	be.True(t, s.Empty())

	s.Push(1)
	s.Push(2)
	be.Equal(t, s.Len(), 2)
	be.Equal(t, s.Top(), 2)
	be.Equal(t, s.Pop(), 2)
	be.Equal(t, s.Pop(), 1)
	be.True(t, s.Empty())
}
