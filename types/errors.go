package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
)

type typeError struct {
	msg   string
	parts []string
}

func newTypeError(msg string) typeError {
	return typeError{
		msg: fmt.Sprintf("type error: %s", msg),
	}
}

func newTypeErrorF(format string, args ...any) typeError {
	return newTypeError(fmt.Sprintf(format, args...))
}

func (e typeError) WithExpect(expected ast.Type) typeError {
	return typeError{
		msg:   e.msg,
		parts: append(e.parts, fmt.Sprintf("expected '%s'", expected)),
	}
}

func (e typeError) WithActual(actual ast.Type) typeError {
	return typeError{
		msg:   e.msg,
		parts: append(e.parts, fmt.Sprintf("got '%s'", actual)),
	}
}

func (e typeError) Is(err error) bool {
	var other typeError
	if !errors.As(err, &other) {
		return false
	}
	if other.msg != e.msg || len(other.parts) != len(e.parts) {
		return false
	}
	for idx := range other.parts {
		if other.parts[idx] != e.parts[idx] {
			return false
		}
	}
	return true
}

func (e typeError) Error() string {
	if len(e.parts) > 0 {
		return fmt.Sprintf("%s: %s", e.msg, strings.Join(e.parts, ", "))
	}
	return e.msg
}

// at prefixes err with the position of n, if known.
func at(n ast.Node, err error) error {
	if err == nil || !n.Position().IsKnown() {
		return err
	}
	return fmt.Errorf("%d:%d: %w", n.Position().Row, n.Position().Col, err)
}
