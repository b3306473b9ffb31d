package semantics

import (
	"errors"
	"fmt"

	"github.com/hummuswins/Crux-Compiler/ast"
)

type semanticError struct {
	msg string
}

// ErrSemantic matches every error reported by Analyze.
var ErrSemantic error = semanticError{}

func newSemanticErrorF(format string, args ...any) semanticError {
	return semanticError{msg: fmt.Sprintf(format, args...)}
}

func (e semanticError) Error() string {
	return fmt.Sprintf("semantic error: %s", e.msg)
}

func (e semanticError) Is(target error) bool {
	var other semanticError
	if !errors.As(target, &other) {
		return false
	}
	return other.msg == "" || other.msg == e.msg
}

func at(n ast.Node, err error) error {
	if err == nil || !n.Position().IsKnown() {
		return err
	}
	return fmt.Errorf("%s: %w", n.Position(), err)
}
