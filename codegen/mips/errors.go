package mips

import (
	"errors"
	"fmt"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/token"
)

type errorClass int

const (
	classErrorNode errorClass = iota + 1
	classNoSize
	classInternal
)

func (c errorClass) String() string {
	switch c {
	case classErrorNode:
		return "codegen error"
	case classNoSize:
		return "codegen error: no size"
	default:
		return "internal codegen error"
	}
}

// codegenError aborts a translation. Errors of the same class
// match each other with errors.Is when the target has no message.
type codegenError struct {
	class errorClass
	msg   string
}

var (
	// ErrErrorNode is returned when an [*ast.Error] is translated.
	ErrErrorNode error = codegenError{class: classErrorNode}
	// ErrNoSize is returned for a type without a storage size.
	ErrNoSize error = codegenError{class: classNoSize}
	// ErrInternal signals a program which should have been rejected
	// by an earlier pass, e.g. an unresolvable symbol.
	ErrInternal error = codegenError{class: classInternal}
)

func newInternalErrorF(format string, args ...any) codegenError {
	return codegenError{class: classInternal, msg: fmt.Sprintf(format, args...)}
}

func (e codegenError) Error() string {
	if e.msg == "" {
		return e.class.String()
	}
	return fmt.Sprintf("%s: %s", e.class, e.msg)
}

func (e codegenError) Is(target error) bool {
	var other codegenError
	if !errors.As(target, &other) {
		return false
	}
	return other.class == e.class && (other.msg == "" || other.msg == e.msg)
}

// positionError attaches the position of the node where
// translation failed.
type positionError struct {
	pos token.Position
	err error
}

func (e positionError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.pos.Row, e.pos.Col, e.err)
}

func (e positionError) Unwrap() error {
	return e.err
}

// atNode prefixes err with the position of n unless err
// already carries a position.
func atNode(n ast.Node, err error) error {
	var positioned positionError
	if err == nil || errors.As(err, &positioned) || !n.Position().IsKnown() {
		return err
	}
	return positionError{pos: n.Position(), err: err}
}
