package symbols

import (
	"errors"
	"fmt"
)

type symbolError struct {
	msg string
}

func newSymbolErrorF(format string, args ...any) symbolError {
	return symbolError{fmt.Sprintf(format, args...)}
}

func (se symbolError) Error() string {
	return fmt.Sprintf("symbol error: %s", se.msg)
}

// Is matches any symbolError when the target carries no message,
// otherwise messages must be equal.
func (se symbolError) Is(target error) bool {
	var other symbolError
	if !errors.As(target, &other) {
		return false
	}
	return other.msg == "" || other.msg == se.msg
}

// ErrSymbol matches every error produced by this package.
var ErrSymbol error = symbolError{}
