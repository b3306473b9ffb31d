package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type LiteralBool struct {
	expression
	Value bool
}

func (l *LiteralBool) String() string {
	return fmt.Sprintf("(bool %t)", l.Value)
}

type LiteralInt struct {
	expression
	Value int32
}

func (l *LiteralInt) String() string {
	return fmt.Sprintf("(int %d)", l.Value)
}

type LiteralFloat struct {
	expression
	Value float32
}

func (l *LiteralFloat) String() string {
	return fmt.Sprintf("(float %s)", FormatFloat(l.Value))
}

// FormatFloat formats v as a decimal literal which always
// contains a decimal point, e.g. 2 -> "2.0".
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
