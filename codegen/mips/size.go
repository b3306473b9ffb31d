package mips

import (
	"fmt"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/types"
)

// SizeOf reports the storage size in bytes of the supplied [ast.Type].
func SizeOf(t ast.Type) (int, error) {
	switch t := t.(type) {
	case types.Bool, types.Int, types.Float:
		return wordSize, nil
	case types.Void:
		return 0, nil
	case types.Array:
		elem, err := SizeOf(t.Element)
		if err != nil {
			return 0, err
		}
		return t.Length * elem, nil
	case types.TypeList:
		sum := 0
		for _, member := range t {
			size, err := SizeOf(member)
			if err != nil {
				return 0, err
			}
			sum += size
		}
		return sum, nil
	default:
		return 0, codegenError{class: classNoSize, msg: fmt.Sprintf("no size known for %v", t)}
	}
}
