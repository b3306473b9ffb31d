package semantics_test

import (
	"errors"
	"testing"

	"github.com/hummuswins/Crux-Compiler/semantics"
	"github.com/hummuswins/Crux-Compiler/sexpr"
	"github.com/nalgeon/be"
)

func TestAnalyze(t *testing.T) {
	tests := map[string]struct {
		src  string
		err  string
		opts []semantics.Option
	}{
		"valid": {
			src: `(program
(func f ((x int)) int
  (if (deref (addr x)) (block) (block))
  (while (bool false) (block (return (int 1))))
  (return (int 0)))
(func main () void (call printInt (call f (int 1)))))`,
		},
		"missing main": {
			src: `(program (func f () void))`,
			err: "missing main function",
		},
		"main with parameters": {
			src: `(program (func main ((x int)) void))`,
			err: "1:10: semantic error: function 'main' must not have parameters",
		},
		"main returns a value": {
			src: `(program (func main () int (return (int 0))))`,
			err: "function 'main' must return void",
		},
		"main called": {
			src: `(program
(func main () void)
(func f () void (call main)))`,
			err: "3:17: semantic error: cannot call main function",
		},
		"main calls itself": {
			src: `(program (func main () void (if (bool true) (block (call main)) (block))))`,
			err: "cannot call main function",
		},
		"missing return": {
			src: `(program
(func f () float (call println))
(func main () void))`,
			err: "2:1: semantic error: missing return statement in 'f'",
		},
		"nested return": {
			src: `(program
(func f () bool (while (bool true) (block (return (bool true)))))
(func main () void))`,
		},
		"custom entry": {
			src:  `(program (func start () void) (func main ((x int)) int (return (int 1))))`,
			opts: []semantics.Option{semantics.WithEntryPoint("start")},
		},
		"custom entry missing": {
			src:  `(program (func main () void))`,
			opts: []semantics.Option{semantics.WithEntryPoint("start")},
			err:  "missing start function",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			prog, err := sexpr.Decode(test.src)
			be.Err(t, err, nil)

			err = semantics.Analyze(prog, test.opts...)
			if test.err == "" {
				be.Err(t, err, nil)
				return
			}
			be.Err(t, err, test.err)
			be.True(t, errors.Is(err, semantics.ErrSemantic))
		})
	}
}
