package mips

import "fmt"

// SPIM syscall codes.
const (
	sysPrintInt    = 1
	sysPrintFloat  = 2
	sysPrintString = 4
	sysReadInt     = 5
	sysReadFloat   = 6
	sysExit        = 10
)

const (
	dataNewline    = "data.newline"
	dataFloatQuery = "data.floatquery"
	dataIntQuery   = "data.intquery"
	dataTrue       = "data.trueString"
	dataFalse      = "data.falseString"
)

var runtimeData = []string{
	dataNewline + ":\t\t.asciiz\t\"\\n\"",
	dataFloatQuery + ":\t.asciiz\t\"float?\"",
	dataIntQuery + ":\t\t.asciiz\t\"int?\"",
	dataTrue + ":\t.asciiz\t\"true\"",
	dataFalse + ":\t.asciiz\t\"false\"",
}

// runtimeText implements the built-in functions. Arguments are read from
// the stack as pushed by the caller, results are left in $v0 or $f0.
// The routines do not set up a frame of their own.
var runtimeText = concat(
	routine("printBool",
		instr("lw", a0, offset(0, sp)),
		instr("beqz", a0, "label.printBool.false"),
		instr("la", a0, dataTrue),
		instr("j", "label.printBool.print"),
		"label.printBool.false:",
		instr("la", a0, dataFalse),
		"label.printBool.print:",
		instr("li", v0, sysPrintString),
		instr("syscall"),
	),
	routine("printFloat",
		instr("lwc1", f12, offset(0, sp)),
		instr("li", v0, sysPrintFloat),
		instr("syscall"),
	),
	routine("printInt",
		instr("lw", a0, offset(0, sp)),
		instr("li", v0, sysPrintInt),
		instr("syscall"),
	),
	routine("println",
		instr("la", a0, dataNewline),
		instr("li", v0, sysPrintString),
		instr("syscall"),
	),
	routine("readFloat",
		instr("la", a0, dataFloatQuery),
		instr("li", v0, sysPrintString),
		instr("syscall"),
		instr("li", v0, sysReadFloat),
		instr("syscall"),
	),
	routine("readInt",
		instr("la", a0, dataIntQuery),
		instr("li", v0, sysPrintString),
		instr("syscall"),
		instr("li", v0, sysReadInt),
		instr("syscall"),
	),
)

func routine(name string, body ...string) []string {
	lines := append([]string{functionLabel(name, "") + ":"}, body...)
	return append(lines, instr("jr", ra))
}

func concat(parts ...[]string) []string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

// functionLabel mangles a function name, the entry function is left as is.
func functionLabel(name, entry string) string {
	if name == entry {
		return name
	}
	return fmt.Sprintf("func.%s", name)
}

func epilogueLabel(name string) string {
	return fmt.Sprintf("func.%s.epilogue", name)
}

func dataLabel(name string) string {
	return fmt.Sprintf("cruxdata.%s", name)
}
