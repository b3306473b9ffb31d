package mips

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// wordSize is the size of every scalar and of one virtual stack slot.
const wordSize = 4

// frameOverhead is the space for the saved $fp and $ra of every frame.
const frameOverhead = 2 * wordSize

// Program collects the data and text section of a translation.
// Instructions are addressed by position so that a prologue can be
// inserted once the size of a frame is known.
type Program struct {
	instructions []string
	data         []string
	labelCounter int

	entry   string
	runtime bool
}

// NewProgram creates an empty Program whose text starts
// at the supplied entry label.
func NewProgram(entry string) *Program {
	return &Program{entry: entry, runtime: true}
}

// instr formats a single instruction, e.g. "addu\t$t0, $t0, $t1".
func instr(op string, operands ...any) string {
	if len(operands) == 0 {
		return op
	}
	strs := make([]string, len(operands))
	for i, o := range operands {
		strs[i] = fmt.Sprint(o)
	}
	return fmt.Sprintf("%-4s\t%s", op, strings.Join(strs, ", "))
}

// offset formats a base+offset memory operand, e.g. "-12($fp)".
func offset(off int, base Register) string {
	return fmt.Sprintf("%d(%s)", off, base)
}

// AppendInstruction appends a single line to the text section
// and returns its position.
func (p *Program) AppendInstruction(line string) int {
	p.instructions = append(p.instructions, line)
	return len(p.instructions) - 1
}

// emit appends a formatted instruction.
func (p *Program) emit(op string, operands ...any) int {
	return p.AppendInstruction(instr(op, operands...))
}

// label appends "name:".
func (p *Program) label(name string) int {
	return p.AppendInstruction(name + ":")
}

// InsertInstructions inserts lines before the instruction at pos.
func (p *Program) InsertInstructions(pos int, lines ...string) {
	if pos < 0 || pos > len(p.instructions) {
		panic(fmt.Errorf("insert position %d out of range [0, %d]", pos, len(p.instructions)))
	}
	p.instructions = slices.Insert(p.instructions, pos, lines...)
}

// AppendData appends a single line to the data section.
func (p *Program) AppendData(line string) {
	p.data = append(p.data, line)
}

// NewLabel returns a label which is unique within this Program.
func (p *Program) NewLabel() string {
	l := fmt.Sprintf("label.%d", p.labelCounter)
	p.labelCounter++
	return l
}

// PushInt pushes the integer register r onto the machine stack.
func (p *Program) PushInt(r Register) {
	mustBeInt(r)
	p.emit("subu", sp, sp, wordSize)
	p.emit("sw", r, offset(0, sp))
}

// PopInt pops the top of the machine stack into the integer register r.
func (p *Program) PopInt(r Register) {
	mustBeInt(r)
	p.emit("lw", r, offset(0, sp))
	p.emit("addiu", sp, sp, wordSize)
}

// PushFloat pushes the floating point register r onto the machine stack.
func (p *Program) PushFloat(r Register) {
	mustBeFloat(r)
	p.emit("subu", sp, sp, wordSize)
	p.emit("swc1", r, offset(0, sp))
}

// PopFloat pops the top of the machine stack into the floating point register r.
func (p *Program) PopFloat(r Register) {
	mustBeFloat(r)
	p.emit("lwc1", r, offset(0, sp))
	p.emit("addiu", sp, sp, wordSize)
}

func mustBeInt(r Register) {
	if r.IsFloat() {
		panic(fmt.Errorf("register %s is not an integer register", r))
	}
}

func mustBeFloat(r Register) {
	if !r.IsFloat() {
		panic(fmt.Errorf("register %s is not a floating point register", r))
	}
}

// InsertPrologue inserts the frame setup of a function at pos:
// $fp and $ra are saved, $fp is set to the caller's $sp and
// size bytes are reserved for locals.
func (p *Program) InsertPrologue(pos int, size int) {
	lines := []string{
		instr("subu", sp, sp, frameOverhead),
		instr("sw", fp, offset(0, sp)),
		instr("sw", ra, offset(wordSize, sp)),
		instr("addi", fp, sp, frameOverhead),
	}
	if size > 0 {
		lines = append(lines, instr("subu", sp, sp, size))
	}
	p.InsertInstructions(pos, lines...)
}

// AppendEpilogue undoes InsertPrologue and returns to the caller.
func (p *Program) AppendEpilogue(size int) {
	p.appendTeardown(size)
	p.emit("jr", ra)
}

func (p *Program) appendTeardown(size int) {
	if size > 0 {
		p.emit("addu", sp, sp, size)
	}
	p.emit("lw", ra, offset(wordSize, sp))
	p.emit("lw", fp, offset(0, sp))
	p.emit("addu", sp, sp, frameOverhead)
}

// AppendExitSequence terminates the program.
func (p *Program) AppendExitSequence() {
	p.emit("li", v0, sysExit)
	p.emit("syscall")
}

// Instructions returns a copy of the text section without the runtime.
func (p *Program) Instructions() []string {
	return slices.Clone(p.instructions)
}

// Data returns a copy of the data section without the runtime.
func (p *Program) Data() []string {
	return slices.Clone(p.data)
}

// WriteTo renders the Program as SPIM assembly.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	sb := &strings.Builder{}

	sb.WriteString(".data\n")
	if p.runtime {
		writeLines(sb, runtimeData)
	}
	writeLines(sb, p.data)

	sb.WriteString(".text\n")
	sb.WriteString(fmt.Sprintf(".globl %s\n", p.entry))
	if p.runtime {
		writeLines(sb, runtimeText)
	}
	writeLines(sb, p.instructions)

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		// labels are flush left, everything else is indented
		if !strings.HasSuffix(l, ":") && !strings.HasPrefix(l, ".") && !strings.Contains(l, ":\t") {
			sb.WriteString("\t")
		}
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}

func (p *Program) String() string {
	sb := &strings.Builder{}
	_, _ = p.WriteTo(sb)
	return sb.String()
}

// Fingerprint is a hash of the rendered Program. Translating the
// same AST twice yields the same Fingerprint.
func (p *Program) Fingerprint() uint64 {
	return xxhash.Sum64String(p.String())
}
