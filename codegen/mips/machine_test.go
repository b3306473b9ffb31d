package mips

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/hummuswins/Crux-Compiler/ast"
)

// machine executes the subset of MIPS emitted by the generator
// and the runtime, enough to observe what a program prints.
type machine struct {
	regs   [64]uint32
	lo     uint32
	flag   bool
	mem    map[uint32]byte
	text   []string
	labels map[string]uint32
	input  []string
	out    strings.Builder
}

const (
	dataBase  = 0x10010000
	stackBase = 0x7fffeffc
	maxSteps  = 1_000_000
	// jumping here stops the machine
	haltAddress = math.MaxUint32
)

var registerByName = func() map[string]Register {
	m := make(map[string]Register, len(regToString))
	for i, name := range regToString {
		m[name] = Register(i)
	}
	return m
}()

// execute runs p from its entry label and returns the printed output.
func execute(t *testing.T, p *Program, input ...string) string {
	t.Helper()

	m := &machine{mem: make(map[uint32]byte), labels: make(map[string]uint32), input: input}
	m.load(t, p.String())

	pc, ok := m.labels[p.entry]
	if !ok {
		t.Fatalf("entry label %s not found", p.entry)
	}
	m.regs[sp] = stackBase
	m.regs[ra] = haltAddress

	for steps := 0; pc < uint32(len(m.text)); steps++ {
		if steps > maxSteps {
			t.Fatalf("program did not terminate")
		}
		next, halt := m.step(t, pc)
		if halt {
			break
		}
		pc = next
	}
	return m.out.String()
}

func (m *machine) load(t *testing.T, asm string) {
	dataPtr := uint32(dataBase)
	inData := false

	for _, line := range strings.Split(asm, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ".globl"):
			continue
		case line == ".data":
			inData = true
		case line == ".text":
			inData = false
		case inData:
			name, directive, _ := strings.Cut(line, ":")
			fields := strings.Fields(directive)
			m.labels[name] = dataPtr
			switch fields[0] {
			case ".space":
				n, _ := strconv.Atoi(fields[1])
				dataPtr += uint32(n)
			case ".asciiz":
				s, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(directive), ".asciiz")))
				if err != nil {
					t.Fatalf("bad string %q: %v", line, err)
				}
				for _, b := range []byte(s) {
					m.mem[dataPtr] = b
					dataPtr++
				}
				m.mem[dataPtr] = 0
				dataPtr++
			}
			dataPtr = (dataPtr + 3) &^ 3
		case strings.HasSuffix(line, ":"):
			m.labels[strings.TrimSuffix(line, ":")] = uint32(len(m.text))
		default:
			m.text = append(m.text, line)
		}
	}
}

func (m *machine) word(addr uint32) uint32 {
	var b [4]byte
	for i := range b {
		b[i] = m.mem[addr+uint32(i)]
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (m *machine) setWord(addr, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	for i := range b {
		m.mem[addr+uint32(i)] = b[i]
	}
}

func (m *machine) float(r Register) float32 {
	return math.Float32frombits(m.regs[r])
}

func (m *machine) step(t *testing.T, pc uint32) (uint32, bool) {
	line := m.text[pc]
	op, rest, _ := strings.Cut(line, "\t")
	var args []string
	if rest = strings.TrimSpace(rest); rest != "" {
		args = strings.Split(rest, ", ")
	}

	reg := func(i int) Register {
		r, ok := registerByName[args[i]]
		if !ok {
			t.Fatalf("%q: bad register %s", line, args[i])
		}
		return r
	}
	// value of a register or an immediate operand
	val := func(i int) uint32 {
		if strings.HasPrefix(args[i], "$") {
			return m.regs[reg(i)]
		}
		n, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil {
			t.Fatalf("%q: bad immediate %s", line, args[i])
		}
		return uint32(int32(n))
	}
	addr := func(i int) uint32 {
		if l, ok := m.labels[args[i]]; ok {
			return l
		}
		off, base, ok := strings.Cut(strings.TrimSuffix(args[i], ")"), "(")
		if !ok {
			t.Fatalf("%q: bad address %s", line, args[i])
		}
		n, _ := strconv.Atoi(off)
		return m.regs[registerByName[base]] + uint32(int32(n))
	}
	target := func(i int) uint32 {
		l, ok := m.labels[args[i]]
		if !ok {
			t.Fatalf("%q: unknown label %s", line, args[i])
		}
		return l
	}
	b2u := func(b bool) uint32 {
		if b {
			return 1
		}
		return 0
	}
	setF := func(r Register, f float32) { m.regs[r] = math.Float32bits(f) }

	next := pc + 1
	switch strings.TrimSpace(op) {
	case "li":
		m.regs[reg(0)] = val(1)
	case "li.s":
		f, _ := strconv.ParseFloat(args[1], 32)
		setF(reg(0), float32(f))
	case "la":
		m.regs[reg(0)] = addr(1)
	case "move":
		m.regs[reg(0)] = m.regs[reg(1)]
	case "addu", "addiu", "addi":
		m.regs[reg(0)] = m.regs[reg(1)] + val(2)
	case "subu":
		m.regs[reg(0)] = m.regs[reg(1)] - val(2)
	case "and":
		m.regs[reg(0)] = m.regs[reg(1)] & val(2)
	case "or":
		m.regs[reg(0)] = m.regs[reg(1)] | val(2)
	case "xor":
		m.regs[reg(0)] = m.regs[reg(1)] ^ val(2)
	case "slt":
		m.regs[reg(0)] = b2u(int32(m.regs[reg(1)]) < int32(val(2)))
	case "sltiu":
		m.regs[reg(0)] = b2u(m.regs[reg(1)] < val(2))
	case "sll":
		m.regs[reg(0)] = m.regs[reg(1)] << val(2)
	case "mult":
		m.lo = uint32(int32(m.regs[reg(0)]) * int32(m.regs[reg(1)]))
	case "div":
		m.lo = uint32(int32(m.regs[reg(0)]) / int32(m.regs[reg(1)]))
	case "mflo":
		m.regs[reg(0)] = m.lo
	case "lw", "lwc1":
		m.regs[reg(0)] = m.word(addr(1))
	case "sw", "swc1":
		m.setWord(addr(1), m.regs[reg(0)])
	case "add.s":
		setF(reg(0), m.float(reg(1))+m.float(reg(2)))
	case "sub.s":
		setF(reg(0), m.float(reg(1))-m.float(reg(2)))
	case "mul.s":
		setF(reg(0), m.float(reg(1))*m.float(reg(2)))
	case "div.s":
		setF(reg(0), m.float(reg(1))/m.float(reg(2)))
	case "c.eq.s":
		m.flag = m.float(reg(0)) == m.float(reg(1))
	case "c.lt.s":
		m.flag = m.float(reg(0)) < m.float(reg(1))
	case "c.le.s":
		m.flag = m.float(reg(0)) <= m.float(reg(1))
	case "bc1t":
		if m.flag {
			next = target(0)
		}
	case "bc1f":
		if !m.flag {
			next = target(0)
		}
	case "beqz":
		if m.regs[reg(0)] == 0 {
			next = target(1)
		}
	case "j":
		next = target(0)
	case "jal":
		m.regs[ra] = pc + 1
		next = target(0)
	case "jr":
		next = m.regs[reg(0)]
		if next == haltAddress {
			return 0, true
		}
	case "syscall":
		return next, m.syscall(t)
	default:
		t.Fatalf("unsupported instruction %q", line)
	}
	return next, false
}

func (m *machine) syscall(t *testing.T) bool {
	switch m.regs[v0] {
	case sysPrintInt:
		m.out.WriteString(strconv.Itoa(int(int32(m.regs[a0]))))
	case sysPrintFloat:
		m.out.WriteString(ast.FormatFloat(m.float(f12)))
	case sysPrintString:
		for p := m.regs[a0]; m.mem[p] != 0; p++ {
			m.out.WriteByte(m.mem[p])
		}
	case sysReadInt, sysReadFloat:
		if len(m.input) == 0 {
			t.Fatalf("program reads past its input")
		}
		line := m.input[0]
		m.input = m.input[1:]
		if m.regs[v0] == sysReadInt {
			n, _ := strconv.Atoi(line)
			m.regs[v0] = uint32(int32(n))
		} else {
			f, _ := strconv.ParseFloat(line, 32)
			m.regs[f0] = math.Float32bits(float32(f))
		}
	case sysExit:
		return true
	default:
		panic(fmt.Sprintf("unsupported syscall %d", m.regs[v0]))
	}
	return false
}
