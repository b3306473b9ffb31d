package mips

// Register is either one of the 32 general purpose registers
// or, starting at f0, one of the 32 coprocessor 1 registers.
type Register int

var regToString = [64]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
	"$f0", "$f1", "$f2", "$f3", "$f4", "$f5", "$f6", "$f7",
	"$f8", "$f9", "$f10", "$f11", "$f12", "$f13", "$f14", "$f15",
	"$f16", "$f17", "$f18", "$f19", "$f20", "$f21", "$f22", "$f23",
	"$f24", "$f25", "$f26", "$f27", "$f28", "$f29", "$f30", "$f31",
}

func (r Register) String() string {
	return regToString[r]
}

// IsFloat reports whether r belongs to the floating point unit.
func (r Register) IsFloat() bool {
	return r >= f0
}

const (
	zero = Register(iota)
	at
	v0
	v1
	a0
	a1
	a2
	a3
	t0
	t1
	t2
	t3
	t4
	t5
	t6
	t7
)

const (
	sp = Register(29)
	fp = Register(30)
	ra = Register(31)
)

// Only f0, f1 and f12 are ever used: f0/f1 are the scratch and
// return registers, f12 is the syscall argument.
const (
	f0  = Register(32)
	f1  = Register(33)
	f12 = Register(44)
)
