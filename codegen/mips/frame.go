package mips

import (
	"fmt"

	"github.com/hummuswins/Crux-Compiler/ast"
)

// SlotKind tells how the address of a symbol is computed.
type SlotKind int

const (
	SlotLocal SlotKind = iota
	SlotArgument
	SlotGlobal
)

func (k SlotKind) String() string {
	switch k {
	case SlotLocal:
		return "local"
	case SlotArgument:
		return "argument"
	default:
		return "global"
	}
}

// Slot is the storage assigned to a symbol. Offsets of locals and
// arguments are relative to their frame, globals are named by Label.
type Slot struct {
	Symbol *ast.Symbol
	Kind   SlotKind
	Offset int
	Size   int
	Label  string
}

// Frame maps symbols to storage. Frames are chained, the global
// frame ends every chain.
type Frame interface {
	// Add registers a variable or array declaration.
	Add(p *Program, decl ast.Declaration) error
	// Resolve emits one instruction loading the address of sym into reg.
	Resolve(p *Program, reg Register, sym *ast.Symbol) (Slot, error)
	Parent() Frame
	// StackSize is the number of bytes reserved for locals.
	StackSize() int

	lookup(sym *ast.Symbol) (Slot, bool)
}

func declaredSymbol(decl ast.Declaration) (*ast.Symbol, error) {
	switch d := decl.(type) {
	case *ast.VariableDeclaration:
		return d.Symbol, nil
	case *ast.ArrayDeclaration:
		return d.Symbol, nil
	default:
		return nil, newInternalErrorF("cannot allocate storage for %T", decl)
	}
}

// ActivationRecord is the frame of a single function. The caller pushes
// the arguments left to right, so the last parameter is found at 0($fp).
// Locals are placed below the saved $fp and $ra:
//
//	HI  +---------------------------+
//	    | arguments                 | 0($fp) is the last parameter
//	    +---------------------------+ <- $fp
//	    | saved $ra, saved $fp      | frameOverhead
//	    +---------------------------+
//	    | locals                    | in declaration order
//	LO  +---------------------------+ <- $sp
type ActivationRecord struct {
	function  *ast.FunctionDefinition
	parent    Frame
	stackSize int
	locals    map[*ast.Symbol]Slot
	arguments map[*ast.Symbol]Slot
	order     []*ast.Symbol
}

func NewActivationRecord(fn *ast.FunctionDefinition, parent Frame) (*ActivationRecord, error) {
	ar := &ActivationRecord{
		function:  fn,
		parent:    parent,
		locals:    make(map[*ast.Symbol]Slot),
		arguments: make(map[*ast.Symbol]Slot),
	}

	off := 0
	for i := len(fn.Parameters) - 1; i >= 0; i-- {
		param := fn.Parameters[i]
		size, err := SizeOf(param.Type())
		if err != nil {
			return nil, err
		}
		ar.arguments[param] = Slot{Symbol: param, Kind: SlotArgument, Offset: off, Size: size}
		off += size
	}
	ar.order = append(ar.order, fn.Parameters...)

	return ar, nil
}

func (ar *ActivationRecord) Name() string {
	return ar.function.Name()
}

func (ar *ActivationRecord) Parent() Frame {
	return ar.parent
}

func (ar *ActivationRecord) StackSize() int {
	return ar.stackSize
}

// Add places the declared symbol at the next free offset.
// No code is emitted.
func (ar *ActivationRecord) Add(_ *Program, decl ast.Declaration) error {
	sym, err := declaredSymbol(decl)
	if err != nil {
		return err
	}
	if _, ok := ar.arguments[sym]; ok {
		return newInternalErrorF("'%s' is already a parameter of '%s'", sym.Name, ar.Name())
	}
	if _, ok := ar.locals[sym]; ok {
		return newInternalErrorF("'%s' is already a local of '%s'", sym.Name, ar.Name())
	}

	size, err := SizeOf(sym.Type())
	if err != nil {
		return err
	}
	ar.locals[sym] = Slot{Symbol: sym, Kind: SlotLocal, Offset: ar.stackSize, Size: size}
	ar.stackSize += size
	ar.order = append(ar.order, sym)
	return nil
}

func (ar *ActivationRecord) lookup(sym *ast.Symbol) (Slot, bool) {
	if slot, ok := ar.locals[sym]; ok {
		return slot, true
	}
	slot, ok := ar.arguments[sym]
	return slot, ok
}

// Resolve searches locals, then arguments, then the parent chain.
// Only this frame and the global frame are addressable: $fp points to
// the innermost frame, a symbol owned by an enclosing function frame
// cannot be reached.
func (ar *ActivationRecord) Resolve(p *Program, reg Register, sym *ast.Symbol) (Slot, error) {
	if slot, ok := ar.lookup(sym); ok {
		if slot.Kind == SlotLocal {
			// the symbol occupies [fp-8-offset-size, fp-8-offset)
			p.emit("la", reg, offset(-(frameOverhead+slot.Offset+slot.Size), fp))
		} else {
			p.emit("la", reg, offset(slot.Offset, fp))
		}
		return slot, nil
	}

	for frame := ar.parent; frame != nil; frame = frame.Parent() {
		if _, ok := frame.(*GlobalFrame); ok {
			return frame.Resolve(p, reg, sym)
		}
		if _, ok := frame.lookup(sym); ok {
			return Slot{}, newInternalErrorF("'%s' belongs to an enclosing function frame", sym.Name)
		}
	}
	return Slot{}, newInternalErrorF("symbol '%s' not found", sym.Name)
}

// Slots lists parameters in declaration order followed by
// locals in declaration order.
func (ar *ActivationRecord) Slots() []Slot {
	slots := make([]Slot, len(ar.order))
	for i, sym := range ar.order {
		slots[i], _ = ar.lookup(sym)
	}
	return slots
}

// GlobalFrame reserves space in the data section for global
// variables and arrays.
type GlobalFrame struct {
	globals map[*ast.Symbol]Slot
	order   []*ast.Symbol
}

func NewGlobalFrame() *GlobalFrame {
	return &GlobalFrame{globals: make(map[*ast.Symbol]Slot)}
}

func (g *GlobalFrame) Parent() Frame {
	return nil
}

func (g *GlobalFrame) StackSize() int {
	return 0
}

// Add emits a data reservation named after the declared symbol.
func (g *GlobalFrame) Add(p *Program, decl ast.Declaration) error {
	sym, err := declaredSymbol(decl)
	if err != nil {
		return err
	}
	if _, ok := g.globals[sym]; ok {
		return newInternalErrorF("global '%s' declared twice", sym.Name)
	}
	size, err := SizeOf(sym.Type())
	if err != nil {
		return err
	}

	slot := Slot{Symbol: sym, Kind: SlotGlobal, Size: size, Label: dataLabel(sym.Name)}
	p.AppendData(fmt.Sprintf("%s:\t\t.space\t%d", slot.Label, size))
	g.globals[sym] = slot
	g.order = append(g.order, sym)
	return nil
}

func (g *GlobalFrame) lookup(sym *ast.Symbol) (Slot, bool) {
	slot, ok := g.globals[sym]
	return slot, ok
}

func (g *GlobalFrame) Resolve(p *Program, reg Register, sym *ast.Symbol) (Slot, error) {
	slot, ok := g.lookup(sym)
	if !ok {
		return Slot{}, newInternalErrorF("symbol '%s' not found", sym.Name)
	}
	p.emit("la", reg, slot.Label)
	return slot, nil
}

func (g *GlobalFrame) Slots() []Slot {
	slots := make([]Slot, len(g.order))
	for i, sym := range g.order {
		slots[i] = g.globals[sym]
	}
	return slots
}
