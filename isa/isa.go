// Package isa loads a declarative instruction set schema, validates it
// against the parameter type catalog and assigns opcodes, producing the
// table that the emitters project into generated code.
package isa

import (
	"fmt"
)

// Opcode is the one-byte numeric identifier of an instruction.
type Opcode uint8

// MaxInstructions is the size of the opcode space.
const MaxInstructions = 256

func (op Opcode) String() string {
	return fmt.Sprintf("0x%02x", uint8(op))
}

type Instruction struct {
	// ID is the key the instruction was declared under. It is the opcode's
	// symbol name.
	ID string

	// CName names the opcode constant in the C++ header. It is ID when
	// that is a usable C++ identifier, or else derived from Keyword, such as
	// "OP_ADD".
	CName string

	Keyword     string
	TypeName    string // identifier stem derived from Keyword, e.g. "LoadImmediate"
	Description string

	// Index is the declaration order within the schema.
	Index int

	// Opcode is assigned by Assign. When Fixed is set the schema asked for
	// this value explicitly.
	Opcode Opcode
	Fixed  bool

	Params []Param
}

type Param struct {
	Name      string
	FieldName string
	Tag       Tag
}

// Table is the dense mapping from opcode to instruction.
type Table struct {
	// Instructions is indexed by opcode.
	Instructions []*Instruction
}

func (t *Table) Len() int {
	return len(t.Instructions)
}

func (t *Table) Lookup(op Opcode) (*Instruction, bool) {
	if int(op) >= len(t.Instructions) {
		return nil, false
	}
	return t.Instructions[op], true
}

func (t *Table) ByKeyword(keyword string) (*Instruction, bool) {
	for _, ins := range t.Instructions {
		if ins.Keyword == keyword {
			return ins, true
		}
	}
	return nil, false
}

// Width returns the encoded size of the instruction in bytes, including its
// opcode byte.
func (ins *Instruction) Width(cat *Catalog) (int, error) {
	width := 1
	for _, p := range ins.Params {
		d, err := cat.Describe(p.Tag)
		if err != nil {
			return 0, err
		}
		width += d.Width
	}
	return width, nil
}

func (ins *Instruction) String() string {
	return fmt.Sprintf("%s (%q)", ins.ID, ins.Keyword)
}
