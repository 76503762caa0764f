// Package emit projects an assigned instruction table into generated
// artifacts: Go source for the opcode enumeration, parameter records and
// dispatch routine, a C++ header with the same declarations, and a binary
// descriptor of the table for tools that don't want to parse the schema.
package emit

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/insntab/isa"
)

// Artifact is one generated file. Name is relative to the output
// directory.
type Artifact struct {
	Name string
	Data []byte
}

// InvariantViolationError reports a defect in the catalog or table that
// the loader should have made impossible, such as a parameter type with no
// width. It indicates a bug rather than a problem with the schema.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "internal error: " + e.Reason
}

type resolvedInsn struct {
	*isa.Instruction
	Width  int
	Params []resolvedParam
}

type resolvedParam struct {
	isa.Param
	Desc isa.TypeDescriptor
}

// resolveTable pairs every parameter with its type descriptor and checks
// the properties all emitters rely on.
func resolveTable(t *isa.Table, cat *isa.Catalog) ([]*resolvedInsn, error) {
	if t == nil || t.Len() == 0 {
		return nil, &InvariantViolationError{Reason: "instruction table is empty"}
	}
	if t.Len() > isa.MaxInstructions {
		return nil, &InvariantViolationError{Reason: fmt.Sprintf("instruction table has %d entries", t.Len())}
	}

	ret := make([]*resolvedInsn, 0, t.Len())
	for i, ins := range t.Instructions {
		if ins == nil {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("opcode %d has no instruction", i)}
		}
		if int(ins.Opcode) != i {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("%s is in slot %d but has opcode %d", ins, i, ins.Opcode)}
		}
		if ins.TypeName == "" {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("%s has no type name", ins)}
		}

		r := &resolvedInsn{Instruction: ins, Width: 1}
		for _, p := range ins.Params {
			desc, err := cat.Describe(p.Tag)
			if err != nil {
				return nil, &InvariantViolationError{Reason: fmt.Sprintf("%s parameter %q: %s", ins, p.Name, err)}
			}
			switch {
			case desc.Width < 1:
				return nil, &InvariantViolationError{Reason: fmt.Sprintf("type %q has width %d", desc.Tag, desc.Width)}
			case desc.Decode == "" || desc.Encode == "":
				return nil, &InvariantViolationError{Reason: fmt.Sprintf("type %q has no decode or encode operation", desc.Tag)}
			case desc.Go.Name == "":
				return nil, &InvariantViolationError{Reason: fmt.Sprintf("type %q has no Go type", desc.Tag)}
			}
			r.Width += desc.Width
			r.Params = append(r.Params, resolvedParam{Param: p, Desc: desc})
		}
		ret = append(ret, r)
	}
	return ret, nil
}

// encoding describes the instruction's binary layout for comments, e.g.
// "0x00 dst:reg src:reg (width=3)".
func (in *resolvedInsn) encoding() string {
	var b strings.Builder
	fmt.Fprintf(&b, "0x%02x", uint8(in.Opcode))
	for _, p := range in.Params {
		fmt.Fprintf(&b, " %s:%s", p.Name, p.Tag)
	}
	fmt.Fprintf(&b, " (width=%d)", in.Width)
	return b.String()
}
