package isa

import (
	"fmt"
	"strings"
)

// SchemaError reports a structurally malformed schema. ID and Keyword
// identify the offending instruction when the problem is local to one.
type SchemaError struct {
	ID      string
	Keyword string
	Line    int
	Reason  string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " in instruction %q", e.ID)
		if e.Keyword != "" {
			fmt.Fprintf(&b, " (%s)", e.Keyword)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// UnknownTypeTagError reports a parameter type tag that is not in the
// catalog. The loader fills in the instruction and parameter.
type UnknownTypeTagError struct {
	Tag     Tag
	ID      string
	Keyword string
	Param   string
}

func (e *UnknownTypeTagError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("unknown parameter type %q", string(e.Tag))
	}
	return fmt.Sprintf("instruction %q (%s): parameter %q has unknown type %q", e.ID, e.Keyword, e.Param, string(e.Tag))
}

type DuplicateKeywordError struct {
	Keyword string
	ID      string
	PrevID  string
}

func (e *DuplicateKeywordError) Error() string {
	return fmt.Sprintf("instruction %q: keyword %q clashes with instruction %q", e.ID, e.Keyword, e.PrevID)
}

type DuplicateParameterNameError struct {
	ID      string
	Keyword string
	Param   string
}

func (e *DuplicateParameterNameError) Error() string {
	return fmt.Sprintf("instruction %q (%s): parameter %q is declared more than once", e.ID, e.Keyword, e.Param)
}

type OpcodeSpaceExhaustedError struct {
	Count int
	// ID and Keyword name the first instruction that does not fit.
	ID      string
	Keyword string
}

func (e *OpcodeSpaceExhaustedError) Error() string {
	return fmt.Sprintf("%d instructions do not fit in a one-byte opcode (max %d); first excess is %q (%s)", e.Count, MaxInstructions, e.ID, e.Keyword)
}

// OpcodeConflictError reports two instructions that ask for the same
// explicit opcode.
type OpcodeConflictError struct {
	Opcode  Opcode
	ID      string
	Keyword string
	PrevID  string
}

func (e *OpcodeConflictError) Error() string {
	return fmt.Sprintf("instruction %q (%s): opcode %s is already taken by %q", e.ID, e.Keyword, e.Opcode, e.PrevID)
}

// OpcodeGapError reports an explicit opcode that would leave unassigned
// values below it.
type OpcodeGapError struct {
	Opcode  Opcode
	Count   int
	ID      string
	Keyword string
}

func (e *OpcodeGapError) Error() string {
	return fmt.Sprintf("instruction %q (%s): opcode %s leaves gaps in a table of %d instructions", e.ID, e.Keyword, e.Opcode, e.Count)
}

// OpcodeDriftError lists instructions whose opcodes differ from the lock
// file.
type OpcodeDriftError struct {
	Drift []Drift
}

func (e *OpcodeDriftError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d opcode(s) differ from the lock file:", len(e.Drift))
	for _, d := range e.Drift {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}
