package vmrt

import (
	"fmt"
)

// ShortOperandError is returned by a decode operation when the instruction
// stream ends before the operand does.
type ShortOperandError struct {
	At   uint32 // offset of the operand's first byte
	Need int
	Have int
}

func (e *ShortOperandError) Error() string {
	return fmt.Sprintf("operand at 0x%x needs %d bytes, only %d remain", e.At, e.Need, e.Have)
}

// UnknownOpcodeError reports an opcode byte that has no instruction
// assigned. PC is the address of the opcode byte.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint32
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02x at pc 0x%x", e.Opcode, e.PC)
}

// TruncatedOperandError reports an instruction whose operands run past the
// end of the instruction stream. PC is the address of the opcode byte and
// Err describes the operand that could not be read.
type TruncatedOperandError struct {
	Opcode uint8
	PC     uint32
	Err    error
}

func (e *TruncatedOperandError) Error() string {
	return fmt.Sprintf("truncated operand for opcode 0x%02x at pc 0x%x: %s", e.Opcode, e.PC, e.Err)
}

func (e *TruncatedOperandError) Unwrap() error {
	return e.Err
}

// EndOfCodeError is returned when dispatch is asked to fetch an opcode at
// or beyond the end of the instruction stream.
type EndOfCodeError struct {
	PC uint32
}

func (e *EndOfCodeError) Error() string {
	return fmt.Sprintf("no instruction at pc 0x%x: end of code", e.PC)
}

// Truncated wraps a decode failure for the instruction whose opcode byte
// is at pc.
func Truncated(opcode uint8, pc uint32, err error) error {
	return &TruncatedOperandError{Opcode: opcode, PC: pc, Err: err}
}
