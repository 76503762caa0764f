// Package vmrt is the run-time support library for dispatch code generated
// by wrangle. Generated packages import it for their operand value types,
// the decode and encode operations bound to each parameter type tag, and
// the faults a dispatch routine reports.
package vmrt

import (
	"fmt"
)

// RegID identifies a general purpose register.
type RegID uint8

// FloatRegID identifies a floating point register.
type FloatRegID uint8

// MemPtr is an address in the interpreter's memory. It has the width of
// the interpreter's pointer-sized integer, which is 32 bits.
type MemPtr uint32

func (r RegID) String() string {
	return fmt.Sprintf("r%d", uint8(r))
}

func (r FloatRegID) String() string {
	return fmt.Sprintf("f%d", uint8(r))
}

func (p MemPtr) String() string {
	return fmt.Sprintf("0x%08x", uint32(p))
}
