package vmrt

import (
	"encoding/binary"
	"math"
)

// Each decode operation reads one operand starting at code[at]. It consumes
// exactly the width registered for its type tag and never looks at bytes
// beyond that, so callers advance their cursor by the constant width.
// Multi-byte operands are little-endian.

// need returns a *ShortOperandError unless code holds n bytes from at.
func need(code []byte, at uint32, n int) error {
	if uint64(at)+uint64(n) > uint64(len(code)) {
		have := 0
		if uint64(at) < uint64(len(code)) {
			have = len(code) - int(at)
		}
		return &ShortOperandError{At: at, Need: n, Have: have}
	}
	return nil
}

func ReadRegID(code []byte, at uint32) (RegID, error) {
	if err := need(code, at, 1); err != nil {
		return 0, err
	}
	return RegID(code[at]), nil
}

func ReadFloatRegID(code []byte, at uint32) (FloatRegID, error) {
	if err := need(code, at, 1); err != nil {
		return 0, err
	}
	return FloatRegID(code[at]), nil
}

func ReadMemPtr(code []byte, at uint32) (MemPtr, error) {
	if err := need(code, at, 4); err != nil {
		return 0, err
	}
	return MemPtr(binary.LittleEndian.Uint32(code[at:])), nil
}

func ReadU8(code []byte, at uint32) (uint8, error) {
	if err := need(code, at, 1); err != nil {
		return 0, err
	}
	return code[at], nil
}

func ReadU16(code []byte, at uint32) (uint16, error) {
	if err := need(code, at, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(code[at:]), nil
}

func ReadU32(code []byte, at uint32) (uint32, error) {
	if err := need(code, at, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(code[at:]), nil
}

func ReadI8(code []byte, at uint32) (int8, error) {
	if err := need(code, at, 1); err != nil {
		return 0, err
	}
	return int8(code[at]), nil
}

func ReadI16(code []byte, at uint32) (int16, error) {
	if err := need(code, at, 2); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(code[at:])), nil
}

func ReadI32(code []byte, at uint32) (int32, error) {
	if err := need(code, at, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(code[at:])), nil
}

// ReadFloat32 reads an IEEE-754 single precision value.
func ReadFloat32(code []byte, at uint32) (float32, error) {
	if err := need(code, at, 4); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(code[at:])), nil
}
