package vmrt

import (
	"encoding/binary"
	"math"
)

// The append operations are the inverse of the Read operations. Generated
// parameter records use them to encode instructions, which is what
// assemblers and tests need.

func AppendRegID(dst []byte, v RegID) []byte {
	return append(dst, byte(v))
}

func AppendFloatRegID(dst []byte, v FloatRegID) []byte {
	return append(dst, byte(v))
}

func AppendMemPtr(dst []byte, v MemPtr) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendU16(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

func AppendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendI8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

func AppendI16(dst []byte, v int16) []byte {
	return binary.LittleEndian.AppendUint16(dst, uint16(v))
}

func AppendI32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func AppendFloat32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}
