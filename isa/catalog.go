package isa

import (
	"fmt"
	"sort"
)

// Tag is the name a schema uses for a parameter type.
type Tag string

const (
	TagReg      Tag = "reg"
	TagFloatReg Tag = "fl_reg"
	TagAddr     Tag = "addr"
	TagU8       Tag = "u8"
	TagU16      Tag = "u16"
	TagU32      Tag = "u32"
	TagI8       Tag = "i8"
	TagI16      Tag = "i16"
	TagI32      Tag = "i32"
	TagFloat    Tag = "float"
)

// RuntimePath is the import path of the package that generated code calls
// into for operand types and their decode and encode operations.
const RuntimePath = "github.com/apparentlymart/insntab/vmrt"

// GoType names a Go type. Path is empty for predeclared types.
type GoType struct {
	Path string
	Name string
}

func (t GoType) String() string {
	if t.Path == "" {
		return t.Name
	}
	return t.Path + "." + t.Name
}

// TypeDescriptor describes one parameter type: what a decoded value looks
// like in generated code, how many bytes it occupies in the instruction
// stream, and which runtime operations read and write it.
type TypeDescriptor struct {
	Tag     Tag
	Go      GoType
	CXX     string
	Width   int
	Decode  string // decode operation in RuntimePath, e.g. "ReadU16"
	Encode  string // encode operation in RuntimePath, e.g. "AppendU16"
	Summary string
}

// Catalog is the fixed vocabulary of parameter types. It is read-only once
// constructed.
type Catalog struct {
	types map[Tag]TypeDescriptor
}

func NewCatalog(descs ...TypeDescriptor) *Catalog {
	ret := &Catalog{types: make(map[Tag]TypeDescriptor, len(descs))}
	for _, d := range descs {
		ret.types[d.Tag] = d
	}
	return ret
}

// Describe returns the descriptor registered for tag.
func (c *Catalog) Describe(tag Tag) (TypeDescriptor, error) {
	d, ok := c.types[tag]
	if !ok {
		return TypeDescriptor{}, &UnknownTypeTagError{Tag: tag}
	}
	return d, nil
}

// Tags returns the registered tags in lexical order.
func (c *Catalog) Tags() []Tag {
	ret := make([]Tag, 0, len(c.types))
	for tag := range c.types {
		ret = append(ret, tag)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}

func runtimeType(name string) GoType {
	return GoType{Path: RuntimePath, Name: name}
}

func builtinType(name string) GoType {
	return GoType{Name: name}
}

var defaultCatalog = NewCatalog(
	TypeDescriptor{TagReg, runtimeType("RegID"), "RegID", 1, "ReadRegID", "AppendRegID", "general register id"},
	TypeDescriptor{TagFloatReg, runtimeType("FloatRegID"), "FL_RegID", 1, "ReadFloatRegID", "AppendFloatRegID", "floating point register id"},
	// MemPtr is the interpreter's 32-bit pointer-sized integer.
	TypeDescriptor{TagAddr, runtimeType("MemPtr"), "MemPtr", 4, "ReadMemPtr", "AppendMemPtr", "memory address"},
	TypeDescriptor{TagU8, builtinType("uint8"), "uint8_t", 1, "ReadU8", "AppendU8", "unsigned 8-bit integer"},
	TypeDescriptor{TagU16, builtinType("uint16"), "uint16_t", 2, "ReadU16", "AppendU16", "unsigned 16-bit integer"},
	TypeDescriptor{TagU32, builtinType("uint32"), "uint32_t", 4, "ReadU32", "AppendU32", "unsigned 32-bit integer"},
	TypeDescriptor{TagI8, builtinType("int8"), "int8_t", 1, "ReadI8", "AppendI8", "signed 8-bit integer"},
	TypeDescriptor{TagI16, builtinType("int16"), "int16_t", 2, "ReadI16", "AppendI16", "signed 16-bit integer"},
	TypeDescriptor{TagI32, builtinType("int32"), "int32_t", 4, "ReadI32", "AppendI32", "signed 32-bit integer"},
	TypeDescriptor{TagFloat, builtinType("float32"), "float", 4, "ReadFloat32", "AppendFloat32", "IEEE-754 single precision float"},
)

// DefaultCatalog returns the process-wide catalog of parameter types that
// schemas may refer to.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func (d TypeDescriptor) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", d.Tag, d.Go, d.Width)
}
