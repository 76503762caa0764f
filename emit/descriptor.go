package emit

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/apparentlymart/insntab/isa"
)

// DescriptorVersion is bumped whenever the layout of TableDescriptor
// changes incompatibly.
const DescriptorVersion = 1

// TableDescriptor is a self-contained description of an instruction table
// for tools outside of Go, such as assemblers and disassemblers. Integer
// map keys keep the encoding compact.
type TableDescriptor struct {
	Version      int                     `cbor:"1,keyasint"`
	Instructions []InstructionDescriptor `cbor:"2,keyasint"`
}

type InstructionDescriptor struct {
	Opcode      uint8             `cbor:"1,keyasint"`
	ID          string            `cbor:"2,keyasint"`
	Keyword     string            `cbor:"3,keyasint"`
	Width       int               `cbor:"4,keyasint"`
	Params      []ParamDescriptor `cbor:"5,keyasint,omitempty"`
	Description string            `cbor:"6,keyasint,omitempty"`
}

type ParamDescriptor struct {
	Name  string `cbor:"1,keyasint"`
	Tag   string `cbor:"2,keyasint"`
	Width int    `cbor:"3,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("emit: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Descriptor encodes the table as canonical CBOR, so that the same table
// always produces the same bytes.
func Descriptor(t *isa.Table, cat *isa.Catalog) ([]byte, error) {
	ins, err := resolveTable(t, cat)
	if err != nil {
		return nil, err
	}

	d := &TableDescriptor{
		Version:      DescriptorVersion,
		Instructions: make([]InstructionDescriptor, 0, len(ins)),
	}
	for _, in := range ins {
		id := InstructionDescriptor{
			Opcode:      uint8(in.Opcode),
			ID:          in.ID,
			Keyword:     in.Keyword,
			Width:       in.Width,
			Description: in.Description,
		}
		for _, p := range in.Params {
			id.Params = append(id.Params, ParamDescriptor{
				Name:  p.Name,
				Tag:   string(p.Tag),
				Width: p.Desc.Width,
			})
		}
		d.Instructions = append(d.Instructions, id)
	}
	return cborEncMode.Marshal(d)
}

// DecodeDescriptor reads a descriptor produced by Descriptor.
func DecodeDescriptor(data []byte) (*TableDescriptor, error) {
	var d TableDescriptor
	if err := cbor.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("emit: unmarshal descriptor: %w", err)
	}
	if d.Version != DescriptorVersion {
		return nil, fmt.Errorf("emit: descriptor version %d is not supported", d.Version)
	}
	for i, in := range d.Instructions {
		if int(in.Opcode) != i {
			return nil, fmt.Errorf("emit: descriptor entry %d has opcode %d", i, in.Opcode)
		}
	}
	return &d, nil
}
