package isa

// Assign numbers the instructions and returns the resulting opcode table.
//
// Without explicit opcodes in the schema, each instruction's opcode is its
// zero-based declaration index. Instructions that do ask for an explicit
// opcode keep it, and the others take the lowest free values in declaration
// order. Either way the resulting table is dense, starting at zero.
func Assign(ins []*Instruction) (*Table, error) {
	if len(ins) > MaxInstructions {
		first := ins[MaxInstructions]
		return nil, &OpcodeSpaceExhaustedError{Count: len(ins), ID: first.ID, Keyword: first.Keyword}
	}

	slots := make([]*Instruction, len(ins))

	for _, in := range ins {
		if !in.Fixed {
			continue
		}
		if int(in.Opcode) >= len(ins) {
			return nil, &OpcodeGapError{Opcode: in.Opcode, Count: len(ins), ID: in.ID, Keyword: in.Keyword}
		}
		if prev := slots[in.Opcode]; prev != nil {
			return nil, &OpcodeConflictError{Opcode: in.Opcode, ID: in.ID, Keyword: in.Keyword, PrevID: prev.ID}
		}
		slots[in.Opcode] = in
	}

	// There are exactly as many slots as instructions and no fixed opcode
	// is out of range, so the free slots and the unnumbered instructions
	// match up one-to-one.
	next := 0
	for _, in := range ins {
		if in.Fixed {
			continue
		}
		for slots[next] != nil {
			next++
		}
		in.Opcode = Opcode(next)
		slots[next] = in
	}

	return &Table{Instructions: slots}, nil
}
