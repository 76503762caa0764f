package isa

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// LoadFile reads and validates the schema in the given file. Both JSON and
// YAML are accepted.
func LoadFile(filename string, cat *Catalog) ([]*Instruction, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	ret, err := Load(src, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return ret, nil
}

// Load parses and validates a schema, returning its instructions in
// declaration order. Opcodes are not assigned yet; see Assign.
//
// The schema is decoded into a YAML node tree rather than into Go maps
// because the order of both the instructions and their arguments is
// significant, and Go maps would lose it.
func Load(src []byte, cat *Catalog) ([]*Instruction, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("cannot parse schema: %s", err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &SchemaError{Reason: "schema is empty"}
	}

	root := unwrapInstructions(resolve(doc.Content[0]))
	if root.Kind != yaml.MappingNode {
		return nil, &SchemaError{Line: root.Line, Reason: "root must be a mapping from instruction id to definition"}
	}

	var ret []*Instruction
	byID := make(map[string]*Instruction)
	byKeyword := make(map[string]*Instruction)
	byTypeName := make(map[string]*Instruction)
	byCName := make(map[string]*Instruction)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := resolve(root.Content[i])
		defNode := resolve(root.Content[i+1])

		id := keyNode.Value
		if keyNode.Kind != yaml.ScalarNode || id == "" {
			return nil, &SchemaError{Line: keyNode.Line, Reason: "instruction id must be a non-empty string"}
		}
		if _, exists := byID[id]; exists {
			return nil, &SchemaError{ID: id, Line: keyNode.Line, Reason: "instruction id is declared more than once"}
		}

		ins, err := loadInstruction(id, len(ret), defNode, cat)
		if err != nil {
			return nil, err
		}

		// Keywords become generated identifiers, so two keywords that only
		// differ in ways the identifier conversion erases are duplicates too.
		if prev, exists := byKeyword[ins.Keyword]; exists {
			return nil, &DuplicateKeywordError{Keyword: ins.Keyword, ID: id, PrevID: prev.ID}
		}
		if prev, exists := byTypeName[ins.TypeName]; exists {
			return nil, &DuplicateKeywordError{Keyword: ins.Keyword, ID: id, PrevID: prev.ID}
		}
		if prev, exists := byCName[ins.CName]; exists {
			return nil, &SchemaError{ID: id, Keyword: ins.Keyword, Line: keyNode.Line, Reason: fmt.Sprintf("C++ opcode constant %s is already used by instruction %q", ins.CName, prev.ID)}
		}

		byID[id] = ins
		byKeyword[ins.Keyword] = ins
		byTypeName[ins.TypeName] = ins
		byCName[ins.CName] = ins
		ret = append(ret, ins)
	}

	if len(ret) == 0 {
		return nil, &SchemaError{Line: root.Line, Reason: "schema declares no instructions"}
	}

	return ret, nil
}

func loadInstruction(id string, index int, def *yaml.Node, cat *Catalog) (*Instruction, error) {
	if def.Kind != yaml.MappingNode {
		return nil, &SchemaError{ID: id, Line: def.Line, Reason: "definition must be a mapping"}
	}

	ins := &Instruction{
		ID:    id,
		Index: index,
	}

	// The fields may come in any order, but parameter errors should name the
	// keyword, so we gather everything before validating the arguments.
	var keywordNode, argsNode, opcodeNode *yaml.Node
	for i := 0; i+1 < len(def.Content); i += 2 {
		k := resolve(def.Content[i])
		v := resolve(def.Content[i+1])
		switch k.Value {
		case "keyword":
			keywordNode = v
		case "args":
			argsNode = v
		case "opcode":
			opcodeNode = v
		case "description":
			if !isString(v) {
				return nil, &SchemaError{ID: id, Line: v.Line, Reason: "description must be a string"}
			}
			ins.Description = v.Value
		default:
			return nil, &SchemaError{ID: id, Line: k.Line, Reason: fmt.Sprintf("unsupported field %q", k.Value)}
		}
	}

	if keywordNode == nil || isNull(keywordNode) {
		return nil, &SchemaError{ID: id, Line: def.Line, Reason: "definition has no keyword"}
	}
	if !isString(keywordNode) {
		return nil, &SchemaError{ID: id, Line: keywordNode.Line, Reason: "keyword must be a string"}
	}
	ins.Keyword = keywordNode.Value
	switch {
	case ins.Keyword == "":
		return nil, &SchemaError{ID: id, Line: keywordNode.Line, Reason: "keyword is empty"}
	case !isIdent(ins.Keyword):
		return nil, &SchemaError{ID: id, Keyword: ins.Keyword, Line: keywordNode.Line, Reason: "keyword is not a valid identifier"}
	}
	ins.TypeName = makeIdentTitle(ins.Keyword)
	switch {
	case !token.IsExported(ins.TypeName):
		return nil, &SchemaError{ID: id, Keyword: ins.Keyword, Line: keywordNode.Line, Reason: "keyword does not produce an exported identifier"}
	case reservedTypeNames[ins.TypeName]:
		return nil, &SchemaError{ID: id, Keyword: ins.Keyword, Line: keywordNode.Line, Reason: fmt.Sprintf("keyword would produce the record type %sParams, which is reserved", ins.TypeName)}
	}
	ins.CName = cName(id, ins.Keyword)

	if opcodeNode != nil && !isNull(opcodeNode) {
		v, err := strconv.ParseUint(opcodeNode.Value, 0, 64)
		if opcodeNode.Kind != yaml.ScalarNode || opcodeNode.ShortTag() != "!!int" || err != nil || v >= MaxInstructions {
			return nil, &SchemaError{ID: id, Keyword: ins.Keyword, Line: opcodeNode.Line, Reason: fmt.Sprintf("opcode must be an integer from 0 to %d", MaxInstructions-1)}
		}
		ins.Opcode = Opcode(v)
		ins.Fixed = true
	}

	params, err := loadParams(ins, argsNode, cat)
	if err != nil {
		return nil, err
	}
	ins.Params = params

	return ins, nil
}

func loadParams(ins *Instruction, args *yaml.Node, cat *Catalog) ([]Param, error) {
	// An absent or null "args" is the same as an empty one.
	if args == nil || isNull(args) {
		return nil, nil
	}
	if args.Kind != yaml.MappingNode {
		return nil, &SchemaError{ID: ins.ID, Keyword: ins.Keyword, Line: args.Line, Reason: "args must be a mapping from parameter name to type"}
	}

	var ret []Param
	names := make(map[string]bool)
	fields := make(map[string]bool)
	for i := 0; i+1 < len(args.Content); i += 2 {
		k := resolve(args.Content[i])
		v := resolve(args.Content[i+1])

		name := k.Value
		if k.Kind != yaml.ScalarNode || !isIdent(name) {
			return nil, &SchemaError{ID: ins.ID, Keyword: ins.Keyword, Line: k.Line, Reason: fmt.Sprintf("parameter name %q is not a valid identifier", name)}
		}
		field := makeIdentTitle(name)
		switch {
		case !token.IsExported(field):
			return nil, &SchemaError{ID: ins.ID, Keyword: ins.Keyword, Line: k.Line, Reason: fmt.Sprintf("parameter name %q does not produce an exported field name", name)}
		case reservedFields[field]:
			return nil, &SchemaError{ID: ins.ID, Keyword: ins.Keyword, Line: k.Line, Reason: fmt.Sprintf("parameter name %q would produce reserved field name %s", name, field)}
		}
		if names[name] || fields[field] {
			return nil, &DuplicateParameterNameError{ID: ins.ID, Keyword: ins.Keyword, Param: name}
		}
		names[name] = true
		fields[field] = true

		if !isString(v) {
			return nil, &SchemaError{ID: ins.ID, Keyword: ins.Keyword, Line: v.Line, Reason: fmt.Sprintf("type of parameter %q must be a string", name)}
		}
		tag := Tag(v.Value)
		if _, err := cat.Describe(tag); err != nil {
			var unknown *UnknownTypeTagError
			if errors.As(err, &unknown) {
				return nil, &UnknownTypeTagError{Tag: tag, ID: ins.ID, Keyword: ins.Keyword, Param: name}
			}
			return nil, err
		}

		ret = append(ret, Param{
			Name:      name,
			FieldName: field,
			Tag:       tag,
		})
	}
	return ret, nil
}

// unwrapInstructions accepts schemas whose instruction mapping sits under a
// single "instructions" key.
func unwrapInstructions(root *yaml.Node) *yaml.Node {
	if root.Kind != yaml.MappingNode || len(root.Content) != 2 {
		return root
	}
	if k := resolve(root.Content[0]); k.Value != "instructions" {
		return root
	}
	inner := resolve(root.Content[1])
	if inner.Kind != yaml.MappingNode {
		return root
	}
	// An instruction whose id happens to be "instructions" has a keyword
	// field directly inside it.
	for i := 0; i+1 < len(inner.Content); i += 2 {
		if resolve(inner.Content[i]).Value == "keyword" {
			return root
		}
	}
	return inner
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}
