package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/apparentlymart/insntab/isa"
)

const rt = isa.RuntimePath

// GoOptions controls Go code generation.
type GoOptions struct {
	// Package is the name of the generated package.
	Package string

	// Source names the schema in the generated header comment.
	Source string
}

type goInsn struct {
	*resolvedInsn

	Const   string // opcode constant, e.g. OpAdd
	Record  string // parameter record type, e.g. AddParams
	Decoder string // per-opcode decode helper, e.g. decodeAdd
}

type goGen struct {
	opts GoOptions
	ins  []*goInsn
}

// Go generates the Go artifacts for the table: opcodes.go with the opcode
// enumeration and keyword table, params.go with one parameter record type
// per opcode, and dispatch.go with the callback declarations and the
// dispatch routine.
func Go(t *isa.Table, cat *isa.Catalog, opts GoOptions) ([]Artifact, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("no package name given for generated Go code")
	}

	ins, err := resolveTable(t, cat)
	if err != nil {
		return nil, err
	}
	g := &goGen{opts: opts}
	for _, in := range ins {
		gi := &goInsn{
			resolvedInsn: in,
			Const:        "Op" + in.TypeName,
			Record:       in.TypeName + "Params",
			Decoder:      "decode" + in.TypeName,
		}
		if gi.Record == "DecodeParams" {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("%s would declare DecodeParams twice", in.Instruction)}
		}
		g.ins = append(g.ins, gi)
	}

	files := []struct {
		name  string
		build func(f *jen.File)
	}{
		{"opcodes.go", g.opcodes},
		{"params.go", g.params},
		{"dispatch.go", g.dispatch},
	}

	var ret []Artifact
	for _, file := range files {
		f := g.newFile()
		file.build(f)

		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			// Render only fails if we produced something that isn't Go.
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("generated %s does not parse: %s", file.name, err)}
		}
		ret = append(ret, Artifact{Name: file.name, Data: buf.Bytes()})
	}
	return ret, nil
}

func (g *goGen) newFile() *jen.File {
	f := jen.NewFile(g.opts.Package)
	source := g.opts.Source
	if source == "" {
		source = "an instruction schema"
	}
	f.HeaderComment(fmt.Sprintf("Code generated by wrangle from %s. DO NOT EDIT.", source))
	f.ImportName(rt, "vmrt")
	return f
}

func (g *goGen) opcodes(f *jen.File) {
	f.Line()
	f.Comment("Opcode identifies an instruction. It is the first byte of the")
	f.Comment("instruction's encoding.")
	f.Type().Id("Opcode").Uint8()

	f.Line()
	f.Const().DefsFunc(func(defs *jen.Group) {
		for _, in := range g.ins {
			defs.Comment(fmt.Sprintf("%s is the opcode of %q (symbol %q).", in.Const, in.Keyword, in.ID))
			docLines(defs, in.Description)
			defs.Comment("Encoding: " + in.encoding())
			defs.Id(in.Const).Id("Opcode").Op("=").Lit(int(in.Opcode))
		}
	})

	f.Line()
	f.Comment("NumOpcodes is the number of assigned opcodes. Every value below it")
	f.Comment("is a valid Opcode.")
	f.Const().Id("NumOpcodes").Op("=").Lit(len(g.ins))

	g.opcodeTable(f, "keywords", jen.String(), func(in *goInsn) jen.Code { return jen.Lit(in.Keyword) })
	g.opcodeTable(f, "symbols", jen.String(), func(in *goInsn) jen.Code { return jen.Lit(in.ID) })
	g.opcodeTable(f, "widths", jen.Uint32(), func(in *goInsn) jen.Code { return jen.Lit(in.Width) })

	valid := jen.If(jen.Op("!").Id("op").Dot("Valid").Call())

	f.Line()
	f.Comment("Valid reports whether op is assigned to an instruction.")
	f.Func().Params(jen.Id("op").Id("Opcode")).Id("Valid").Params().Bool().Block(
		jen.Return(jen.Int().Call(jen.Id("op")).Op("<").Id("NumOpcodes")),
	)

	f.Line()
	f.Comment("String returns the keyword of the instruction.")
	f.Func().Params(jen.Id("op").Id("Opcode")).Id("String").Params().String().Block(
		valid.Clone().Block(
			jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit("Opcode(%d)"), jen.Uint8().Call(jen.Id("op")))),
		),
		jen.Return(jen.Id("keywords").Index(jen.Id("op"))),
	)

	f.Line()
	f.Comment("Symbol returns the id the instruction was declared under.")
	f.Func().Params(jen.Id("op").Id("Opcode")).Id("Symbol").Params().String().Block(
		valid.Clone().Block(jen.Return(jen.Lit(""))),
		jen.Return(jen.Id("symbols").Index(jen.Id("op"))),
	)

	f.Line()
	f.Comment("Width returns the size of the instruction's encoding in bytes,")
	f.Comment("including the opcode byte, or zero if op is not valid.")
	f.Func().Params(jen.Id("op").Id("Opcode")).Id("Width").Params().Uint32().Block(
		valid.Clone().Block(jen.Return(jen.Lit(0))),
		jen.Return(jen.Id("widths").Index(jen.Id("op"))),
	)

	lookup := func(name, table, arg string) {
		f.Func().Id(name).Params(jen.Id(arg).String()).Params(jen.Id("Opcode"), jen.Bool()).Block(
			jen.For(jen.List(jen.Id("op"), jen.Id("s")).Op(":=").Range().Id(table)).Block(
				jen.If(jen.Id("s").Op("==").Id(arg)).Block(
					jen.Return(jen.Id("Opcode").Call(jen.Id("op")), jen.True()),
				),
			),
			jen.Return(jen.Lit(0), jen.False()),
		)
	}
	f.Line()
	f.Comment("LookupKeyword returns the opcode of the instruction with the given")
	f.Comment("keyword.")
	lookup("LookupKeyword", "keywords", "keyword")
	f.Line()
	f.Comment("LookupSymbol returns the opcode of the instruction declared under")
	f.Comment("the given id.")
	lookup("LookupSymbol", "symbols", "symbol")
}

// opcodeTable emits an array indexed by opcode, one keyed element per line.
func (g *goGen) opcodeTable(f *jen.File, name string, elem *jen.Statement, value func(in *goInsn) jen.Code) {
	f.Line()
	items := make([]jen.Code, 0, len(g.ins))
	for _, in := range g.ins {
		items = append(items, jen.Id(in.Const).Op(":").Add(value(in)))
	}
	f.Var().Id(name).Op("=").Index(jen.Id("NumOpcodes")).Add(elem).Custom(jen.Options{
		Open:      "{",
		Close:     "}",
		Separator: ",",
		Multi:     true,
	}, items...)
}

func (g *goGen) params(f *jen.File) {
	f.Line()
	f.Comment("Params is the decoded operand record of one instruction. Every opcode")
	f.Comment("has its own implementation, even when two instructions take the same")
	f.Comment("operand types, so a record always belongs to exactly one opcode.")
	f.Type().Id("Params").Interface(
		jen.Id("Opcode").Params().Id("Opcode"),
		jen.Id("AppendTo").Params(jen.Id("dst").Index().Byte()).Index().Byte(),
		jen.Id("String").Params().String(),
		jen.Id("params").Params(),
	)

	for _, in := range g.ins {
		g.record(f, in)
	}

	f.Line()
	f.Comment("DecodeParams decodes the instruction at pc into its parameter record")
	f.Comment("and returns the address of the instruction that follows it.")
	f.Func().Id("DecodeParams").Params(
		jen.Id("code").Index().Byte(),
		jen.Id("pc").Uint32(),
	).Params(jen.Id("Params"), jen.Uint32(), jen.Error()).Block(
		jen.If(jen.Uint64().Call(jen.Id("pc")).Op(">=").Uint64().Call(jen.Len(jen.Id("code")))).Block(
			jen.Return(jen.Nil(), jen.Id("pc"), endOfCode(jen.Id("pc"))),
		),
		jen.Switch(
			jen.Id("op").Op(":=").Id("Opcode").Call(jen.Id("code").Index(jen.Id("pc"))),
			jen.Id("op"),
		).BlockFunc(func(sw *jen.Group) {
			for _, in := range g.ins {
				if len(in.Params) == 0 {
					sw.Case(jen.Id(in.Const)).Block(
						jen.Return(jen.Id(in.Record).Values(), jen.Id("pc").Op("+").Lit(1), jen.Nil()),
					)
					continue
				}
				sw.Case(jen.Id(in.Const)).Block(
					jen.List(jen.Id("p"), jen.Id("next"), jen.Err()).Op(":=").Id(in.Decoder).Call(jen.Id("code"), jen.Id("pc").Op("+").Lit(1)),
					jen.If(jen.Err().Op("!=").Nil()).Block(
						jen.Return(jen.Nil(), jen.Id("pc"), truncated(jen.Id("pc"))),
					),
					jen.Return(jen.Id("p"), jen.Id("next"), jen.Nil()),
				)
			}
			sw.Default().Block(
				jen.Return(jen.Nil(), jen.Id("pc"), unknownOpcode(jen.Id("pc"))),
			)
		}),
	)
}

func (g *goGen) record(f *jen.File, in *goInsn) {
	f.Line()
	if len(in.Params) == 0 {
		f.Comment(fmt.Sprintf("%s is the parameter record of %q, which has no operands.", in.Record, in.Keyword))
	} else {
		f.Comment(fmt.Sprintf("%s holds the operands of %q in encoding order.", in.Record, in.Keyword))
	}
	f.Type().Id(in.Record).StructFunc(func(fields *jen.Group) {
		for _, p := range in.Params {
			fields.Id(p.FieldName).Add(goType(p.Desc.Go))
		}
	})

	f.Line()
	f.Func().Params(jen.Id(in.Record)).Id("Opcode").Params().Id("Opcode").Block(
		jen.Return(jen.Id(in.Const)),
	)
	f.Line()
	f.Func().Params(jen.Id(in.Record)).Id("params").Params().Block()

	f.Line()
	f.Comment("AppendTo appends the encoded instruction, opcode first, to dst.")
	f.Func().Params(jen.Id("p").Id(in.Record)).Id("AppendTo").Params(
		jen.Id("dst").Index().Byte(),
	).Index().Byte().BlockFunc(func(body *jen.Group) {
		opByte := jen.Byte().Call(jen.Id(in.Const))
		if len(in.Params) == 0 {
			body.Return(jen.Append(jen.Id("dst"), opByte))
			return
		}
		body.Id("dst").Op("=").Append(jen.Id("dst"), opByte)
		for _, p := range in.Params {
			body.Id("dst").Op("=").Qual(rt, p.Desc.Encode).Call(jen.Id("dst"), jen.Id("p").Dot(p.FieldName))
		}
		body.Return(jen.Id("dst"))
	})

	f.Line()
	f.Func().Params(jen.Id("p").Id(in.Record)).Id("String").Params().String().BlockFunc(func(body *jen.Group) {
		if len(in.Params) == 0 {
			body.Return(jen.Lit(in.Keyword))
			return
		}
		verbs := make([]string, len(in.Params))
		args := []jen.Code{nil}
		for i, p := range in.Params {
			verbs[i] = "%v"
			args = append(args, jen.Id("p").Dot(p.FieldName))
		}
		args[0] = jen.Lit(in.Keyword + " " + strings.Join(verbs, ", "))
		body.Return(jen.Qual("fmt", "Sprintf").Call(args...))
	})

	if len(in.Params) == 0 {
		return
	}

	// Each operand is read with its type's decode operation and the cursor
	// then moves on by that type's fixed width.
	f.Line()
	f.Func().Id(in.Decoder).Params(
		jen.Id("code").Index().Byte(),
		jen.Id("at").Uint32(),
	).Params(
		jen.Id("p").Id(in.Record),
		jen.Id("next").Uint32(),
		jen.Err().Error(),
	).BlockFunc(func(body *jen.Group) {
		for _, p := range in.Params {
			body.If(
				jen.List(jen.Id("p").Dot(p.FieldName), jen.Err()).Op("=").Qual(rt, p.Desc.Decode).Call(jen.Id("code"), jen.Id("at")),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Id("p"), jen.Id("at"), jen.Err()),
			)
			body.Id("at").Op("+=").Lit(p.Desc.Width)
		}
		body.Return(jen.Id("p"), jen.Id("at"), jen.Nil())
	})
}

func (g *goGen) dispatch(f *jen.File) {
	f.Line()
	f.Comment("Callbacks declares one handler per instruction. A handler receives the")
	f.Comment("execution context followed by the instruction's operands in encoding")
	f.Comment("order.")
	f.Type().Id("Callbacks").Types(jen.Id("X").Id("any")).InterfaceFunc(func(methods *jen.Group) {
		for _, in := range g.ins {
			methods.Comment(fmt.Sprintf("%s handles %q.", in.TypeName, in.Keyword))
			docLines(methods, in.Description)
			params := []jen.Code{jen.Id(in.contextName()).Id("X")}
			for _, p := range in.Params {
				params = append(params, jen.Id(p.Name).Add(goType(p.Desc.Go)))
			}
			methods.Id(in.TypeName).Params(params...).Error()
		}
	})

	f.Line()
	f.Comment("Step fetches the instruction at *pc, decodes its operands and calls")
	f.Comment("its handler with x.")
	f.Comment("")
	f.Comment("Before the handler runs, *pc is moved to the following instruction, so")
	f.Comment("handlers that transfer control may overwrite it. If the opcode is not")
	f.Comment("assigned or the operands run past the end of code, Step returns the")
	f.Comment("fault without calling any handler and leaves *pc unchanged.")
	f.Func().Id("Step").Types(jen.Id("X").Id("any")).Params(
		jen.Id("x").Id("X"),
		jen.Id("cb").Id("Callbacks").Types(jen.Id("X")),
		jen.Id("code").Index().Byte(),
		jen.Id("pc").Op("*").Uint32(),
	).Error().Block(
		jen.Id("start").Op(":=").Op("*").Id("pc"),
		jen.If(jen.Uint64().Call(jen.Id("start")).Op(">=").Uint64().Call(jen.Len(jen.Id("code")))).Block(
			jen.Return(endOfCode(jen.Id("start"))),
		),
		jen.Switch(
			jen.Id("op").Op(":=").Id("Opcode").Call(jen.Id("code").Index(jen.Id("start"))),
			jen.Id("op"),
		).BlockFunc(func(sw *jen.Group) {
			for _, in := range g.ins {
				if len(in.Params) == 0 {
					sw.Case(jen.Id(in.Const)).Block(
						jen.Op("*").Id("pc").Op("=").Id("start").Op("+").Lit(1),
						jen.Return(jen.Id("cb").Dot(in.TypeName).Call(jen.Id("x"))),
					)
					continue
				}
				args := []jen.Code{jen.Id("x")}
				for _, p := range in.Params {
					args = append(args, jen.Id("p").Dot(p.FieldName))
				}
				sw.Case(jen.Id(in.Const)).Block(
					jen.List(jen.Id("p"), jen.Id("next"), jen.Err()).Op(":=").Id(in.Decoder).Call(jen.Id("code"), jen.Id("start").Op("+").Lit(1)),
					jen.If(jen.Err().Op("!=").Nil()).Block(
						jen.Return(truncated(jen.Id("start"))),
					),
					jen.Op("*").Id("pc").Op("=").Id("next"),
					jen.Return(jen.Id("cb").Dot(in.TypeName).Call(args...)),
				)
			}
			sw.Default().Block(
				jen.Return(unknownOpcode(jen.Id("start"))),
			)
		}),
	)
}

// contextName picks the name of a handler's context parameter so that it
// can't collide with the operand names.
func (in *goInsn) contextName() string {
	name := "x"
	for {
		taken := false
		for _, p := range in.Params {
			if p.Name == name {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
		name += "_"
	}
}

func goType(t isa.GoType) jen.Code {
	if t.Path == "" {
		return jen.Id(t.Name)
	}
	return jen.Qual(t.Path, t.Name)
}

func docLines(g *jen.Group, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		g.Comment(strings.TrimRight(line, " \t"))
	}
}

func endOfCode(pc jen.Code) jen.Code {
	return jen.Op("&").Qual(rt, "EndOfCodeError").Values(jen.Dict{
		jen.Id("PC"): pc,
	})
}

func unknownOpcode(pc jen.Code) jen.Code {
	return jen.Op("&").Qual(rt, "UnknownOpcodeError").Values(jen.Dict{
		jen.Id("Opcode"): jen.Uint8().Call(jen.Id("op")),
		jen.Id("PC"):     pc,
	})
}

func truncated(pc jen.Code) jen.Code {
	return jen.Qual(rt, "Truncated").Call(jen.Uint8().Call(jen.Id("op")), pc, jen.Err())
}
