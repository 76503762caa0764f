package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/apparentlymart/insntab/isa"
)

const exampleSchema = `{
	"0": {"keyword": "add", "args": {"dst": "reg", "src": "reg"}},
	"1": {"keyword": "halt", "args": {}}
}`

func mustTable(t *testing.T, src string) *isa.Table {
	t.Helper()
	ins, err := isa.Load([]byte(src), isa.DefaultCatalog())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	table, err := isa.Assign(ins)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	return table
}

func mustGo(t *testing.T, src string) map[string]*ast.File {
	t.Helper()
	arts, err := Go(mustTable(t, src), isa.DefaultCatalog(), GoOptions{Package: "example", Source: "test.json"})
	if err != nil {
		t.Fatalf("Go: %v", err)
	}

	fset := token.NewFileSet()
	files := make(map[string]*ast.File, len(arts))
	for _, art := range arts {
		f, err := parser.ParseFile(fset, art.Name, art.Data, parser.ParseComments)
		if err != nil {
			t.Fatalf("%s does not parse: %v\n%s", art.Name, err, art.Data)
		}
		if f.Name.Name != "example" {
			t.Errorf("%s declares package %s", art.Name, f.Name.Name)
		}
		if !ast.IsGenerated(f) {
			t.Errorf("%s is not marked as generated", art.Name)
		}
		files[art.Name] = f
	}
	for _, name := range []string{"opcodes.go", "params.go", "dispatch.go"} {
		if files[name] == nil {
			t.Fatalf("no %s artifact", name)
		}
	}
	return files
}

func findType(f *ast.File, name string) *ast.TypeSpec {
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			if ts := spec.(*ast.TypeSpec); ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

func findFunc(f *ast.File, name string) *ast.FuncDecl {
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == name {
			return fn
		}
	}
	return nil
}

// constValues returns the literal value of every constant declared in f.
func constValues(f *ast.File) map[string]string {
	ret := map[string]string{}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			for i, name := range vs.Names {
				if lit, ok := vs.Values[i].(*ast.BasicLit); ok {
					ret[name.Name] = lit.Value
				}
			}
		}
	}
	return ret
}

type field struct {
	Name string
	Type string
}

func structFields(t *testing.T, f *ast.File, name string) []field {
	t.Helper()
	ts := findType(f, name)
	if ts == nil {
		t.Fatalf("no type %s", name)
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		t.Fatalf("%s is not a struct", name)
	}
	var ret []field
	for _, fl := range st.Fields.List {
		for _, n := range fl.Names {
			ret = append(ret, field{n.Name, types.ExprString(fl.Type)})
		}
	}
	return ret
}

func methodParams(t *testing.T, f *ast.File, iface, method string) []field {
	t.Helper()
	ts := findType(f, iface)
	if ts == nil {
		t.Fatalf("no type %s", iface)
	}
	it, ok := ts.Type.(*ast.InterfaceType)
	if !ok {
		t.Fatalf("%s is not an interface", iface)
	}
	for _, m := range it.Methods.List {
		if len(m.Names) == 0 || m.Names[0].Name != method {
			continue
		}
		var ret []field
		for _, p := range m.Type.(*ast.FuncType).Params.List {
			for _, n := range p.Names {
				ret = append(ret, field{n.Name, types.ExprString(p.Type)})
			}
		}
		return ret
	}
	t.Fatalf("%s has no method %s", iface, method)
	return nil
}

func equalFields(a, b []field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGoExample(t *testing.T) {
	files := mustGo(t, exampleSchema)

	consts := constValues(files["opcodes.go"])
	if consts["OpAdd"] != "0" || consts["OpHalt"] != "1" || consts["NumOpcodes"] != "2" {
		t.Errorf("constants = %v", consts)
	}

	got := structFields(t, files["params.go"], "AddParams")
	want := []field{{"Dst", "vmrt.RegID"}, {"Src", "vmrt.RegID"}}
	if !equalFields(got, want) {
		t.Errorf("AddParams fields = %v, want %v", got, want)
	}
	if got := structFields(t, files["params.go"], "HaltParams"); len(got) != 0 {
		t.Errorf("HaltParams fields = %v, want none", got)
	}
	if findFunc(files["params.go"], "DecodeParams") == nil {
		t.Error("params.go has no DecodeParams")
	}
	if findFunc(files["params.go"], "decodeHalt") != nil {
		t.Error("instructions without operands should not get a decode helper")
	}

	got = methodParams(t, files["dispatch.go"], "Callbacks", "Add")
	want = []field{{"x", "X"}, {"dst", "vmrt.RegID"}, {"src", "vmrt.RegID"}}
	if !equalFields(got, want) {
		t.Errorf("Callbacks.Add params = %v, want %v", got, want)
	}
	got = methodParams(t, files["dispatch.go"], "Callbacks", "Halt")
	if !equalFields(got, []field{{"x", "X"}}) {
		t.Errorf("Callbacks.Halt params = %v", got)
	}

	step := findFunc(files["dispatch.go"], "Step")
	if step == nil {
		t.Fatal("dispatch.go has no Step")
	}
	if step.Type.TypeParams == nil || len(step.Type.TypeParams.List) != 1 {
		t.Error("Step should take one type parameter")
	}
}

func TestGoFieldFidelity(t *testing.T) {
	files := mustGo(t, `{
		"MIX": {"keyword": "mix", "args": {
			"z": "float", "where": "addr", "a": "u16", "off": "i8",
			"count": "u32", "fr": "fl_reg", "b": "i32", "tiny": "u8",
			"delta": "i16", "base_reg": "reg"
		}}
	}`)

	want := []field{
		{"Z", "float32"},
		{"Where", "vmrt.MemPtr"},
		{"A", "uint16"},
		{"Off", "int8"},
		{"Count", "uint32"},
		{"Fr", "vmrt.FloatRegID"},
		{"B", "int32"},
		{"Tiny", "uint8"},
		{"Delta", "int16"},
		{"BaseReg", "vmrt.RegID"},
	}
	if got := structFields(t, files["params.go"], "MixParams"); !equalFields(got, want) {
		t.Errorf("MixParams fields =\n%v\nwant\n%v", got, want)
	}

	got := methodParams(t, files["dispatch.go"], "Callbacks", "Mix")
	if len(got) != len(want)+1 || got[0].Name != "x" || got[len(got)-1] != (field{"base_reg", "vmrt.RegID"}) {
		t.Errorf("Callbacks.Mix params = %v", got)
	}
}

func TestGoSameShapeDistinctRecords(t *testing.T) {
	files := mustGo(t, `{
		"ADD": {"keyword": "add", "args": {"dst": "reg", "src": "reg"}},
		"SUB": {"keyword": "sub", "args": {"dst": "reg", "src": "reg"}}
	}`)
	for _, name := range []string{"AddParams", "SubParams"} {
		if findType(files["params.go"], name) == nil {
			t.Errorf("no record type %s", name)
		}
	}
}

func TestGoContextNameAvoidsParams(t *testing.T) {
	files := mustGo(t, `{"0": {"keyword": "mov", "args": {"x": "reg", "y": "reg"}}}`)
	got := methodParams(t, files["dispatch.go"], "Callbacks", "Mov")
	want := []field{{"x_", "X"}, {"x", "vmrt.RegID"}, {"y", "vmrt.RegID"}}
	if !equalFields(got, want) {
		t.Errorf("Callbacks.Mov params = %v, want %v", got, want)
	}
}

func TestGoDescription(t *testing.T) {
	arts, err := Go(mustTable(t, `{"HALT": {"keyword": "halt", "description": "stop the machine"}}`), isa.DefaultCatalog(), GoOptions{Package: "example"})
	if err != nil {
		t.Fatalf("Go: %v", err)
	}
	if !bytes.Contains(arts[0].Data, []byte("// stop the machine")) {
		t.Errorf("description missing from opcodes.go:\n%s", arts[0].Data)
	}
	if !bytes.Contains(arts[0].Data, []byte("// Encoding: 0x00 (width=1)")) {
		t.Errorf("encoding comment missing from opcodes.go:\n%s", arts[0].Data)
	}
}

func TestGoDeterministic(t *testing.T) {
	table := mustTable(t, exampleSchema)
	opts := GoOptions{Package: "example", Source: "test.json"}

	first, err := Go(table, isa.DefaultCatalog(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Go(mustTable(t, exampleSchema), isa.DefaultCatalog(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("got %d and %d artifacts", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || !bytes.Equal(first[i].Data, second[i].Data) {
			t.Errorf("%s differs between runs", first[i].Name)
		}
	}
}

func TestGoInvariantViolation(t *testing.T) {
	table := mustTable(t, exampleSchema)

	broken := isa.NewCatalog(isa.TypeDescriptor{
		Tag:    isa.TagReg,
		Go:     isa.GoType{Path: isa.RuntimePath, Name: "RegID"},
		Width:  0,
		Decode: "ReadRegID",
		Encode: "AppendRegID",
	})
	arts, err := Go(table, broken, GoOptions{Package: "example"})
	var violation *InvariantViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("error = %v, want *InvariantViolationError", err)
	}
	if arts != nil {
		t.Errorf("artifacts produced despite the violation")
	}

	_, err = Go(table, isa.NewCatalog(), GoOptions{Package: "example"})
	if !errors.As(err, &violation) {
		t.Errorf("missing type: error = %v, want *InvariantViolationError", err)
	}

	_, err = Go(&isa.Table{}, isa.DefaultCatalog(), GoOptions{Package: "example"})
	if !errors.As(err, &violation) {
		t.Errorf("empty table: error = %v, want *InvariantViolationError", err)
	}
}

func TestGoRejectsDecodeParamsCollision(t *testing.T) {
	// The loader refuses the keyword "decode", so only a hand-built table
	// can get this far.
	table := &isa.Table{Instructions: []*isa.Instruction{
		{ID: "0", CName: "OP_DECODE", Keyword: "decode", TypeName: "Decode"},
	}}
	_, err := Go(table, isa.DefaultCatalog(), GoOptions{Package: "example"})
	var violation *InvariantViolationError
	if !errors.As(err, &violation) || !strings.Contains(err.Error(), "DecodeParams") {
		t.Errorf("error = %v, want DecodeParams collision", err)
	}
}

func TestGoFullOpcodeSpace(t *testing.T) {
	var b strings.Builder
	b.WriteString("{")
	for i := 0; i < isa.MaxInstructions; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `"I%d": {"keyword": "op%d"}`, i, i)
	}
	b.WriteString("}")

	files := mustGo(t, b.String())
	if got := constValues(files["opcodes.go"])["NumOpcodes"]; got != "256" {
		t.Errorf("NumOpcodes = %s, want 256", got)
	}
}
