package emit

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/apparentlymart/insntab/isa"
)

// CXXOptions controls C++ header generation.
type CXXOptions struct {
	// Name is the file name of the header, "instructions.hxx" by default.
	Name string

	// Source names the schema in the generated header comment.
	Source string

	// Guard is the include guard macro. It defaults to the header name in
	// upper case.
	Guard string

	// Context is the leading parameter of every callback declaration.
	Context string
}

var cxxWord = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// CXX generates a C++ header with the same tables as the Go target: an
// OpCodes struct of opcode constants, the instruction_keywords array, one
// ParameterList specialization per opcode and a callback declaration per
// instruction.
func CXX(t *isa.Table, cat *isa.Catalog, opts CXXOptions) (Artifact, error) {
	if opts.Name == "" {
		opts.Name = "instructions.hxx"
	}
	if opts.Guard == "" {
		opts.Guard = strings.ToUpper(cIdentFrom(opts.Name))
	}
	if opts.Context == "" {
		opts.Context = "VirtualMachine* vm"
	}

	ins, err := resolveTable(t, cat)
	if err != nil {
		return Artifact{}, err
	}

	// The loader keeps these unique. A hand-built table might not.
	seen := make(map[string]string, len(ins))
	for _, in := range ins {
		if in.CName == "" {
			return Artifact{}, &InvariantViolationError{Reason: fmt.Sprintf("%s has no C++ constant name", in.Instruction)}
		}
		if prev, exists := seen[in.CName]; exists {
			return Artifact{}, &InvariantViolationError{Reason: fmt.Sprintf("%s and %s both map to the C++ constant OpCodes::%s", prev, in.ID, in.CName)}
		}
		seen[in.CName] = in.ID
	}

	// Parameters may not reuse a name from the context parameter, or the
	// name of a type that appears in the declarations.
	avoid := make(map[string]bool)
	for _, word := range cxxWord.FindAllString(opts.Context, -1) {
		avoid[word] = true
	}
	for _, in := range ins {
		for _, p := range in.Params {
			avoid[p.Desc.CXX] = true
		}
	}

	w := &bytes.Buffer{}
	source := opts.Source
	if source == "" {
		source = "an instruction schema"
	}
	fmt.Fprintf(w, "// Code generated by wrangle from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(w, "#ifndef %s\n", opts.Guard)
	fmt.Fprintf(w, "#define %s\n\n", opts.Guard)
	w.WriteString("#include <array>\n")
	w.WriteString("#include <cstdint>\n\n")

	w.WriteString("struct OpCodes {\n")
	for _, in := range ins {
		fmt.Fprintf(w, "  // %s: %s\n", in.Keyword, in.encoding())
		fmt.Fprintf(w, "  static const uint8_t %s = %d;\n", in.CName, in.Opcode)
	}
	w.WriteString("};\n\n")

	fmt.Fprintf(w, "inline constexpr std::array<const char *, %d> instruction_keywords = {\n", len(ins))
	for _, in := range ins {
		fmt.Fprintf(w, "    %q,\n", in.Keyword)
	}
	w.WriteString("};\n\n")

	w.WriteString("namespace parameters {\n\n")
	w.WriteString("template <uint8_t OP> struct ParameterList;\n\n")
	for _, in := range ins {
		if len(in.Params) == 0 {
			fmt.Fprintf(w, "template <> struct ParameterList<OpCodes::%s> {};\n\n", in.CName)
			continue
		}
		fmt.Fprintf(w, "template <> struct ParameterList<OpCodes::%s> {\n", in.CName)
		for i, name := range cxxParamNames(in, avoid) {
			fmt.Fprintf(w, "  %s %s;\n", in.Params[i].Desc.CXX, name)
		}
		w.WriteString("};\n\n")
	}
	w.WriteString("} // namespace parameters\n\n")

	w.WriteString("namespace callbacks {\n\n")
	for _, in := range ins {
		fmt.Fprintf(w, "void %s_cb(%s", in.Keyword, opts.Context)
		for i, name := range cxxParamNames(in, avoid) {
			fmt.Fprintf(w, ", %s %s", in.Params[i].Desc.CXX, name)
		}
		w.WriteString(");\n")
	}
	w.WriteString("\n} // namespace callbacks\n\n")

	fmt.Fprintf(w, "#endif // %s\n", opts.Guard)

	return Artifact{Name: opts.Name, Data: w.Bytes()}, nil
}

// cxxParamNames returns the C++ names of the instruction's parameters.
// Names that are C++ keywords or appear in avoid get trailing underscores
// until they clash with nothing.
func cxxParamNames(in *resolvedInsn, avoid map[string]bool) []string {
	taken := make(map[string]bool, len(avoid)+len(in.Params))
	for name := range avoid {
		taken[name] = true
	}
	for _, p := range in.Params {
		taken[p.Name] = true
	}

	ret := make([]string, len(in.Params))
	for i, p := range in.Params {
		name := p.Name
		if isa.IsCXXKeyword(name) || avoid[name] {
			for {
				name += "_"
				if !taken[name] && !isa.IsCXXKeyword(name) {
					break
				}
			}
			taken[name] = true
		}
		ret[i] = name
	}
	return ret
}

// cIdentFrom replaces every character that can't appear in a C identifier
// with an underscore.
func cIdentFrom(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
