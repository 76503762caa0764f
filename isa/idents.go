package isa

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"
)

// makeIdentTitle turns a schema name like "immediate_value" into an
// exported Go identifier stem like "ImmediateValue".
func makeIdentTitle(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			nextUpper = true
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
			nextUpper = false
		default:
			nextUpper = true
		}
	}
	return b.String()
}

// isIdent reports whether s can be used verbatim as an identifier in the
// generated code.
func isIdent(s string) bool {
	return token.IsIdentifier(s) && !token.IsKeyword(s)
}

// reservedFields are the method names of every generated parameter record,
// which a field may therefore not use.
var reservedFields = map[string]bool{
	"Opcode":   true,
	"String":   true,
	"AppendTo": true,
}

// reservedTypeNames are identifier stems whose records would clash with
// other declarations of the generated package: "Decode" would declare
// DecodeParams a second time.
var reservedTypeNames = map[string]bool{
	"Decode": true,
}

var cIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// cxxKeywords are the reserved words and alternative tokens of C++.
var cxxKeywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "and_eq": true, "asm": true,
	"auto": true, "bitand": true, "bitor": true, "bool": true, "break": true,
	"case": true, "catch": true, "char": true, "char8_t": true, "char16_t": true,
	"char32_t": true, "class": true, "compl": true, "concept": true, "const": true,
	"consteval": true, "constexpr": true, "constinit": true, "const_cast": true,
	"continue": true, "co_await": true, "co_return": true, "co_yield": true,
	"decltype": true, "default": true, "delete": true, "do": true, "double": true,
	"dynamic_cast": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "false": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "not": true, "not_eq": true, "nullptr": true,
	"operator": true, "or": true, "or_eq": true, "private": true,
	"protected": true, "public": true, "register": true,
	"reinterpret_cast": true, "requires": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "static_assert": true,
	"static_cast": true, "struct": true, "switch": true, "template": true,
	"this": true, "thread_local": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typeid": true, "typename": true, "union": true,
	"unsigned": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "wchar_t": true, "while": true, "xor": true, "xor_eq": true,
}

// IsCXXKeyword reports whether s is reserved in C++ and so can't name a
// constant, field or parameter in a generated header.
func IsCXXKeyword(s string) bool {
	return cxxKeywords[s]
}

// cName returns the name of an instruction's opcode constant in the C++
// header: the id itself when it is usable as a C++ identifier, otherwise a
// name derived from the keyword.
func cName(id, keyword string) string {
	if cIdent.MatchString(id) && !cxxKeywords[id] && !strings.Contains(id, "__") && !reservedPrefix(id) {
		return id
	}
	return "OP_" + strings.ToUpper(keyword)
}

// reservedPrefix reports whether s starts with an underscore followed by an
// upper case letter, which C++ reserves for the implementation.
func reservedPrefix(s string) bool {
	return len(s) > 1 && s[0] == '_' && s[1] >= 'A' && s[1] <= 'Z'
}
