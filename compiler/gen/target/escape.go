package target

import (
	"go/token"
	"regexp"
	"strings"

	"github.com/syssam/teogen/compiler/gen"
)

var jsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var (
	dartReserved = gen.Names(
		"abstract", "as", "assert", "async", "await", "break", "case", "catch", "class",
		"const", "continue", "covariant", "default", "deferred", "do", "dynamic", "else",
		"enum", "export", "extends", "extension", "external", "factory", "false", "final",
		"finally", "for", "Function", "get", "hide", "if", "implements", "import", "in",
		"interface", "is", "late", "library", "mixin", "new", "null", "on", "operator",
		"part", "required", "rethrow", "return", "set", "show", "static", "super", "switch",
		"sync", "this", "throw", "true", "try", "typedef", "var", "void", "while", "with", "yield",
	)
	kotlinReserved = gen.Names(
		"as", "break", "class", "continue", "do", "else", "false", "for", "fun", "if", "in",
		"interface", "is", "null", "object", "package", "return", "super", "this", "throw",
		"true", "try", "typealias", "typeof", "val", "var", "when", "while",
	)
	swiftReserved = gen.Names(
		"associatedtype", "class", "deinit", "enum", "extension", "fileprivate", "func",
		"import", "init", "inout", "internal", "let", "open", "operator", "private",
		"protocol", "public", "rethrows", "static", "struct", "subscript", "typealias",
		"var", "break", "case", "continue", "default", "defer", "do", "else", "fallthrough",
		"for", "guard", "if", "in", "repeat", "return", "switch", "where", "while", "as",
		"Any", "catch", "false", "is", "nil", "super", "self", "Self", "throw", "throws",
		"true", "try",
	)
	rustReserved = gen.Names(
		"as", "async", "await", "break", "const", "continue", "dyn", "else", "enum", "extern",
		"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move", "mut",
		"pub", "ref", "return", "static", "struct", "trait", "true", "type", "unsafe", "use",
		"where", "while", "abstract", "become", "box", "do", "final", "macro", "override",
		"priv", "typeof", "unsized", "virtual", "yield", "try",
	)
	// rustRawForbidden cannot be raw identifiers.
	rustRawForbidden = gen.Names("self", "Self", "super", "crate")
	pythonReserved   = gen.Names(
		"False", "None", "True", "and", "as", "assert", "async", "await", "break", "class",
		"continue", "def", "del", "elif", "else", "except", "finally", "for", "from", "global",
		"if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
		"return", "try", "while", "with", "yield",
	)
)

func reserved(set map[string]struct{}, s string) bool {
	_, ok := set[s]
	return ok
}

// tsProperty quotes property names that are not identifiers.
func tsProperty(s string) string {
	if jsIdentRe.MatchString(s) {
		return s
	}
	return quote(s)
}

// dartIdent prefixes reserved words with "$". The wire name is kept
// through @JsonKey.
func dartIdent(s string) string {
	if reserved(dartReserved, s) {
		return "$" + s
	}
	return s
}

// kotlinIdent quotes reserved words with backticks and strips leading
// underscores, which are restored with @SerialName.
func kotlinIdent(s string) string {
	if t := strings.TrimLeft(s, "_"); t != s && t != "" {
		return kotlinIdent(t)
	}
	if reserved(kotlinReserved, s) {
		return "`" + s + "`"
	}
	return s
}

func swiftIdent(s string) string {
	if reserved(swiftReserved, s) {
		return "`" + s + "`"
	}
	return s
}

// rustIdent snake-cases s and escapes keywords as raw identifiers.
func rustIdent(s string) string {
	s = gen.Snake(s)
	switch {
	case reserved(rustRawForbidden, s):
		return s + "_"
	case reserved(rustReserved, s):
		return "r#" + s
	}
	return s
}

func pythonIdent(s string) string {
	if reserved(pythonReserved, s) {
		return s + "_"
	}
	return s
}

// goIdent exports s as a Go identifier.
func goIdent(s string) string {
	s = gen.Pascal(strings.TrimLeft(s, "_"))
	if !token.IsIdentifier(s) {
		return "X" + s
	}
	return s
}
