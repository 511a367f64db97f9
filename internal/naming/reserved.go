package naming

import "strings"

// ReservedWords is a reserved-word list of one target language.
type ReservedWords struct {
	words         map[string]struct{}
	caseSensitive bool
}

// NewReservedWords builds a list. SQL keywords are matched case-insensitively.
func NewReservedWords(caseSensitive bool, words ...string) ReservedWords {
	rw := ReservedWords{words: make(map[string]struct{}, len(words)), caseSensitive: caseSensitive}
	for _, w := range words {
		if !caseSensitive {
			w = strings.ToLower(w)
		}
		rw.words[w] = struct{}{}
	}
	return rw
}

// Contains reports whether s is reserved.
func (rw ReservedWords) Contains(s string) bool {
	if rw.words == nil {
		return false
	}
	if !rw.caseSensitive {
		s = strings.ToLower(s)
	}
	_, ok := rw.words[s]
	return ok
}

// NoReserved accepts every identifier.
var NoReserved = ReservedWords{}

var JavaReserved = NewReservedWords(true,
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char", "class", "const",
	"continue", "default", "do", "double", "else", "enum", "extends", "final", "finally", "float",
	"for", "goto", "if", "implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "package", "private", "protected", "public", "return", "short", "static", "strictfp",
	"super", "switch", "synchronized", "this", "throw", "throws", "transient", "try", "void",
	"volatile", "while", "true", "false", "null", "var", "record", "yield",
	// clash with java.lang and the generated scaffolding
	"Object", "String", "Class", "System", "Override", "Entity", "Table", "Id",
)

var DartReserved = NewReservedWords(true,
	"abstract", "as", "assert", "async", "await", "break", "case", "catch", "class", "const",
	"continue", "covariant", "default", "deferred", "do", "dynamic", "else", "enum", "export",
	"extends", "extension", "external", "factory", "false", "final", "finally", "for", "Function",
	"get", "hide", "if", "implements", "import", "in", "interface", "is", "late", "library",
	"mixin", "new", "null", "on", "operator", "part", "required", "rethrow", "return", "set",
	"show", "static", "super", "switch", "sync", "this", "throw", "true", "try", "typedef", "var",
	"void", "while", "with", "yield",
	"Map", "List", "Object", "String", "State", "Widget",
)

var SQLReserved = NewReservedWords(false,
	"add", "all", "alter", "and", "as", "asc", "between", "by", "case", "check", "column",
	"constraint", "create", "cross", "current_date", "current_time", "current_user", "database",
	"default", "delete", "desc", "distinct", "drop", "else", "exists", "false", "for", "foreign",
	"from", "full", "group", "having", "in", "index", "inner", "insert", "interval", "into", "is",
	"join", "key", "left", "like", "limit", "match", "not", "null", "on", "or", "order", "outer",
	"primary", "range", "references", "rename", "right", "row", "rows", "select", "set", "table",
	"then", "to", "trigger", "true", "union", "unique", "update", "usage", "user", "using",
	"values", "view", "when", "where", "with",
)

// Union merges case-sensitive lists.
func Union(lists ...ReservedWords) ReservedWords {
	out := ReservedWords{words: make(map[string]struct{}), caseSensitive: true}
	for _, l := range lists {
		for w := range l.words {
			out.words[w] = struct{}{}
		}
	}
	return out
}

// MemberReserved guards field names shared by the Java and Dart artifacts.
var MemberReserved = Union(JavaReserved, DartReserved)
