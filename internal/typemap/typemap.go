// Package typemap maps UML attribute types to the primitive types of each
// generation target. Every table is independent and every lookup is total.
package typemap

import (
	"strings"
)

// Target selects a mapping table.
type Target string

const (
	SQL  Target = "sql"
	Java Target = "java"
	Dart Target = "dart"
	JSON Target = "json"
)

// Fallbacks used for unknown UML types.
const (
	SQLFallback  = "VARCHAR(255)"
	JavaFallback = "String"
	DartFallback = "String"
	JSONFallback = "string"

	// SQLContainer stores any generic container.
	SQLContainer = "JSON"
)

var sqlTypes = map[string]string{
	"string":        "VARCHAR(255)",
	"varchar":       "VARCHAR(255)",
	"text":          "TEXT",
	"char":          "CHAR(1)",
	"character":     "CHAR(1)",
	"int":           "INT",
	"integer":       "INT",
	"long":          "BIGINT",
	"biginteger":    "BIGINT",
	"short":         "SMALLINT",
	"byte":          "TINYINT",
	"float":         "FLOAT",
	"double":        "DOUBLE",
	"decimal":       "DECIMAL(19,2)",
	"bigdecimal":    "DECIMAL(19,2)",
	"number":        "DECIMAL(19,2)",
	"money":         "DECIMAL(19,2)",
	"boolean":       "BOOLEAN",
	"bool":          "BOOLEAN",
	"date":          "DATE",
	"localdate":     "DATE",
	"datetime":      "DATETIME",
	"localdatetime": "DATETIME",
	"timestamp":     "TIMESTAMP",
	"instant":       "TIMESTAMP",
	"time":          "TIME",
	"localtime":     "TIME",
	"uuid":          "CHAR(36)",
	"blob":          "BLOB",
	"byte[]":        "BLOB",
	"json":          "JSON",
}

var javaTypes = map[string]string{
	"string":        "String",
	"varchar":       "String",
	"text":          "String",
	"char":          "Character",
	"character":     "Character",
	"int":           "Integer",
	"integer":       "Integer",
	"long":          "Long",
	"biginteger":    "BigInteger",
	"short":         "Short",
	"byte":          "Byte",
	"float":         "Float",
	"double":        "Double",
	"decimal":       "BigDecimal",
	"bigdecimal":    "BigDecimal",
	"number":        "BigDecimal",
	"money":         "BigDecimal",
	"boolean":       "Boolean",
	"bool":          "Boolean",
	"date":          "LocalDate",
	"localdate":     "LocalDate",
	"datetime":      "LocalDateTime",
	"localdatetime": "LocalDateTime",
	"timestamp":     "LocalDateTime",
	"instant":       "Instant",
	"time":          "LocalTime",
	"localtime":     "LocalTime",
	"uuid":          "UUID",
	"blob":          "byte[]",
	"byte[]":        "byte[]",
	"json":          "String",
	"object":        "Object",
}

var dartTypes = map[string]string{
	"string":        "String",
	"varchar":       "String",
	"text":          "String",
	"char":          "String",
	"character":     "String",
	"int":           "int",
	"integer":       "int",
	"long":          "int",
	"biginteger":    "int",
	"short":         "int",
	"byte":          "int",
	"float":         "double",
	"double":        "double",
	"decimal":       "double",
	"bigdecimal":    "double",
	"number":        "double",
	"money":         "double",
	"boolean":       "bool",
	"bool":          "bool",
	"date":          "DateTime",
	"localdate":     "DateTime",
	"datetime":      "DateTime",
	"localdatetime": "DateTime",
	"timestamp":     "DateTime",
	"instant":       "DateTime",
	"time":          "String",
	"localtime":     "String",
	"uuid":          "String",
	"blob":          "List<int>",
	"byte[]":        "List<int>",
	"json":          "Map<String, dynamic>",
	"object":        "dynamic",
}

var jsonTypes = map[string]string{
	"string":        "string",
	"varchar":       "string",
	"text":          "string",
	"char":          "string",
	"character":     "string",
	"uuid":          "string",
	"int":           "integer",
	"integer":       "integer",
	"long":          "integer",
	"biginteger":    "integer",
	"short":         "integer",
	"byte":          "integer",
	"float":         "number",
	"double":        "number",
	"decimal":       "number",
	"bigdecimal":    "number",
	"number":        "number",
	"money":         "number",
	"boolean":       "boolean",
	"bool":          "boolean",
	"date":          "date",
	"localdate":     "date",
	"datetime":      "date-time",
	"localdatetime": "date-time",
	"timestamp":     "date-time",
	"instant":       "date-time",
	"time":          "time",
	"localtime":     "time",
	"json":          "object",
	"object":        "object",
}

// Map returns the target type for a UML type name. It never returns an
// empty string.
func Map(target Target, umlType string) string {
	t := strings.TrimSpace(umlType)
	if container, args, ok := GenericParts(t); ok {
		return mapGeneric(target, container, args)
	}
	key := strings.ToLower(strings.ReplaceAll(t, " ", ""))
	switch target {
	case SQL:
		return lookup(sqlTypes, key, SQLFallback)
	case Java:
		return lookup(javaTypes, key, JavaFallback)
	case Dart:
		return lookup(dartTypes, key, DartFallback)
	case JSON:
		return lookup(jsonTypes, key, JSONFallback)
	}
	return JavaFallback
}

func lookup(table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

// IsGeneric reports whether a UML type is a container such as List<X> or X[].
func IsGeneric(umlType string) bool {
	_, _, ok := GenericParts(umlType)
	return ok
}

// GenericParts splits "Map<String, Integer>" into "Map" and its arguments.
// "X[]" is read as List<X>; "byte[]" is a scalar.
func GenericParts(umlType string) (container string, args []string, ok bool) {
	t := strings.TrimSpace(umlType)
	if strings.HasSuffix(t, "[]") && !strings.EqualFold(t, "byte[]") {
		return "List", []string{strings.TrimSpace(strings.TrimSuffix(t, "[]"))}, true
	}
	open := strings.Index(t, "<")
	if open <= 0 || !strings.HasSuffix(t, ">") {
		return "", nil, false
	}
	container = strings.TrimSpace(t[:open])
	inner := t[open+1 : len(t)-1]
	depth, start := 0, 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return container, args, true
}

func mapGeneric(target Target, container string, args []string) string {
	switch target {
	case SQL:
		return SQLContainer
	case JSON:
		if isMapContainer(container) {
			return "object"
		}
		return "array"
	case Java:
		mapped := make([]string, len(args))
		for i, a := range args {
			mapped[i] = Map(Java, a)
		}
		return container + "<" + strings.Join(mapped, ", ") + ">"
	case Dart:
		mapped := make([]string, len(args))
		for i, a := range args {
			mapped[i] = Map(Dart, a)
		}
		switch {
		case isMapContainer(container):
			if len(mapped) != 2 {
				return "Map<String, dynamic>"
			}
			return "Map<" + mapped[0] + ", " + mapped[1] + ">"
		case isSetContainer(container):
			return "Set<" + mapped[0] + ">"
		default:
			return "List<" + mapped[0] + ">"
		}
	}
	return JavaFallback
}

func isMapContainer(c string) bool {
	switch strings.ToLower(c) {
	case "map", "hashmap", "treemap", "dictionary":
		return true
	}
	return false
}

func isSetContainer(c string) bool {
	switch strings.ToLower(c) {
	case "set", "hashset", "treeset":
		return true
	}
	return false
}
