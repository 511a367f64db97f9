package typemap

import "strings"

// FromSQL maps a database column type back to a UML type name. It accepts
// the spellings reported by PostgreSQL, MySQL and SQLite.
func FromSQL(dataType string) string {
	t := strings.ToLower(strings.TrimSpace(dataType))
	switch {
	case t == "":
		return "String"
	case t == "tinyint(1)" || strings.HasPrefix(t, "bool"):
		return "Boolean"
	case t == "uuid":
		return "UUID"
	case strings.HasPrefix(t, "bigint") || strings.HasPrefix(t, "bigserial") || t == "int8":
		return "Long"
	case strings.HasPrefix(t, "smallint") || strings.HasPrefix(t, "tinyint") || t == "int2":
		return "Short"
	case strings.HasPrefix(t, "int") || strings.HasPrefix(t, "mediumint") || strings.HasPrefix(t, "serial"):
		return "Integer"
	case strings.HasPrefix(t, "decimal") || strings.HasPrefix(t, "numeric") || strings.HasPrefix(t, "money"):
		return "BigDecimal"
	case strings.HasPrefix(t, "double") || strings.HasPrefix(t, "real") || strings.HasPrefix(t, "float"):
		return "Double"
	case strings.HasPrefix(t, "timestamp") || strings.HasPrefix(t, "datetime"):
		return "LocalDateTime"
	case t == "date":
		return "LocalDate"
	case strings.HasPrefix(t, "time"):
		return "LocalTime"
	case strings.Contains(t, "text"):
		return "Text"
	case strings.Contains(t, "blob") || t == "bytea" || strings.Contains(t, "binary"):
		return "byte[]"
	case strings.HasPrefix(t, "json"):
		return "Json"
	}
	return "String"
}
