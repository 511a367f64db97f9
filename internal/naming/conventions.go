package naming

import "strings"

// DefaultProjectSlug is used when a diagram has no usable title.
const DefaultProjectSlug = "umlgen-app"

// TypeName is the class or type identifier of a target language.
func TypeName(name string, reserved ReservedWords) string {
	return SanitizeIdentifier(ToPascalCase(name), reserved)
}

// FieldName is the member identifier of a target language.
func FieldName(name string, reserved ReservedWords) string {
	return SanitizeIdentifier(ToCamelCase(name), reserved)
}

// TableName is the plural snake_case table of a class: "DetallePedido" -> "detalle_pedidos".
func TableName(class string) string {
	return SanitizeIdentifier(Plural(ToSnakeCase(class)), SQLReserved)
}

// ColumnName is the snake_case column of a field: "usuarioId" -> "usuario_id".
func ColumnName(field string) string {
	return SanitizeIdentifier(ToSnakeCase(field), SQLReserved)
}

// RouteSegment is the plural kebab-case URL segment of a class.
func RouteSegment(class string) string {
	seg := Plural(ToKebabCase(class))
	if seg == "" {
		return EmptyIdentifier
	}
	return seg
}

// RoutePath is the collection route shared by backend, mobile and API collection.
func RoutePath(class string) string {
	return "/api/" + RouteSegment(class)
}

// FileName is the snake_case file stem of a class.
func FileName(class string) string {
	stem := ToSnakeCase(class)
	if stem == "" {
		return EmptyIdentifier
	}
	return stem
}

// Slug turns a diagram title into a project slug: "Tienda Online" -> "tienda-online".
func Slug(title string) string {
	s := ToKebabCase(title)
	if s == "" {
		return DefaultProjectSlug
	}
	return s
}

// PackageSegment is a lowercase Java package segment: "tienda-online" -> "tiendaonline".
func PackageSegment(s string) string {
	seg := strings.ToLower(strings.Join(SplitWords(s), ""))
	seg = SanitizeIdentifier(seg, JavaReserved)
	return seg
}

// ClassFromTable is the inverse of TableName: "detalle_pedidos" -> "DetallePedido".
func ClassFromTable(table string) string {
	return ToPascalCase(Singular(ToSnakeCase(table)))
}
