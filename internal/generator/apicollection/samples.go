package apicollection

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tordrt/umlgen/internal/typemap"
)

// sampleRule matches attribute names by fragment. Rules are checked in order.
type sampleRule struct {
	fragments []string
	value     func(label string) any
}

var sampleRules = []sampleRule{
	{[]string{"email", "correo", "mail"}, func(string) any { return "user@example.com" }},
	{[]string{"password", "contrasena", "clave", "pass", "pwd"}, func(string) any { return "Secret123!" }},
	{[]string{"username", "usuario", "login"}, func(string) any { return "jdoe" }},
	{[]string{"phone", "telefono", "celular", "mobile", "movil"}, func(string) any { return "+1-555-0100" }},
	{[]string{"url", "website", "link", "enlace"}, func(string) any { return "https://example.com" }},
	{[]string{"address", "direccion", "street", "calle"}, func(string) any { return "742 Evergreen Terrace" }},
	{[]string{"city", "ciudad"}, func(string) any { return "Springfield" }},
	{[]string{"country", "pais"}, func(string) any { return "Chile" }},
	{[]string{"lastname", "apellido", "surname"}, func(string) any { return "Doe" }},
	{[]string{"firstname", "nombre", "name", "titulo", "title"}, func(label string) any { return "Sample " + label }},
	{[]string{"description", "descripcion", "comment", "comentario", "notes", "notas"}, func(label string) any {
		return "Sample " + strings.ToLower(label) + " text"
	}},
	{[]string{"price", "precio", "amount", "monto", "total", "cost", "costo", "salary", "salario"}, func(string) any { return 99.99 }},
	{[]string{"quantity", "cantidad", "stock", "count"}, func(string) any { return 10 }},
	{[]string{"age", "edad"}, func(string) any { return 30 }},
}

// sample returns an example value for an attribute. Name heuristics only
// pick the value; the JSON type of the attribute decides when they apply.
func sample(name, label, umlType string) any {
	jsonType := typemap.Map(typemap.JSON, umlType)
	lower := strings.ToLower(name)
	for _, rule := range sampleRules {
		for _, f := range rule.fragments {
			if !strings.Contains(lower, f) {
				continue
			}
			v := rule.value(label)
			if compatible(v, jsonType) {
				return v
			}
		}
	}
	return byType(jsonType)
}

func compatible(v any, jsonType string) bool {
	switch v.(type) {
	case string:
		return jsonType == "string"
	case int:
		return jsonType == "integer" || jsonType == "number"
	case float64:
		return jsonType == "number"
	}
	return false
}

func byType(jsonType string) any {
	switch jsonType {
	case "integer":
		return 1
	case "number":
		return 10.5
	case "boolean":
		return true
	case "date":
		return "2024-01-15"
	case "date-time":
		return "2024-01-15T10:30:00"
	case "time":
		return "10:30:00"
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	}
	return "sample text"
}

// property is one key of a request body.
type property struct {
	Key   string
	Value any
}

// rawJSON renders properties as an indented object, keeping their order.
func rawJSON(props []property) (string, error) {
	if len(props) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, p := range props {
		key, err := json.Marshal(p.Key)
		if err != nil {
			return "", err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return "", err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(props)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.String(), nil
}
