package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/tordrt/umlgen/internal/naming"
)

// FuncMap is available to every generator template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"pascal": naming.ToPascalCase,
		"camel":  naming.ToCamelCase,
		"snake":  naming.ToSnakeCase,
		"kebab":  naming.ToKebabCase,
		"human":  naming.ToHuman,
		"plural": naming.Plural,
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
		"join":   strings.Join,
		"ucfirst": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"bt": func() string { return "`" },
	}
}

// ParseTemplates parses named template sources with "[[" "]]" delimiters so
// generated code can use braces freely.
func ParseTemplates(defs map[string]string, extra template.FuncMap) (*template.Template, error) {
	funcs := FuncMap()
	for k, v := range extra {
		funcs[k] = v
	}
	root := template.New("root").Delims("[[", "]]").Funcs(funcs)
	for name, content := range defs {
		if _, err := root.New(name).Parse(content); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	return root, nil
}

// MustParseTemplates is ParseTemplates for package-level template sets.
func MustParseTemplates(defs map[string]string, extra template.FuncMap) *template.Template {
	t, err := ParseTemplates(defs, extra)
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes the named template.
func Render(templates *template.Template, name string, data any) (string, error) {
	tpl := templates.Lookup(name)
	if tpl == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", name, err)
	}
	return buf.String(), nil
}
