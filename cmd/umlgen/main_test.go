package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/umlgen"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single table", input: "users", want: []string{"users"}},
		{name: "multiple tables", input: "users,posts,comments", want: []string{"users", "posts", "comments"}},
		{name: "tables with spaces", input: "users, posts, comments", want: []string{"users", "posts", "comments"}},
		{name: "trailing comma", input: "users,", want: []string{"users"}},
		{name: "empty string", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseList(tt.input))
		})
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "schema", want: []string{"schema"}},
		{name: "case and spaces", input: "Schema, DOCS", want: []string{"schema", "docs"}},
		{name: "duplicates", input: "docs,docs", want: []string{"docs"}},
		{name: "all", input: "all", want: umlgen.Targets()},
		{name: "all with extra", input: "schema,all", want: umlgen.Targets()},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, parseTargets(tt.input))
		})
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "a", orDefault("a", "b"))
	assert.Equal(t, "b", orDefault("", "b"))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tienda.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
  "title": "Tienda",
  "classes": [
    {"id": "u", "name": "Usuario", "type": "uml.Class", "attributes": ["- email: String"], "methods": []},
    {"id": "p", "name": "Pedido", "type": "uml.Class", "attributes": ["- total: BigDecimal"], "methods": []}
  ],
  "links": [{"sourceId": "u", "targetId": "p", "kind": "association", "sourceMultiplicity": "1", "targetMultiplicity": "0..*"}]
}`), 0o644))
	out := filepath.Join(dir, "out")

	t.Setenv("UMLGEN_LOG_FORMAT", "console")
	rootCmd.SetArgs([]string{"generate", "-c", filepath.Join(dir, "missing.yaml"), "-i", input, "-t", "schema,docs", "-d", out})
	require.NoError(t, rootCmd.Execute())

	schema, err := os.ReadFile(filepath.Join(out, "schema", "database", "schema.sql"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(schema), "CREATE TABLE"))

	entries, err := os.ReadDir(filepath.Join(out, "docs"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
