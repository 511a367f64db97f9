// Package interchange reads and writes the structured diagram document used
// to move class diagrams between tools.
package interchange

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/umlgen/internal/diagram"
)

// Encodings of a document.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is the interchange form of a diagram.
type Document struct {
	Title         string            `json:"title,omitempty" yaml:"title,omitempty"`
	Classes       []ClassDoc        `json:"classes" yaml:"classes"`
	Relationships []RelationshipDoc `json:"relationships" yaml:"relationships"`
}

// ClassDoc is one class. Attributes and methods use the "+ name: Type" form.
type ClassDoc struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type" yaml:"type"`
	Stereotype string         `json:"stereotype,omitempty" yaml:"stereotype,omitempty"`
	Attributes []string       `json:"attributes" yaml:"attributes"`
	Methods    []string       `json:"methods" yaml:"methods"`
	Position   *diagram.Point `json:"position,omitempty" yaml:"position,omitempty"`
}

// RelationshipDoc is one relationship. From and To name a class by id or name.
type RelationshipDoc struct {
	ID                 string `json:"id,omitempty" yaml:"id,omitempty"`
	Kind               string `json:"kind" yaml:"kind"`
	From               string `json:"from" yaml:"from"`
	To                 string `json:"to" yaml:"to"`
	SourceMultiplicity string `json:"sourceMultiplicity,omitempty" yaml:"sourceMultiplicity,omitempty"`
	TargetMultiplicity string `json:"targetMultiplicity,omitempty" yaml:"targetMultiplicity,omitempty"`
	Label              string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FormatFromPath picks the encoding from a file extension; JSON by default.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes doc in the given format.
func Encode(doc Document, format string) ([]byte, error) {
	if doc.Classes == nil {
		doc.Classes = []ClassDoc{}
	}
	if doc.Relationships == nil {
		doc.Relationships = []RelationshipDoc{}
	}
	if format == FormatYAML {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml document: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json document: %w", err)
	}
	return append(data, '\n'), nil
}
