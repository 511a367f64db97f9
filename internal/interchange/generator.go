package interchange

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/generator"
)

// Generator exports the diagram as an interchange document.
type Generator struct {
	Format string
}

// NewGenerator returns the export generator for a format, JSON by default.
func NewGenerator(format string) *Generator {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &Generator{Format: format}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetInterchangeExport
}

// Path is the artifact path for a project slug.
func (g *Generator) Path(slug string) string {
	ext := ".json"
	if g.Format == FormatYAML {
		ext = ".yaml"
	}
	return slug + ".uml" + ext
}

// Generate implements generator.Generator.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := Export(in.Diagram)
	if doc.Title == "" {
		doc.Title = in.Project.Name
	}
	data, err := Encode(doc, g.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to export diagram: %w", err)
	}

	b := artifact.NewBundle(g.Target())
	b.Add(g.Path(in.Project.Slug), string(data))
	in.Log("interchange").Debug("diagram exported",
		zap.String("format", g.Format),
		zap.Int("classes", len(doc.Classes)),
		zap.Int("relationships", len(doc.Relationships)))
	return b, nil
}
