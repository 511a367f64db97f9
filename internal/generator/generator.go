// Package generator defines the contract shared by every artifact generator
// and the target-neutral view of a diagram they all render from.
package generator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/authdetect"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/resolver"
)

// Target names.
const (
	TargetSchema            = "schema"
	TargetBackend           = "backend"
	TargetMobile            = "mobile"
	TargetAPICollection     = "api-collection"
	TargetInterchangeExport = "interchange-export"
	TargetDocs              = "docs"
)

// DefaultBasePackage prefixes the generated Java package.
const DefaultBasePackage = "com.example"

// Generator turns a prepared diagram into artifacts. Implementations must not
// mutate the input.
type Generator interface {
	Target() string
	Generate(ctx context.Context, in *Input) (*artifact.Bundle, error)
}

// Project is the naming seed derived from the diagram title.
type Project struct {
	Name string
	Slug string
	// Package is the full Java package, e.g. "com.example.tiendaonline".
	Package string
}

// NewProject derives the project naming seed.
func NewProject(title, basePackage string) Project {
	name := strings.TrimSpace(title)
	slug := naming.Slug(name)
	if name == "" {
		name = naming.ToHuman(slug)
	}
	if basePackage == "" {
		basePackage = DefaultBasePackage
	}
	return Project{
		Name:    name,
		Slug:    slug,
		Package: strings.TrimSuffix(basePackage, ".") + "." + naming.PackageSegment(slug),
	}
}

// PackagePath is the Java package as a directory path.
func (p Project) PackagePath() string {
	return strings.ReplaceAll(p.Package, ".", "/")
}

// SnakeName is the project slug in snake_case, used for Dart packages and databases.
func (p Project) SnakeName() string {
	return naming.ToSnakeCase(p.Slug)
}

// Input is the frozen state every generator reads.
type Input struct {
	Diagram  *diagram.Diagram
	Resolved *resolver.Resolved
	Auth     authdetect.Result
	Project  Project
	Logger   *zap.Logger
}

// Prepare resolves relationships and detects authentication once for all
// generators of a run.
func Prepare(d *diagram.Diagram, project Project, logger *zap.Logger) *Input {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Input{
		Diagram:  d,
		Resolved: resolver.Resolve(d, logger),
		Auth:     authdetect.Detect(d.Classes),
		Project:  project,
		Logger:   logger,
	}
}

// Log returns the logger named for a generator.
func (in *Input) Log(name string) *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger.Named(name)
}
