// Package docs generates a human-readable reference of a diagram: an
// overview, one file per class and the derived database schema.
package docs

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/generator/sqlgen"
	"github.com/tordrt/umlgen/internal/resolver"
)

// Dir is the directory every documentation file is written to.
const Dir = "docs/"

// Generator emits the documentation set.
type Generator struct {
	Format string // "markdown" or "text"
}

// New returns the documentation generator for a format. Unknown formats
// fall back to markdown.
func New(format string) *Generator {
	if format != FormatText {
		format = FormatMarkdown
	}
	return &Generator{Format: format}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetDocs
}

// Generate implements generator.Generator.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	log := in.Log("docs")
	bundle := artifact.NewBundle(g.Target())
	ext := Ext(g.Format)

	var sb strings.Builder
	g.writeOverview(&sb, in)
	bundle.Add(Dir+"_overview"+ext, sb.String())

	for _, e := range in.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sb.Reset()
		g.writeClass(&sb, in, e)
		bundle.Add(Dir+e.FileStem+ext, sb.String())
	}

	sb.Reset()
	if err := WriteSchema(&sb, sqlgen.BuildSchema(in), g.Format); err != nil {
		return nil, fmt.Errorf("failed to write schema docs: %w", err)
	}
	bundle.Add(Dir+"database"+ext, sb.String())

	log.Debug("docs generated", zap.String("format", g.Format), zap.Int("files", len(bundle.Artifacts)))
	return bundle, nil
}

func (g *Generator) writeOverview(w io.Writer, in *generator.Input) {
	classes := in.Entities()
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })

	ext := Ext(g.Format)
	if g.Format == FormatMarkdown {
		_, _ = fmt.Fprintf(w, "# %s\n\n", in.Project.Name)
		_, _ = fmt.Fprintf(w, "Each class has a corresponding file: `<class_name>%s`. The derived tables are in `database%s`.\n\n", ext, ext)
		_, _ = fmt.Fprintf(w, "## Classes\n\n")
		for _, e := range classes {
			_, _ = fmt.Fprintf(w, "- **%s** «%s»", e.Name, e.Class.Stereotype)
			if targets := referenceTargets(e); len(targets) > 0 {
				_, _ = fmt.Fprintf(w, " (references: %s)", strings.Join(targets, ", "))
			}
			_, _ = fmt.Fprintln(w)
		}
		if len(in.Resolved.Joins) > 0 {
			_, _ = fmt.Fprintf(w, "\n## Join constructs\n\n")
			for _, j := range in.Resolved.Joins {
				_, _ = fmt.Fprintf(w, "- **%s** links %s and %s\n", j.Name, j.Left, j.Right)
			}
		}
		if len(in.Resolved.Warnings) > 0 {
			_, _ = fmt.Fprintf(w, "\n## Warnings\n\n")
			for _, warn := range in.Resolved.Warnings {
				_, _ = fmt.Fprintf(w, "- %s\n", warn)
			}
		}
		return
	}

	_, _ = fmt.Fprintf(w, "%s\n", strings.ToUpper(in.Project.Name))
	_, _ = fmt.Fprintf(w, "Each class has a file: <class_name>%s\n\n", ext)
	for _, e := range classes {
		_, _ = fmt.Fprintf(w, "%s <<%s>>", e.Name, e.Class.Stereotype)
		if targets := referenceTargets(e); len(targets) > 0 {
			_, _ = fmt.Fprintf(w, " (references: %s)", strings.Join(targets, ","))
		}
		_, _ = fmt.Fprintln(w)
	}
	for _, j := range in.Resolved.Joins {
		_, _ = fmt.Fprintf(w, "JOIN %s (%s, %s)\n", j.Name, j.Left, j.Right)
	}
}

func referenceTargets(e generator.Entity) []string {
	var targets []string
	if e.Parent != "" {
		targets = append(targets, generator.ClassName(e.Parent))
	}
	for _, r := range e.References {
		targets = append(targets, generator.ClassName(r.Related))
	}
	return targets
}

// section writes titled lists in either format.
type section struct {
	w        io.Writer
	markdown bool
}

func (s section) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	if s.markdown {
		_, _ = fmt.Fprintf(s.w, "## %s\n\n", title)
		for _, it := range items {
			_, _ = fmt.Fprintf(s.w, "- %s\n", it)
		}
		_, _ = fmt.Fprintln(s.w)
		return
	}
	_, _ = fmt.Fprintf(s.w, "\n  %s:\n", strings.ToUpper(title))
	for _, it := range items {
		_, _ = fmt.Fprintf(s.w, "    %s\n", it)
	}
}

func (g *Generator) writeClass(w io.Writer, in *generator.Input, e generator.Entity) {
	markdown := g.Format == FormatMarkdown
	c := e.Class

	if markdown {
		_, _ = fmt.Fprintf(w, "# %s\n\n", e.Name)
		_, _ = fmt.Fprintf(w, "«%s» %s", c.Stereotype, c.Kind)
		if e.IsEntity() {
			_, _ = fmt.Fprintf(w, " · table `%s` · route `%s`", e.Table, e.Route)
		}
		_, _ = fmt.Fprintf(w, "\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "CLASS %s <<%s>>", e.Name, c.Stereotype)
		if e.IsEntity() {
			_, _ = fmt.Fprintf(w, " (table: %s, route: %s)", e.Table, e.Route)
		}
		_, _ = fmt.Fprintln(w)
	}

	s := section{w: w, markdown: markdown}

	code := func(v string) string {
		if markdown {
			return "`" + v + "`"
		}
		return v
	}
	attrs := make([]string, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		attrs = append(attrs, code(diagram.FormatAttribute(a)))
	}
	s.list("Attributes", attrs)

	methods := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		methods = append(methods, code(diagram.FormatMethod(m)))
	}
	s.list("Methods", methods)

	refs := make([]string, 0, len(e.References))
	for _, r := range e.References {
		refs = append(refs, describeReference(r))
	}
	s.list("References", refs)

	cols := make([]string, 0, len(e.Collections))
	for _, col := range e.Collections {
		cols = append(cols, describeCollection(col))
	}
	s.list("Collections", cols)

	var gen []string
	if e.Parent != "" {
		gen = append(gen, "extends "+generator.ClassName(e.Parent))
	}
	for _, child := range e.Children {
		gen = append(gen, "specialized by "+generator.ClassName(child))
	}
	s.list("Generalization", gen)

	joins := make([]string, 0, len(e.Joins))
	for _, j := range e.Joins {
		other := j.Right
		if other == c.Name {
			other = j.Left
		}
		joins = append(joins, fmt.Sprintf("%s: many-to-many with %s (%s, %s)", j.Name, generator.ClassName(other), j.LeftColumn, j.RightColumn))
	}
	s.list("Join constructs", joins)

	var incoming []string
	for _, other := range in.Entities() {
		for _, r := range other.References {
			if r.Related == c.Name {
				incoming = append(incoming, fmt.Sprintf("%s.%s", other.Name, r.Field))
			}
		}
	}
	s.list("Referenced by", incoming)
}

func describeReference(r resolver.Reference) string {
	var flags []string
	if r.Required {
		flags = append(flags, "required")
	} else {
		flags = append(flags, "optional")
	}
	if r.OneToOne {
		flags = append(flags, "one-to-one")
	}
	flags = append(flags, "on delete "+string(r.OnDelete))
	return fmt.Sprintf("%s → %s via %s (%s)", r.Field, generator.ClassName(r.Related), r.IDField(), strings.Join(flags, ", "))
}

func describeCollection(c resolver.Collection) string {
	desc := fmt.Sprintf("%s → %s[] (%s", c.Field, generator.ClassName(c.Related), c.Kind)
	if c.Cascade {
		desc += ", cascade"
	}
	if c.Inverse != "" {
		desc += ", mapped by " + c.Inverse
	}
	return desc + ")"
}
