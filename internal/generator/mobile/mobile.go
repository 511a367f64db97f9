// Package mobile generates a Flutter client using provider and http.
package mobile

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
)

// DefaultBaseURL reaches the host machine from the Android emulator.
const DefaultBaseURL = "http://10.0.2.2:8080"

var templates = generator.MustParseTemplates(map[string]string{
	"pubspec":    tplPubspec,
	"apiConfig":  tplAPIConfig,
	"main":       tplMain,
	"model":      tplModel,
	"service":    tplService,
	"provider":   tplProvider,
	"listScreen": tplListScreen,
	"formScreen": tplFormScreen,
	"readme":     tplReadme,
}, template.FuncMap{
	"nullable":   nullable,
	"dartString": dartString,
})

func dartString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `$`, `\$`)
	return r.Replace(s)
}

// Generator emits the mobile project.
type Generator struct {
	BaseURL string
}

// New returns the mobile generator.
func New() *Generator {
	return &Generator{BaseURL: DefaultBaseURL}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetMobile
}

// Generate implements generator.Generator. Every class gets a model; entity
// classes also get a service, a provider and list and form screens.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	log := in.Log("mobile")
	b := &builder{in: in}
	bundle := artifact.NewBundle(g.Target())

	render := func(path, tpl string, data any) error {
		content, err := generator.Render(templates, tpl, data)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		bundle.Add(path, content)
		return nil
	}

	app := appView{
		Name:    in.Project.Name,
		Package: naming.SanitizeIdentifier(in.Project.SnakeName(), naming.DartReserved),
		BaseURL: g.BaseURL,
	}
	if app.BaseURL == "" {
		app.BaseURL = DefaultBaseURL
	}

	for _, e := range in.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v := b.model(e)
		if err := render("lib/models/"+v.FileStem+".dart", "model", v); err != nil {
			return nil, err
		}
		if !e.IsEntity() {
			continue
		}
		app.Models = append(app.Models, v)
		files := []struct{ path, tpl string }{
			{"lib/services/" + v.FileStem + "_service.dart", "service"},
			{"lib/providers/" + v.FileStem + "_provider.dart", "provider"},
			{"lib/screens/" + v.FileStem + "/" + v.FileStem + "_list_screen.dart", "listScreen"},
			{"lib/screens/" + v.FileStem + "/" + v.FileStem + "_form_screen.dart", "formScreen"},
		}
		for _, f := range files {
			if err := render(f.path, f.tpl, v); err != nil {
				return nil, err
			}
		}
	}

	for _, j := range in.JoinEntities() {
		v := b.link(j)
		if err := render("lib/models/"+v.FileStem+".dart", "model", v); err != nil {
			return nil, err
		}
	}

	files := []struct{ path, tpl string }{
		{"pubspec.yaml", "pubspec"},
		{"lib/main.dart", "main"},
		{"lib/config/api_config.dart", "apiConfig"},
		{"README.md", "readme"},
	}
	for _, f := range files {
		if err := render(f.path, f.tpl, app); err != nil {
			return nil, err
		}
	}

	log.Debug("mobile generated", zap.Int("files", len(bundle.Artifacts)))
	return bundle, nil
}
