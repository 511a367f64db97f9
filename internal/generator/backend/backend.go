// Package backend generates a Spring Boot 3 / JPA project from a diagram.
package backend

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
)

var templates = generator.MustParseTemplates(map[string]string{
	"model":             tplModel,
	"methods":           tplMethods,
	"dto":               tplDTO,
	"repository":        tplRepository,
	"service":           tplService,
	"controller":        tplController,
	"linkModel":         tplLinkModel,
	"linkDTO":           tplLinkDTO,
	"linkRepository":    tplLinkRepository,
	"linkService":       tplLinkService,
	"linkController":    tplLinkController,
	"skeleton":          tplSkeleton,
	"skeletonInterface": tplSkeletonInterface,
	"pom":               tplPom,
	"application":       tplApplication,
	"properties":        tplProperties,
	"readme":            tplReadme,
	"notFound":          tplNotFound,
	"exceptionHandler":  tplExceptionHandler,
	"webConfig":         tplWebConfig,
	"jwtService":        tplJwtService,
	"jwtFilter":         tplJwtFilter,
	"userDetails":       tplUserDetailsService,
	"securityConfig":    tplSecurityConfig,
	"authController":    tplAuthController,
	"loginRequest":      tplLoginRequest,
	"registerRequest":   tplRegisterRequest,
	"authResponse":      tplAuthResponse,
}, template.FuncMap{"params": params})

func params(ps []parameter) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Type + " " + p.Name
	}
	return strings.Join(out, ", ")
}

// Generator emits the backend project.
type Generator struct{}

// New returns the backend generator.
func New() *Generator {
	return &Generator{}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetBackend
}

// emitter renders templates into a bundle and refuses to emit two files at
// the same path.
type emitter struct {
	bundle  *artifact.Bundle
	emitted map[string]bool
	log     *zap.Logger
}

func (e *emitter) emit(path, tpl string, data any) error {
	if e.emitted[path] {
		w := diagram.NewWarning(diagram.WarnNameCollision, path, "%s is generated twice, later copy skipped", path)
		e.log.Warn("name collision", zap.String("path", path))
		e.bundle.Warn(w)
		return nil
	}
	content, err := generator.Render(templates, tpl, data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	e.emitted[path] = true
	e.bundle.Add(path, content)
	return nil
}

func (e *emitter) warn(w diagram.Warning) {
	e.log.Warn("relation not realized", zap.String("subject", w.Subject), zap.String("message", w.Message))
	e.bundle.Warn(w)
}

// Generate implements generator.Generator.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	b := &builder{in: in}
	out := &emitter{
		bundle:  artifact.NewBundle(g.Target()),
		emitted: map[string]bool{},
		log:     in.Log("backend"),
	}
	pkg := in.Project.Package
	src := "src/main/java/" + in.Project.PackagePath()

	auth := in.Auth.NeedsAuth && b.isEntity(in.Auth.UserEntity)
	if in.Auth.NeedsAuth && !auth {
		out.warn(diagram.NewWarning(diagram.WarnUnsupportedRelation, in.Auth.UserEntity,
			"%s is not an entity, authentication scaffolding skipped", in.Auth.UserEntity))
	}

	var resources []string
	var user *entityView
	for _, e := range in.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !e.IsEntity() {
			if err := g.skeleton(out, b, e, src); err != nil {
				return nil, err
			}
			continue
		}

		v := b.entity(e)
		files := []struct{ path, tpl string }{
			{src + "/model/" + v.Name + ".java", "model"},
			{src + "/dto/" + v.Name + "DTO.java", "dto"},
			{src + "/repository/" + v.Name + "Repository.java", "repository"},
			{src + "/service/" + v.Name + "Service.java", "service"},
			{src + "/controller/" + v.Name + "Controller.java", "controller"},
		}
		for _, f := range files {
			if err := out.emit(f.path, f.tpl, v); err != nil {
				return nil, err
			}
		}
		for _, c := range e.Collections {
			if !b.isEntity(c.Related) {
				out.warn(diagram.NewWarning(diagram.WarnUnsupportedRelation, e.Class.Name,
					"collection %s of %s is not mapped: %s is not an entity", c.Field, e.Class.Name, c.Related))
			}
		}
		resources = append(resources, fmt.Sprintf("%s (%s)", v.Route, v.Name))
		if v.IsUser {
			user = &v
		}
	}

	for _, j := range in.JoinEntities() {
		if !b.isEntity(j.Join.Left) || !b.isEntity(j.Join.Right) {
			out.warn(diagram.NewWarning(diagram.WarnUnsupportedRelation, j.Join.Name,
				"linking entity %s skipped: both ends must be entities", j.Name))
			continue
		}
		v := b.link(j)
		files := []struct{ path, tpl string }{
			{src + "/model/" + v.Name + ".java", "linkModel"},
			{src + "/dto/" + v.Name + "DTO.java", "linkDTO"},
			{src + "/repository/" + v.Name + "Repository.java", "linkRepository"},
			{src + "/service/" + v.Name + "Service.java", "linkService"},
			{src + "/controller/" + v.Name + "Controller.java", "linkController"},
		}
		for _, f := range files {
			if err := out.emit(f.path, f.tpl, v); err != nil {
				return nil, err
			}
		}
		resources = append(resources, fmt.Sprintf("%s (%s, join construct %s)", v.Route, v.Name, v.Table))
	}

	if user != nil {
		av := b.auth(*user)
		files := []struct{ path, tpl string }{
			{src + "/security/JwtService.java", "jwtService"},
			{src + "/security/JwtAuthenticationFilter.java", "jwtFilter"},
			{src + "/security/AppUserDetailsService.java", "userDetails"},
			{src + "/config/SecurityConfig.java", "securityConfig"},
			{src + "/controller/AuthController.java", "authController"},
			{src + "/dto/LoginRequest.java", "loginRequest"},
			{src + "/dto/RegisterRequest.java", "registerRequest"},
			{src + "/dto/AuthResponse.java", "authResponse"},
		}
		for _, f := range files {
			if err := out.emit(f.path, f.tpl, av); err != nil {
				return nil, err
			}
		}
		resources = append(resources, "/api/auth/register, /api/auth/login")
	}

	pv := projectView{
		Package:   pkg,
		Group:     pkg[:strings.LastIndex(pkg, ".")],
		Name:      in.Project.Name,
		Slug:      in.Project.Slug,
		Database:  in.Project.SnakeName(),
		App:       naming.TypeName(in.Project.Slug, naming.MemberReserved) + "Application",
		Auth:      user != nil,
		Secret:    jwtSecret(in.Project.Slug),
		Resources: resources,
	}
	files := []struct{ path, tpl string }{
		{"pom.xml", "pom"},
		{"src/main/resources/application.properties", "properties"},
		{src + "/" + pv.App + ".java", "application"},
		{src + "/exception/ResourceNotFoundException.java", "notFound"},
		{src + "/exception/GlobalExceptionHandler.java", "exceptionHandler"},
		{"README.md", "readme"},
	}
	if user == nil {
		files = append(files, struct{ path, tpl string }{src + "/config/WebConfig.java", "webConfig"})
	}
	for _, f := range files {
		if err := out.emit(f.path, f.tpl, pv); err != nil {
			return nil, err
		}
	}

	out.log.Debug("backend generated",
		zap.Int("files", len(out.bundle.Artifacts)),
		zap.Bool("auth", user != nil))
	return out.bundle, nil
}

func (g *Generator) skeleton(out *emitter, b *builder, e generator.Entity, src string) error {
	v := b.skeleton(e)
	tpl := "skeleton"
	if e.Class.Stereotype == diagram.StereotypeRepository {
		tpl = "skeletonInterface"
	}
	if err := out.emit(src+"/"+v.SubPackage+"/"+v.Name+".java", tpl, v); err != nil {
		return err
	}
	for _, r := range e.References {
		out.warn(diagram.NewWarning(diagram.WarnUnsupportedRelation, e.Class.Name,
			"reference %s of %s %s is not mapped", r.Field, e.Class.Stereotype, e.Class.Name))
	}
	for _, c := range e.Collections {
		out.warn(diagram.NewWarning(diagram.WarnUnsupportedRelation, e.Class.Name,
			"collection %s of %s %s is not mapped", c.Field, e.Class.Stereotype, e.Class.Name))
	}
	return nil
}

// jwtSecret is a stable per-project development default, overridden by
// JWT_SECRET in any real deployment.
func jwtSecret(slug string) string {
	a := uuid.NewSHA1(uuid.NameSpaceURL, []byte("umlgen:jwt:"+slug))
	b := uuid.NewSHA1(a, []byte(slug))
	return strings.ReplaceAll(a.String()+b.String(), "-", "")
}
