// Package apicollection generates a Postman v2.1 collection exercising every
// generated REST resource.
package apicollection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/typemap"
)

// DefaultBaseURL is the value of the baseUrl collection variable.
const DefaultBaseURL = "http://localhost:8080"

// collectionNamespace seeds the deterministic collection ids.
var collectionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://umlgen.dev/postman"))

// CollectionID is the stable collection id of a project slug.
func CollectionID(slug string) string {
	return uuid.NewSHA1(collectionNamespace, []byte(slug)).String()
}

const tokenScript = `const body = pm.response.json();
if (body && body.token) {
    pm.collectionVariables.set("token", body.token);
}`

// Generator emits the collection.
type Generator struct {
	BaseURL string
}

// New returns the API collection generator.
func New() *Generator {
	return &Generator{BaseURL: DefaultBaseURL}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetAPICollection
}

// Path is the artifact path for a project slug.
func Path(slug string) string {
	return slug + ".postman_collection.json"
}

// Generate implements generator.Generator.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	log := in.Log("apicollection")
	bundle := artifact.NewBundle(g.Target())

	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := Collection{
		Info: Info{
			PostmanID:   CollectionID(in.Project.Slug),
			Name:        in.Project.Name + " API",
			Description: fmt.Sprintf("REST resources generated for %s.", in.Project.Name),
			Schema:      SchemaURL,
		},
		Item: []Item{},
		Variable: []Variable{
			{Key: "baseUrl", Value: baseURL, Type: "string"},
		},
	}

	b := &builder{in: in}
	auth := in.Auth.NeedsAuth && b.isEntity(in.Auth.UserEntity)
	if auth {
		folder, err := b.authFolder()
		if err != nil {
			return nil, err
		}
		c.Item = append(c.Item, folder)
		c.Auth = &Auth{Type: "bearer", Bearer: []Variable{{Key: "token", Value: "{{token}}", Type: "string"}}}
		c.Variable = append(c.Variable, Variable{Key: "token", Value: "", Type: "string"})
	}

	for _, e := range in.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsEntity() {
			log.Debug("skipping class without REST resource",
				zap.String("class", e.Class.Name), zap.String("stereotype", string(e.Class.Stereotype)))
			continue
		}
		folder, err := b.resourceFolder(e)
		if err != nil {
			return nil, err
		}
		c.Item = append(c.Item, folder)
	}

	for _, j := range in.JoinEntities() {
		if !b.isEntity(j.Join.Left) || !b.isEntity(j.Join.Right) {
			continue
		}
		folder, err := b.linkFolder(j)
		if err != nil {
			return nil, err
		}
		c.Item = append(c.Item, folder)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	bundle.Add(Path(in.Project.Slug), string(data)+"\n")

	log.Debug("collection generated", zap.Int("folders", len(c.Item)), zap.Bool("auth", auth))
	return bundle, nil
}

type builder struct {
	in *generator.Input
}

func (b *builder) isEntity(class string) bool {
	c, ok := b.in.Diagram.Class(class)
	return ok && c.Stereotype == diagram.StereotypeEntity
}

// body lists the sample properties of an entity, ancestors first.
func (b *builder) body(e generator.Entity) []property {
	chain := []generator.Entity{e}
	seen := map[string]bool{e.Class.Name: true}
	for p := e.Parent; p != "" && !seen[p]; {
		seen[p] = true
		pe, ok := b.in.Entity(p)
		if !ok {
			break
		}
		chain = append([]generator.Entity{pe}, chain...)
		p = pe.Parent
	}

	var props []property
	for _, ce := range chain {
		for _, f := range ce.Fields {
			props = append(props, property{Key: f.Name, Value: sample(f.Name, f.Label, f.UMLType)})
		}
		for _, r := range ce.References {
			props = append(props, property{Key: r.IDField(), Value: 1})
		}
	}
	return props
}

func (b *builder) resourceFolder(e generator.Entity) (Item, error) {
	raw, err := rawJSON(b.body(e))
	if err != nil {
		return Item{}, fmt.Errorf("failed to build %s body: %w", e.Name, err)
	}
	path := routeSegments(e.Route)
	byID := append(append([]string{}, path...), ":id")
	plural := naming.Plural(e.Label)

	return Item{
		Name:        e.Name,
		Description: fmt.Sprintf("CRUD endpoints for %s (%s).", plural, e.Route),
		Item: []Item{
			{Name: "List " + plural, Request: request("GET", path, "")},
			{Name: "Get " + e.Label, Request: request("GET", byID, "")},
			{Name: "Create " + e.Label, Request: request("POST", path, raw)},
			{Name: "Update " + e.Label, Request: request("PUT", byID, raw)},
			{Name: "Delete " + e.Label, Request: request("DELETE", byID, "")},
		},
	}, nil
}

func (b *builder) linkFolder(j generator.JoinEntity) (Item, error) {
	left, right := j.LeftField+"Id", j.RightField+"Id"
	raw, err := rawJSON([]property{{Key: left, Value: 1}, {Key: right, Value: 1}})
	if err != nil {
		return Item{}, fmt.Errorf("failed to build %s body: %w", j.Name, err)
	}
	path := routeSegments(j.Route)
	label := naming.ToHuman(j.Name)

	return Item{
		Name:        j.Name,
		Description: fmt.Sprintf("Links between %s and %s.", j.Left, j.Right),
		Item: []Item{
			{Name: "List " + naming.Plural(label), Request: request("GET", path, "")},
			{Name: "Link " + label, Request: request("POST", path, raw)},
			{Name: "Unlink " + label, Request: request("DELETE", append(append([]string{}, path...), ":"+left, ":"+right), "")},
		},
	}, nil
}

func (b *builder) authFolder() (Item, error) {
	user, _ := b.in.Entity(b.in.Auth.UserEntity)
	credential := naming.FieldName(b.in.Auth.CredentialField, naming.MemberReserved)
	secret := naming.FieldName(b.in.Auth.SecretField, naming.MemberReserved)

	attrType := func(name string) (string, string) {
		for _, f := range user.Fields {
			if f.Name == name {
				return f.Label, f.UMLType
			}
		}
		return naming.ToHuman(name), typemap.JavaFallback
	}
	credLabel, credType := attrType(credential)
	secretLabel, secretType := attrType(secret)
	login := []property{
		{Key: credential, Value: sample(credential, credLabel, credType)},
		{Key: secret, Value: sample(secret, secretLabel, secretType)},
	}
	register := append([]property{}, login...)
	for _, f := range user.Fields {
		if f.Name == credential || f.Name == secret || typemap.IsGeneric(f.UMLType) {
			continue
		}
		register = append(register, property{Key: f.Name, Value: sample(f.Name, f.Label, f.UMLType)})
	}

	loginRaw, err := rawJSON(login)
	if err != nil {
		return Item{}, fmt.Errorf("failed to build login body: %w", err)
	}
	registerRaw, err := rawJSON(register)
	if err != nil {
		return Item{}, fmt.Errorf("failed to build register body: %w", err)
	}

	noAuth := func(r *Request) *Request {
		r.Auth = &Auth{Type: "noauth"}
		return r
	}
	events := []Event{{
		Listen: "test",
		Script: Script{Type: "text/javascript", Exec: strings.Split(tokenScript, "\n")},
	}}
	return Item{
		Name:        "Auth",
		Description: "Register and log in; both store the returned token in the token variable.",
		Item: []Item{
			{Name: "Register", Request: noAuth(request("POST", []string{"api", "auth", "register"}, registerRaw)), Event: events},
			{Name: "Login", Request: noAuth(request("POST", []string{"api", "auth", "login"}, loginRaw)), Event: events},
		},
	}, nil
}

func routeSegments(route string) []string {
	return strings.Split(strings.Trim(route, "/"), "/")
}

func request(method string, path []string, raw string) *Request {
	r := &Request{
		Method: method,
		Header: []Header{},
		URL: URL{
			Raw:  "{{baseUrl}}/" + strings.Join(path, "/"),
			Host: []string{"{{baseUrl}}"},
			Path: path,
		},
	}
	if raw != "" {
		r.Header = append(r.Header, Header{Key: "Content-Type", Value: "application/json", Type: "text"})
		opts := &BodyOptions{}
		opts.Raw.Language = "json"
		r.Body = &Body{Mode: "raw", Raw: raw, Options: opts}
	}
	return r
}
