package backend

import (
	"sort"
	"strings"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/typemap"
)

// Java sub-packages per stereotype.
var stereotypePackages = map[diagram.Stereotype]string{
	diagram.StereotypeEntity:     "model",
	diagram.StereotypeService:    "service",
	diagram.StereotypeRepository: "repository",
	diagram.StereotypeController: "controller",
	diagram.StereotypeUtility:    "util",
}

type field struct {
	Name   string
	Type   string
	Column string
	Getter string
	Setter string
	JSON   bool
}

type reference struct {
	Field    string
	Type     string
	Column   string
	IDField  string
	Getter   string
	Setter   string
	IDGetter string
	IDSetter string
	Required bool
	OneToOne bool
	// Mapped is false when the related class is not a JPA entity; the
	// reference is then kept as a plain key column.
	Mapped  bool
	RepoVar string
}

type collection struct {
	Field    string
	Type     string
	MappedBy string
	Cascade  bool
	Getter   string
	Setter   string
}

type repoDep struct {
	Type string
	Var  string
}

type parameter struct {
	Name string
	Type string
}

type method struct {
	Name       string
	ReturnType string
	Parameters []parameter
}

type entityView struct {
	Package      string
	Name         string
	Var          string
	VarPlural    string
	Table        string
	Route        string
	Label        string
	Fields       []field
	References   []reference
	Collections  []collection
	Parent       string
	ParentColumn string
	Root         bool
	Methods      []method
	HasJSON      bool
	// HasRequired is set when the DTO carries a mandatory key.
	HasRequired bool

	ModelImports []string
	DTOImports   []string
	// ServiceReferences are the references of the class and its ancestors,
	// all of which the service resolves from ids.
	ServiceReferences []reference
	Repos             []repoDep

	IsUser     bool
	Credential field
	Secret     field
}

type linkView struct {
	Package    string
	Name       string
	Var        string
	Table      string
	Route      string
	Left       string
	Right      string
	LeftField  string
	RightField string
	LeftColumn string
	RightCol   string
	LeftID     string
	RightID    string
	LeftRepo   string
	RightRepo  string
	// SameSide is set for a self many-to-many: one repository serves both keys.
	SameSide bool
}

type skeletonView struct {
	Package    string
	SubPackage string
	Name       string
	Stereotype diagram.Stereotype
	Imports    []string
	Fields     []field
	Methods    []method
}

type authView struct {
	Package    string
	Imports    []string
	User       string
	UserVar    string
	Credential field
	Secret     field
	// Fields are the remaining plain attributes accepted at registration.
	Fields []field
}

type projectView struct {
	Package   string
	Group     string
	Name      string
	Slug      string
	Database  string
	App       string
	Auth      bool
	Secret    string
	Resources []string
}

func accessors(name string) (getter, setter string) {
	suffix := strings.ToUpper(name[:1]) + name[1:]
	return "get" + suffix, "set" + suffix
}

func newField(f generator.Field) field {
	g, s := accessors(f.Name)
	return field{
		Name:   f.Name,
		Type:   typemap.Map(typemap.Java, f.UMLType),
		Column: f.Column,
		Getter: g,
		Setter: s,
		JSON:   typemap.IsGeneric(f.UMLType),
	}
}

// builder resolves the Java view of each class against the whole diagram.
type builder struct {
	in *generator.Input
}

func (b *builder) isEntity(class string) bool {
	c, ok := b.in.Diagram.Class(class)
	return ok && c.Stereotype == diagram.StereotypeEntity
}

// javaType maps a member type, keeping references to diagram classes.
func (b *builder) javaType(uml string) string {
	if uml == "" || strings.EqualFold(uml, "void") {
		return "void"
	}
	if b.in.Diagram.HasClass(uml) {
		return generator.ClassName(uml)
	}
	return typemap.Map(typemap.Java, uml)
}

func (b *builder) methods(c *diagram.ClassEntity) []method {
	out := make([]method, 0, len(c.Methods))
	for _, m := range c.Methods {
		mv := method{
			Name:       naming.FieldName(m.Name, naming.MemberReserved),
			ReturnType: b.javaType(m.ReturnType),
		}
		for _, p := range m.Parameters {
			mv.Parameters = append(mv.Parameters, parameter{
				Name: naming.FieldName(p.Name, naming.MemberReserved),
				Type: b.javaType(p.Type),
			})
		}
		out = append(out, mv)
	}
	return out
}

// classImports lists the diagram classes a member signature refers to that
// live in another sub-package.
func (b *builder) classImports(own string, methods []method) []string {
	set := map[string]struct{}{}
	for _, m := range methods {
		types := []string{m.ReturnType}
		for _, p := range m.Parameters {
			types = append(types, p.Type)
		}
		for _, t := range types {
			for _, c := range b.in.Diagram.Classes {
				if generator.ClassName(c.Name) != t {
					continue
				}
				sub := stereotypePackages[c.Stereotype]
				if sub == own {
					continue
				}
				set[b.in.Project.Package+"."+sub+"."+t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

func (b *builder) reference(owner string, e generator.Entity, idx int) reference {
	ref := e.References[idx]
	g, s := accessors(ref.Field)
	ig, is := accessors(ref.IDField())
	repoVar := naming.ToCamelCase(generator.ClassName(ref.Related)) + "Repository"
	if ref.Related == owner {
		repoVar = "repository"
	}
	return reference{
		Field:    ref.Field,
		Type:     generator.ClassName(ref.Related),
		Column:   ref.Column(),
		IDField:  ref.IDField(),
		Getter:   g,
		Setter:   s,
		IDGetter: ig,
		IDSetter: is,
		Required: ref.Required,
		OneToOne: ref.OneToOne,
		Mapped:   b.isEntity(ref.Related),
		RepoVar:  repoVar,
	}
}

func (b *builder) entity(e generator.Entity) entityView {
	pkg := b.in.Project.Package
	v := entityView{
		Package:   pkg,
		Name:      e.Name,
		Var:       e.Var,
		VarPlural: e.VarPlural,
		Table:     e.Table,
		Route:     e.Route,
		Label:     e.Label,
		Methods:   b.methods(e.Class),
	}

	if e.Parent != "" && b.isEntity(e.Parent) {
		v.Parent = generator.ClassName(e.Parent)
		v.ParentColumn = generator.ParentKeyColumn(e.Parent)
	}
	if v.Parent == "" {
		for _, child := range e.Children {
			if b.isEntity(child) {
				v.Root = true
				break
			}
		}
	}

	for _, f := range e.Fields {
		fv := newField(f)
		v.HasJSON = v.HasJSON || fv.JSON
		v.Fields = append(v.Fields, fv)
	}
	for i := range e.References {
		r := b.reference(e.Class.Name, e, i)
		v.HasRequired = v.HasRequired || r.Required
		v.References = append(v.References, r)
	}
	for _, c := range e.Collections {
		if !b.isEntity(c.Related) {
			continue
		}
		g, s := accessors(c.Field)
		v.Collections = append(v.Collections, collection{
			Field:    c.Field,
			Type:     generator.ClassName(c.Related),
			MappedBy: c.Inverse,
			Cascade:  c.Cascade,
			Getter:   g,
			Setter:   s,
		})
	}

	// ancestors contribute references the service must resolve too
	seen := map[string]bool{e.Class.Name: true}
	v.ServiceReferences = append(v.ServiceReferences, v.References...)
	for parent := e.Parent; parent != "" && !seen[parent] && b.isEntity(parent); {
		seen[parent] = true
		pe, ok := b.in.Entity(parent)
		if !ok {
			break
		}
		for i := range pe.References {
			v.ServiceReferences = append(v.ServiceReferences, b.reference(e.Class.Name, pe, i))
		}
		parent = pe.Parent
	}

	repos := map[string]bool{}
	for _, r := range v.ServiceReferences {
		if !r.Mapped || r.RepoVar == "repository" || repos[r.Type] {
			continue
		}
		repos[r.Type] = true
		v.Repos = append(v.Repos, repoDep{Type: r.Type, Var: r.RepoVar})
	}

	var javaTypes []string
	for _, f := range v.Fields {
		javaTypes = append(javaTypes, f.Type)
	}
	v.DTOImports = typemap.JavaImports(javaTypes...)
	for _, m := range v.Methods {
		javaTypes = append(javaTypes, m.ReturnType)
		for _, p := range m.Parameters {
			javaTypes = append(javaTypes, p.Type)
		}
	}
	if len(v.Collections) > 0 {
		javaTypes = append(javaTypes, "List", "ArrayList")
	}
	v.ModelImports = append(typemap.JavaImports(javaTypes...), b.classImports("model", v.Methods)...)

	auth := b.in.Auth
	if auth.NeedsAuth && auth.UserEntity == e.Class.Name {
		v.IsUser = true
		v.Credential = b.authField(e, auth.CredentialField)
		v.Secret = b.authField(e, auth.SecretField)
	}
	return v
}

func (b *builder) authField(e generator.Entity, attr string) field {
	name := naming.FieldName(attr, naming.MemberReserved)
	for _, f := range e.Fields {
		if f.Name == name {
			return newField(f)
		}
	}
	g, s := accessors(name)
	return field{Name: name, Type: typemap.JavaFallback, Column: naming.ColumnName(attr), Getter: g, Setter: s}
}

func (b *builder) link(j generator.JoinEntity) linkView {
	return linkView{
		Package:    b.in.Project.Package,
		Name:       j.Name,
		Var:        j.Var,
		Table:      j.Join.Name,
		Route:      j.Route,
		Left:       j.Left,
		Right:      j.Right,
		LeftField:  j.LeftField,
		RightField: j.RightField,
		LeftColumn: j.Join.LeftColumn,
		RightCol:   j.Join.RightColumn,
		LeftID:     j.LeftField + "Id",
		RightID:    j.RightField + "Id",
		LeftRepo:   naming.ToCamelCase(j.Left) + "Repository",
		RightRepo:  naming.ToCamelCase(j.Right) + "Repository",
		SameSide:   j.Left == j.Right,
	}
}

func (b *builder) skeleton(e generator.Entity) skeletonView {
	sub := stereotypePackages[e.Class.Stereotype]
	v := skeletonView{
		Package:    b.in.Project.Package,
		SubPackage: sub,
		Name:       e.Name,
		Stereotype: e.Class.Stereotype,
		Methods:    b.methods(e.Class),
	}
	javaTypes := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fv := newField(f)
		v.Fields = append(v.Fields, fv)
		javaTypes = append(javaTypes, fv.Type)
	}
	for _, m := range v.Methods {
		javaTypes = append(javaTypes, m.ReturnType)
		for _, p := range m.Parameters {
			javaTypes = append(javaTypes, p.Type)
		}
	}
	v.Imports = append(typemap.JavaImports(javaTypes...), b.classImports(sub, v.Methods)...)
	return v
}

func (b *builder) auth(user entityView) authView {
	v := authView{
		Package:    b.in.Project.Package,
		User:       user.Name,
		UserVar:    user.Var,
		Credential: user.Credential,
		Secret:     user.Secret,
	}
	javaTypes := []string{v.Credential.Type, v.Secret.Type}
	for _, f := range user.Fields {
		if f.Name == user.Credential.Name || f.Name == user.Secret.Name || f.JSON {
			continue
		}
		v.Fields = append(v.Fields, f)
		javaTypes = append(javaTypes, f.Type)
	}
	v.Imports = typemap.JavaImports(javaTypes...)
	return v
}
