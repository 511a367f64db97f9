package authdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tordrt/umlgen/internal/diagram"
)

func classWith(name string, attrs ...string) diagram.ClassEntity {
	c := diagram.ClassEntity{Name: name}
	for _, a := range attrs {
		c.Attributes = append(c.Attributes, diagram.AttributeSpec{Visibility: diagram.Private, Name: a, Type: "String"})
	}
	return c
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		classes []diagram.ClassEntity
		want    Result
	}{
		{
			name:    "usuario with email and password",
			classes: []diagram.ClassEntity{classWith("Producto", "nombre"), classWith("Usuario", "email", "password")},
			want:    Result{NeedsAuth: true, UserEntity: "Usuario", CredentialField: "email", SecretField: "password"},
		},
		{
			name:    "username and pwd",
			classes: []diagram.ClassEntity{classWith("Account", "username", "pwd")},
			want:    Result{NeedsAuth: true, UserEntity: "Account", CredentialField: "username", SecretField: "pwd"},
		},
		{
			name:    "email preferred over username",
			classes: []diagram.ClassEntity{classWith("Cliente", "username", "correoEmail", "passwordHash")},
			want:    Result{NeedsAuth: true, UserEntity: "Cliente", CredentialField: "correoEmail", SecretField: "passwordHash"},
		},
		{
			name:    "no user-like class",
			classes: []diagram.ClassEntity{classWith("Producto", "email", "password")},
			want:    Result{},
		},
		{
			name:    "missing secret",
			classes: []diagram.ClassEntity{classWith("Usuario", "email")},
			want:    Result{},
		},
		{
			name:    "first user-like class wins even without credentials",
			classes: []diagram.ClassEntity{classWith("UserProfile", "bio"), classWith("User", "email", "password")},
			want:    Result{},
		},
		{
			name:    "empty",
			classes: nil,
			want:    Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.classes))
		})
	}
}
