// Package authdetect decides whether a diagram contains a credential-bearing
// user entity. The heuristic is fixed: the first class whose name looks like
// a user is inspected, and it needs both an identifier and a secret attribute.
package authdetect

import (
	"strings"

	"github.com/tordrt/umlgen/internal/diagram"
)

// UserNameFragments are matched against lower-cased class names, in order.
var UserNameFragments = []string{"user", "usuario", "account", "cuenta", "client", "cliente", "customer", "member", "miembro", "person", "persona", "admin", "empleado", "employee"}

// CredentialFragments identify the login identifier attribute, in precedence order.
var CredentialFragments = []string{"email", "username", "mail", "correo", "login"}

// SecretFragments identify the secret attribute, in precedence order.
var SecretFragments = []string{"password", "contrasena", "clave", "pass", "pwd"}

// Result is the outcome of detection.
type Result struct {
	NeedsAuth       bool   `json:"needsAuth"`
	UserEntity      string `json:"userEntity,omitempty"`
	CredentialField string `json:"credentialField,omitempty"`
	SecretField     string `json:"secretField,omitempty"`
}

// Detect inspects the classes in diagram order.
func Detect(classes []diagram.ClassEntity) Result {
	for _, c := range classes {
		if !matchesAny(c.Name, UserNameFragments) {
			continue
		}
		// Only the first user-like class is considered.
		credential := findAttribute(c.Attributes, CredentialFragments)
		secret := findAttribute(c.Attributes, SecretFragments)
		if credential == "" || secret == "" || credential == secret {
			return Result{}
		}
		return Result{
			NeedsAuth:       true,
			UserEntity:      c.Name,
			CredentialField: credential,
			SecretField:     secret,
		}
	}
	return Result{}
}

func matchesAny(name string, fragments []string) bool {
	lower := strings.ToLower(name)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// findAttribute returns the name of the first attribute matching the
// earliest fragment.
func findAttribute(attrs []diagram.AttributeSpec, fragments []string) string {
	for _, f := range fragments {
		for _, a := range attrs {
			if strings.Contains(strings.ToLower(a.Name), f) {
				return a.Name
			}
		}
	}
	return ""
}
