package diagram

import "fmt"

// WarningCode classifies a recoverable problem found during extraction,
// resolution or generation.
type WarningCode string

const (
	// Structural problems: malformed members, unknown kinds or stereotypes.
	WarnUnparseableMember WarningCode = "unparseable_member"
	WarnUnknownKind       WarningCode = "unknown_kind"
	WarnUnknownStereotype WarningCode = "unknown_stereotype"
	WarnDuplicateClass    WarningCode = "duplicate_class"
	WarnUnnamedClass      WarningCode = "unnamed_class"
	WarnMalformedDocument WarningCode = "malformed_document"

	// Referential problems: a relationship endpoint that is not a class.
	WarnDanglingEndpoint WarningCode = "dangling_endpoint"

	// Ambiguous mappings and hierarchy problems.
	WarnManyToMany          WarningCode = "many_to_many"
	WarnMultipleInheritance WarningCode = "multiple_inheritance"
	WarnInheritanceCycle    WarningCode = "inheritance_cycle"

	// Target limitations: a relationship a generator cannot realize.
	WarnUnsupportedRelation WarningCode = "unsupported_relation"
	WarnNameCollision       WarningCode = "name_collision"
)

// Warning is a non-fatal problem reported alongside a result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Code, w.Subject, w.Message)
}

// NewWarning builds a warning with a formatted message.
func NewWarning(code WarningCode, subject, format string, args ...any) Warning {
	return Warning{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}
