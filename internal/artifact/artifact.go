// Package artifact holds generated text files and writes them out.
package artifact

import (
	"sort"

	"github.com/tordrt/umlgen/internal/diagram"
)

// Artifact is one generated file. Path is slash-separated and relative.
type Artifact struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Bundle is the output of one generator run.
type Bundle struct {
	Target    string            `json:"target"`
	Artifacts []Artifact        `json:"artifacts"`
	Warnings  []diagram.Warning `json:"warnings,omitempty"`
}

// NewBundle creates an empty bundle for target.
func NewBundle(target string) *Bundle {
	return &Bundle{Target: target, Artifacts: []Artifact{}}
}

// Add appends a file.
func (b *Bundle) Add(path, content string) {
	b.Artifacts = append(b.Artifacts, Artifact{Path: path, Content: content})
}

// Warn appends a warning.
func (b *Bundle) Warn(w diagram.Warning) {
	b.Warnings = append(b.Warnings, w)
}

// File returns the artifact at path.
func (b *Bundle) File(path string) (Artifact, bool) {
	for _, a := range b.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return Artifact{}, false
}

// Paths returns the artifact paths in emission order.
func (b *Bundle) Paths() []string {
	out := make([]string, 0, len(b.Artifacts))
	for _, a := range b.Artifacts {
		out = append(out, a.Path)
	}
	return out
}

// Merge combines bundles into one, prefixing each artifact with its
// bundle's target directory when prefix is set.
func Merge(target string, prefix bool, bundles ...*Bundle) *Bundle {
	out := NewBundle(target)
	sorted := make([]*Bundle, 0, len(bundles))
	for _, b := range bundles {
		if b != nil {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Target < sorted[j].Target })
	for _, b := range sorted {
		for _, a := range b.Artifacts {
			p := a.Path
			if prefix {
				p = b.Target + "/" + p
			}
			out.Add(p, a.Content)
		}
		out.Warnings = append(out.Warnings, b.Warnings...)
	}
	return out
}
