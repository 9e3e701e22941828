package richtext

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans rich markup coming from an untrusted boundary.
type Sanitizer interface {
	Sanitize(markup string) string
}

// NewPolicy returns a bluemonday policy that keeps the markup the editor
// toolbar produces plus the paragraph and list wrappers pasted content
// usually carries. Everything else, including attributes, is stripped.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "br", "p", "ul", "ol", "li", "span", "div")
	return p
}
