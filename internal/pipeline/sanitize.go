package pipeline

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes markup that is unsafe to publish.
type HTMLSanitizer interface {
	SanitizeHTML(ctx context.Context, htmlContent string) string
}

// PolicySanitizer filters HTML through a bluemonday user-content policy,
// widened so highlighted code, heading anchors and <mark> survive.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewPolicySanitizer builds the sanitizer policy.
func NewPolicySanitizer() *PolicySanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("mark")
	p.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return &PolicySanitizer{policy: p}
}

// SanitizeHTML returns the sanitized HTML. A done context returns the input
// untouched; callers check ctx themselves before using the result.
func (s *PolicySanitizer) SanitizeHTML(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil || htmlContent == "" {
		return htmlContent
	}
	return s.policy.Sanitize(htmlContent)
}
