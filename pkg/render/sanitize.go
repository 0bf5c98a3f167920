package render

import "github.com/microcosm-cc/bluemonday"

// DefaultHTMLPolicy returns the policy used for raw html descriptors when
// sanitising is enabled without a custom policy.
func DefaultHTMLPolicy() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
}

func (r *Renderer) sanitize(markup string) string {
	if r.sanitizer == nil || markup == "" {
		return markup
	}
	return r.sanitizer.Sanitize(markup)
}
