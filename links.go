package richtext

import (
	"net/url"
	"strings"
)

// linkSchemes are the absolute URL schemes rendered as anchors.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// href returns the anchor target for a link URL, or false when the link
// should render as plain inline content: empty, unparseable, or using a
// scheme outside linkSchemes (javascript:, data:, ...).
func (r *Renderer) href(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" {
		return raw, linkSchemes[u.Scheme]
	}

	if r.base == nil || !isRelativeRef(raw) {
		return raw, true
	}
	return r.base.ResolveReference(u).String(), true
}

// isRelativeRef reports whether raw should be resolved against a base URL.
// Fragment-only and protocol-relative references are left as authored.
func isRelativeRef(raw string) bool {
	return !strings.HasPrefix(raw, "#") && !strings.HasPrefix(raw, "//")
}
