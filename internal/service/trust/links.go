package trust

import (
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// LinkPlaceholder is returned for empty or rejected hrefs.
const LinkPlaceholder = "#"

// Schemes that execute or read local content when navigated to.
var deniedLinkSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}

// LinkSanitizer neutralizes dangerous schemes in outbound hyperlinks. Unlike
// URLValidator it does not restrict hosts: a link may point anywhere.
type LinkSanitizer struct {
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewLinkSanitizer creates a link sanitizer.
func NewLinkSanitizer(logger *slog.Logger) *LinkSanitizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkSanitizer{
		policy: bluemonday.StrictPolicy(),
		logger: logger,
	}
}

// SanitizeLinkURL returns an href that is always safe to place in an
// attribute. It never returns an empty string.
func (s *LinkSanitizer) SanitizeLinkURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LinkPlaceholder
	}
	if scheme, denied := deniedScheme(trimmed); denied {
		s.logger.Warn("link rejected: dangerous scheme", "scheme", scheme, "url", raw)
		return LinkPlaceholder
	}

	// Strict policy strips any markup smuggled into the value; the entity
	// escaping it applies is undone since the caller escapes for the attribute.
	cleaned := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(trimmed)))
	if cleaned == "" {
		s.logger.Warn("link rejected: nothing left after sanitizing", "url", raw)
		return LinkPlaceholder
	}
	if scheme, denied := deniedScheme(cleaned); denied {
		s.logger.Warn("link rejected: dangerous scheme", "scheme", scheme, "url", raw)
		return LinkPlaceholder
	}
	return cleaned
}

// deniedScheme reports whether raw starts with a denied scheme the way a
// browser reads it: entities decoded, ASCII whitespace and control
// characters ignored, case folded.
func deniedScheme(raw string) (string, bool) {
	normalized := strings.ToLower(strings.Map(func(r rune) rune {
		if r <= 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, html.UnescapeString(raw)))

	for _, scheme := range deniedLinkSchemes {
		if strings.HasPrefix(normalized, scheme) {
			return strings.TrimSuffix(scheme, ":"), true
		}
	}
	return "", false
}
