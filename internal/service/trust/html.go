package trust

import (
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer cleans CMS rich text down to a narrow set of text tags.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer allowing paragraphs, inline emphasis,
// links, lists, headings, quotes, code and spans. Attributes are limited to
// href, title, target, rel and class; data-* attributes never pass.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: richTextPolicy()}
}

func richTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br",
		"b", "strong", "i", "em", "u",
		"ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "code", "pre", "span",
	)

	// <a> is only kept when it carries an allowed href
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_(blank|self|parent|top)$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")
	p.AllowAttrs("title", "class").Globally()

	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)

	return p
}

// SanitizeHTML returns dirty with every disallowed tag, attribute and URL
// scheme removed. script and style elements are dropped with their contents.
// Sanitizing already sanitized output returns it unchanged.
func (s *HTMLSanitizer) SanitizeHTML(dirty string) string {
	if dirty == "" {
		return ""
	}
	return s.policy.Sanitize(dirty)
}

// SanitizeText escapes s for insertion as a text node.
func SanitizeText(s string) string {
	return html.EscapeString(s)
}
