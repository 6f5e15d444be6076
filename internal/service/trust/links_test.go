package trust

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLinkURL(t *testing.T) {
	s := NewLinkSanitizer(discardLogger())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", "#"},
		{"whitespace only", "   \t", "#"},
		{"https", "https://example.com", "https://example.com"},
		{"query string kept unescaped", "https://example.com/?a=1&b=2", "https://example.com/?a=1&b=2"},
		{"surrounding space trimmed", "  https://example.com/path  ", "https://example.com/path"},
		{"mailto", "mailto:info@coopfuturo.it", "mailto:info@coopfuturo.it"},
		{"tel", "tel:+390101234567", "tel:+390101234567"},
		{"relative path", "/chi-siamo", "/chi-siamo"},
		{"fragment", "#contatti", "#contatti"},
		{"javascript", "javascript:alert(1)", "#"},
		{"javascript mixed case", "JaVaScRiPt:alert(1)", "#"},
		{"javascript with embedded tab", "java\tscript:alert(1)", "#"},
		{"javascript with leading control char", "\x01javascript:alert(1)", "#"},
		{"javascript entity-encoded colon", "javascript&#58;alert(1)", "#"},
		{"data", "data:text/html;base64,PHNjcmlwdD5hbGVydCgxKTwvc2NyaXB0Pg==", "#"},
		{"vbscript", "VBScript:msgbox(1)", "#"},
		{"file", "file:///etc/passwd", "#"},
		{"markup only", "<script>alert(1)</script>", "#"},
		{"markup stripped", `https://example.com/<b>x</b>`, "https://example.com/x"},
		{"markup hiding a scheme", "<b></b>javascript:alert(1)", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SanitizeLinkURL(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestSanitizeLinkURLLogsRejection(t *testing.T) {
	var buf bytes.Buffer
	s := NewLinkSanitizer(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, LinkPlaceholder, s.SanitizeLinkURL("javascript:alert(1)"))
	assert.Contains(t, buf.String(), "link rejected: dangerous scheme")
	assert.Contains(t, buf.String(), "scheme=javascript")
}

func TestLinkSanitizerDoesNotRestrictHosts(t *testing.T) {
	// Links may go anywhere; only embedding is host-restricted.
	s := NewLinkSanitizer(discardLogger())
	v := newTestValidator()

	raw := "https://www.legacoop.example/news"
	assert.Equal(t, raw, s.SanitizeLinkURL(raw))
	_, ok := v.ValidateImageURL(raw)
	assert.False(t, ok)
}
