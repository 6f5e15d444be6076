package config

const (
	// DefaultFileHost is the content store CDN that serves uploaded documents
	// (financial reports, statutes, forms).
	DefaultFileHost = "cdn.sanity.io"

	// DefaultRateLimitMaxAttempts is how many attempts a key may make inside one window.
	DefaultRateLimitMaxAttempts = 5

	// DefaultRateLimitWindowMs is the sliding window length in milliseconds.
	DefaultRateLimitWindowMs = 60000

	// DefaultLogMaxFiles is how many timestamped log files are kept in LOG_DIR.
	DefaultLogMaxFiles = 10

	// MaxHTMLInputBytes caps rich-text bodies accepted by the HTTP API.
	// Largest CMS rich-text field seen in practice is well under 200KB.
	MaxHTMLInputBytes = 1 << 20

	// MaxURLLength caps URLs accepted by the HTTP API.
	MaxURLLength = 2048

	// MaxListLimit is the maximum page size for document listings.
	MaxListLimit = 100

	// MaxContactMessageLength is the maximum length of a contact form message.
	MaxContactMessageLength = 5000

	// DefaultAPIRequestsPerSecond and DefaultAPIBurst size the token bucket
	// shared by every /api/trust caller. Zero rate disables it.
	DefaultAPIRequestsPerSecond = 50
	DefaultAPIBurst             = 100
)

// DefaultImageHosts is the image allow-list: the CDN, the production domains
// and localhost for development. Entries are matched by substring.
var DefaultImageHosts = []string{
	"cdn.sanity.io",
	"coopfuturo.it",
	"localhost",
}
