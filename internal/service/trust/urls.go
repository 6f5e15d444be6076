package trust

import (
	"log/slog"
	"net/url"
	"strings"
)

// Schemes a validated URL may carry.
var trustedSchemes = map[string]bool{
	"https":  true,
	"http":   true,
	"mailto": true,
	"tel":    true,
}

// URLValidator decides whether a URL may be embedded (img src, download link).
// Images are checked against an allow-list by hostname substring; files must
// come from exactly one CDN host.
//
// Safe for concurrent use; it holds no mutable state.
type URLValidator struct {
	imageHosts []string
	fileHost   string
	logger     *slog.Logger
}

// NewURLValidator creates a validator. Host entries are lower-cased; empty
// entries are dropped since they would match every hostname.
func NewURLValidator(imageHosts []string, fileHost string, logger *slog.Logger) *URLValidator {
	if logger == nil {
		logger = slog.Default()
	}
	hosts := make([]string, 0, len(imageHosts))
	for _, h := range imageHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &URLValidator{
		imageHosts: hosts,
		fileHost:   strings.ToLower(strings.TrimSpace(fileHost)),
		logger:     logger,
	}
}

// ValidateImageURL returns raw unchanged when its hostname contains one of the
// allow-listed image hosts. Substring matching admits subdomains.
func (v *URLValidator) ValidateImageURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, ok := v.parse(raw, "image")
	if !ok {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host != "" {
		for _, allowed := range v.imageHosts {
			if strings.Contains(host, allowed) {
				return raw, true
			}
		}
	}

	v.logger.Warn("image url host not allow-listed", "url", raw, "host", host)
	return "", false
}

// ValidateFileURL returns raw unchanged only when its hostname equals the file CDN host.
func (v *URLValidator) ValidateFileURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, ok := v.parse(raw, "file")
	if !ok {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || host != v.fileHost {
		v.logger.Warn("file url host rejected", "url", raw, "host", host, "want", v.fileHost)
		return "", false
	}
	return raw, true
}

// parse accepts absolute URLs with a trusted scheme only.
func (v *URLValidator) parse(raw, purpose string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		v.logger.Warn("invalid url", "purpose", purpose, "url", raw, "error", err)
		return nil, false
	}
	if u.Scheme == "" {
		v.logger.Warn("invalid url: not absolute", "purpose", purpose, "url", raw)
		return nil, false
	}
	if !trustedSchemes[strings.ToLower(u.Scheme)] {
		v.logger.Warn("url scheme rejected", "purpose", purpose, "url", raw, "scheme", u.Scheme)
		return nil, false
	}
	return u, true
}
