package trust

import (
	"log/slog"

	"contentgate/internal/config"
	"contentgate/internal/domain/models/content"
	contentSvc "contentgate/internal/domain/services/content"
)

// Gateway bundles every check between CMS content and the renderer.
type Gateway struct {
	urls   *URLValidator
	assets *AssetResolver
	html   *HTMLSanitizer
	links  *LinkSanitizer
}

var _ contentSvc.Gateway = (*Gateway)(nil)

// New builds a gateway from a trust policy, using the CDN builder for
// unexpanded asset references.
func New(policy config.TrustPolicy, logger *slog.Logger) *Gateway {
	builder := NewCDNBuilder(policy.FileHost, policy.ProjectID, policy.Dataset)
	return NewWithBuilder(policy, builder, logger)
}

// NewWithBuilder builds a gateway with a custom asset URL builder.
func NewWithBuilder(policy config.TrustPolicy, builder AssetURLBuilder, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "trust")

	urls := NewURLValidator(policy.ImageHosts, policy.FileHost, logger)
	return &Gateway{
		urls:   urls,
		assets: NewAssetResolver(urls, builder, logger),
		html:   NewHTMLSanitizer(),
		links:  NewLinkSanitizer(logger),
	}
}

func (g *Gateway) ValidateImageURL(raw string) (string, bool) { return g.urls.ValidateImageURL(raw) }
func (g *Gateway) ValidateFileURL(raw string) (string, bool) { return g.urls.ValidateFileURL(raw) }

func (g *Gateway) ImageURL(ref content.MediaReference) (string, bool) { return g.assets.ImageURL(ref) }
func (g *Gateway) FileURL(ref content.MediaReference) (string, bool) { return g.assets.FileURL(ref) }

func (g *Gateway) ResolveImage(ref content.MediaReference) Resolution { return g.assets.ResolveImage(ref) }
func (g *Gateway) ResolveFile(ref content.MediaReference) Resolution { return g.assets.ResolveFile(ref) }

func (g *Gateway) SanitizeHTML(dirty string) string { return g.html.SanitizeHTML(dirty) }
func (g *Gateway) SanitizeText(s string) string { return SanitizeText(s) }
func (g *Gateway) SanitizeLinkURL(raw string) string { return g.links.SanitizeLinkURL(raw) }
