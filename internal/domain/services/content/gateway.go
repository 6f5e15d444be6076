package content

import (
	"context"

	"contentgate/internal/domain/models/content"
)

// Gateway validates and sanitizes untrusted CMS values before rendering.
// None of its methods fail: rejected input comes back as false, "" or "#".
type Gateway interface {
	// ValidateImageURL returns the URL unchanged if its host is allow-listed for images
	ValidateImageURL(raw string) (string, bool)

	// ValidateFileURL returns the URL unchanged if its host is exactly the file CDN
	ValidateFileURL(raw string) (string, bool)

	// ImageURL resolves a media reference to a validated image URL
	ImageURL(ref content.MediaReference) (string, bool)

	// FileURL resolves a media reference to a validated file URL
	FileURL(ref content.MediaReference) (string, bool)

	// SanitizeHTML reduces rich text to the allowed tag/attribute set
	SanitizeHTML(dirty string) string

	// SanitizeText escapes a plain string for a text node
	SanitizeText(s string) string

	// SanitizeLinkURL returns a safe href, "#" when rejected
	SanitizeLinkURL(raw string) string
}

// RenderService loads published documents and passes them through the Gateway
type RenderService interface {
	// RenderDocument loads and renders one document
	RenderDocument(ctx context.Context, id string) (*content.RenderedDocument, error)

	// ListDocuments renders the latest documents of a type
	ListDocuments(ctx context.Context, docType content.DocumentType, limit int) ([]content.RenderedDocument, error)
}
