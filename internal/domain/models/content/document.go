package content

import (
	"time"
)

// DocumentType is the content store _type of a published document.
type DocumentType string

const (
	TypeNews            DocumentType = "news"
	TypeGallery         DocumentType = "gallery"
	TypeFinancialReport DocumentType = "financialReport"
	TypeAnnouncement    DocumentType = "announcement"
)

// DocumentTypes lists every type the site renders.
var DocumentTypes = []DocumentType{TypeNews, TypeGallery, TypeFinancialReport, TypeAnnouncement}

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Document is a published document as mirrored from the content store.
// Every string and media field is untrusted.
type Document struct {
	ID          string       `json:"id" db:"id"`
	Type        DocumentType `json:"type" db:"doc_type"`
	Title       string       `json:"title" db:"title"`
	Content     Body         `json:"content" db:"content"` // jsonb
	PublishedAt time.Time    `json:"published_at" db:"published_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// Body is the editor-authored part of a document.
type Body struct {
	Summary   string           `json:"summary,omitempty"`
	HTML      string           `json:"body,omitempty"` // rich text rendered to HTML by the store
	MainImage MediaReference   `json:"mainImage"`
	Images    []MediaReference `json:"images,omitempty"` // galleries
	File      MediaReference   `json:"file"`             // financial reports
	Links     []Link           `json:"links,omitempty"`
}

// Link is an editor-supplied outbound hyperlink.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RenderedDocument holds only gateway output and is safe to hand to templates.
// Nil URLs mean the media was omitted, never substituted.
type RenderedDocument struct {
	ID          string         `json:"id"`
	Type        DocumentType   `json:"type"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary,omitempty"`
	BodyHTML    string         `json:"body_html"`
	ImageURL    *string        `json:"image_url"`
	Gallery     []string       `json:"gallery,omitempty"`
	FileURL     *string        `json:"file_url"`
	Links       []RenderedLink `json:"links,omitempty"`
	PublishedAt time.Time      `json:"published_at"`
}

// RenderedLink is a link whose href passed the link sanitizer.
type RenderedLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}
