package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"contentgate/internal/config"
	"contentgate/internal/domain"
	models "contentgate/internal/domain/models/content"
	contentRepo "contentgate/internal/domain/repositories/content"
	contentSvc "contentgate/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// documentService implements the RenderService interface
type documentService struct {
	docRepo contentRepo.DocumentRepository
	gateway contentSvc.Gateway
	logger  *slog.Logger
}

// NewDocumentService creates a new render service
func NewDocumentService(
	docRepo contentRepo.DocumentRepository,
	gateway contentSvc.Gateway,
	logger *slog.Logger,
) contentSvc.RenderService {
	return &documentService{
		docRepo: docRepo,
		gateway: gateway,
		logger:  logger,
	}
}

// RenderDocument loads one published document and renders it
func (s *documentService) RenderDocument(ctx context.Context, id string) (*models.RenderedDocument, error) {
	id = strings.TrimSpace(id)
	if err := validation.Validate(id, validation.Required, validation.Length(1, 128)); err != nil {
		return nil, fmt.Errorf("%w: id %v", domain.ErrValidation, err)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rendered := s.Render(doc)
	return &rendered, nil
}

// ListDocuments renders the latest published documents of a type
func (s *documentService) ListDocuments(ctx context.Context, docType models.DocumentType, limit int) ([]models.RenderedDocument, error) {
	if err := s.validateListRequest(docType, limit); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	docs, err := s.docRepo.ListByType(ctx, docType, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.RenderedDocument, 0, len(docs))
	for i := range docs {
		out = append(out, s.Render(&docs[i]))
	}
	return out, nil
}

// Render passes every untrusted field of doc through the gateway.
func (s *documentService) Render(doc *models.Document) models.RenderedDocument {
	out := models.RenderedDocument{
		ID:          doc.ID,
		Type:        doc.Type,
		Title:       s.gateway.SanitizeText(doc.Title),
		Summary:     s.gateway.SanitizeText(doc.Content.Summary),
		BodyHTML:    s.gateway.SanitizeHTML(doc.Content.HTML),
		PublishedAt: doc.PublishedAt,
	}

	if u, ok := s.gateway.ImageURL(doc.Content.MainImage); ok {
		out.ImageURL = &u
	}

	// Gallery entries that fail validation are dropped, not replaced.
	omitted := 0
	for _, img := range doc.Content.Images {
		if u, ok := s.gateway.ImageURL(img); ok {
			out.Gallery = append(out.Gallery, u)
		} else {
			omitted++
		}
	}
	if omitted > 0 {
		s.logger.Info("gallery images omitted",
			"id", doc.ID,
			"omitted", omitted,
			"kept", len(out.Gallery),
		)
	}

	if u, ok := s.gateway.FileURL(doc.Content.File); ok {
		out.FileURL = &u
	}

	for _, link := range doc.Content.Links {
		out.Links = append(out.Links, models.RenderedLink{
			Label: s.gateway.SanitizeText(link.Label),
			Href:  s.gateway.SanitizeLinkURL(link.URL),
		})
	}

	return out
}

func (s *documentService) validateListRequest(docType models.DocumentType, limit int) error {
	return validation.Errors{
		"type": validation.Validate(string(docType),
			validation.Required,
			validation.By(func(value interface{}) error {
				if !docType.Valid() {
					return fmt.Errorf("unknown document type %q", docType)
				}
				return nil
			}),
		),
		"limit": validation.Validate(limit, validation.Required, validation.Min(1), validation.Max(config.MaxListLimit)),
	}.Filter()
}
