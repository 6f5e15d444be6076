package content

import (
	"context"

	"contentgate/internal/domain/models/content"
)

// DocumentRepository reads published documents from the content store mirror.
// The gateway never writes to it.
type DocumentRepository interface {
	// GetByID retrieves a published document by ID
	GetByID(ctx context.Context, id string) (*content.Document, error)

	// ListByType lists the most recently published documents of a type
	ListByType(ctx context.Context, docType content.DocumentType, limit int) ([]content.Document, error)
}
