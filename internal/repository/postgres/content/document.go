package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"contentgate/internal/domain"
	models "contentgate/internal/domain/models/content"
	"contentgate/internal/domain/repositories"
	contentRepo "contentgate/internal/domain/repositories/content"
	"contentgate/internal/repository/postgres"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	db     repositories.DBTX
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) contentRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a published document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, doc_type, title, content, published_at, updated_at
		FROM %s
		WHERE id = $1 AND published_at IS NOT NULL AND published_at <= now()
	`, r.tables.Documents)

	var (
		doc     models.Document
		docType string
		raw     []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&docType,
		&doc.Title,
		&raw,
		&doc.PublishedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
		}
		if postgres.IsPgUndefinedTableError(err) {
			return nil, fmt.Errorf("get document: %w", domain.ErrUnavailable)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc.Type = models.DocumentType(docType)
	doc.Content = r.decodeBody(doc.ID, raw)
	return &doc, nil
}

// ListByType lists the most recently published documents of a type
func (r *PostgresDocumentRepository) ListByType(ctx context.Context, docType models.DocumentType, limit int) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, published_at, updated_at
		FROM %s
		WHERE doc_type = $1 AND published_at IS NOT NULL AND published_at <= now()
		ORDER BY published_at DESC
		LIMIT $2
	`, r.tables.Documents)

	rows, err := r.db.Query(ctx, query, string(docType), limit)
	if err != nil {
		if postgres.IsPgUndefinedTableError(err) {
			return nil, fmt.Errorf("list documents: %w", domain.ErrUnavailable)
		}
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, limit)
	for rows.Next() {
		var (
			doc         models.Document
			raw         []byte
			publishedAt time.Time
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &raw, &publishedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.Type = docType
		doc.PublishedAt = publishedAt
		doc.Content = r.decodeBody(doc.ID, raw)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// decodeBody parses the jsonb content column. A body the store wrote in an
// unexpected shape renders as empty rather than failing the page.
func (r *PostgresDocumentRepository) decodeBody(id string, raw []byte) models.Body {
	var body models.Body
	if len(raw) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		r.logger.Warn("undecodable document content",
			"id", id,
			"error", err,
		)
		return models.Body{}
	}
	return body
}
