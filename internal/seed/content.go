package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	models "contentgate/internal/domain/models/content"
	"contentgate/internal/domain/repositories"
	"contentgate/internal/repository/postgres"
)

// ContentSeeder writes sample CMS documents into the mirror table
type ContentSeeder struct {
	db     repositories.DBTX
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewContentSeeder creates a new content seeder
func NewContentSeeder(db repositories.DBTX, tables *postgres.TableNames, logger *slog.Logger) *ContentSeeder {
	return &ContentSeeder{
		db:     db,
		tables: tables,
		logger: logger,
	}
}

// SeedDocuments upserts docs and returns how many were written. A failing
// document is logged and skipped.
func (s *ContentSeeder) SeedDocuments(ctx context.Context, docs []models.Document) (int, error) {
	query := `INSERT INTO ` + s.tables.Documents + ` (id, doc_type, title, content, published_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			doc_type = EXCLUDED.doc_type,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at`

	written := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		content, err := json.Marshal(doc.Content)
		if err != nil {
			return written, fmt.Errorf("encode %s: %w", doc.ID, err)
		}

		var publishedAt *time.Time
		if !doc.PublishedAt.IsZero() {
			publishedAt = &doc.PublishedAt
		}

		if _, err := s.db.Exec(ctx, query, doc.ID, string(doc.Type), doc.Title, content, publishedAt, doc.UpdatedAt); err != nil {
			s.logger.Error("seed document failed", "id", doc.ID, "error", err)
			continue
		}
		s.logger.Info("seeded document", "id", doc.ID, "type", doc.Type)
		written++
	}
	return written, nil
}

// ClearDocuments deletes every mirrored document, keeping the table
func (s *ContentSeeder) ClearDocuments(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM `+s.tables.Documents); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	return nil
}

// SampleDocuments returns one document of each type. Some fields carry
// hostile values so the rendered API output shows the gateway at work.
func SampleDocuments(now time.Time) []models.Document {
	day := 24 * time.Hour
	return []models.Document{
		{
			ID:    "news-assemblea-2026",
			Type:  models.TypeNews,
			Title: "Assemblea dei soci 2026",
			Content: models.Body{
				Summary:   "Convocazione dell'assemblea ordinaria",
				HTML:      `<p>L'assemblea è convocata presso la sede.</p><p onclick="steal()">Ordine del giorno <a href="javascript:alert(1)">qui</a></p><script>alert(1)</script>`,
				MainImage: models.InlineRef("image-a1b2c3-1200x800-jpg"),
				Links: []models.Link{
					{Label: "Regolamento", URL: "https://coopfuturo.it/regolamento"},
					{Label: "Modulo", URL: "data:text/html,<script>alert(1)</script>"},
				},
			},
			PublishedAt: now.Add(-2 * day),
			UpdatedAt:   now.Add(-2 * day),
		},
		{
			ID:    "gallery-festa-estate",
			Type:  models.TypeGallery,
			Title: "Festa d'estate",
			Content: models.Body{
				Images: []models.MediaReference{
					models.ExpandedAsset("https://cdn.sanity.io/images/coopfuturo/production/f1-800x600.jpg", "image-f1-800x600-jpg"),
					models.DirectRef("image-f2-800x600-png"),
					models.DirectURL("https://tracker.example/pixel.gif"),
				},
			},
			PublishedAt: now.Add(-10 * day),
			UpdatedAt:   now.Add(-10 * day),
		},
		{
			ID:    "bilancio-2025",
			Type:  models.TypeFinancialReport,
			Title: "Bilancio di esercizio 2025",
			Content: models.Body{
				Summary: "Bilancio approvato dall'assemblea",
				File:    models.DirectRef("file-b2025-pdf"),
			},
			PublishedAt: now.Add(-30 * day),
			UpdatedAt:   now.Add(-30 * day),
		},
		{
			ID:    "avviso-chiusura",
			Type:  models.TypeAnnouncement,
			Title: "Chiusura uffici <agosto>",
			Content: models.Body{
				HTML: `<p>Gli uffici resteranno chiusi dal <strong>10</strong> al <strong>20</strong> agosto.</p>`,
			},
			PublishedAt: now.Add(-day),
			UpdatedAt:   now.Add(-day),
		},
		{
			ID:        "bozza-non-pubblicata",
			Type:      models.TypeNews,
			Title:     "Bozza",
			UpdatedAt: now,
		},
	}
}
