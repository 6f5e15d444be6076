package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentgate/internal/config"
	"contentgate/internal/domain"
	models "contentgate/internal/domain/models/content"
	"contentgate/internal/service/trust"
)

type fakeDocumentRepo struct {
	docs      map[string]models.Document
	listErr   error
	listCalls int
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document " + id + " not found"}
	}
	return &doc, nil
}

func (f *fakeDocumentRepo) ListByType(ctx context.Context, docType models.DocumentType, limit int) ([]models.Document, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Document
	for _, doc := range f.docs {
		if doc.Type == docType && len(out) < limit {
			out = append(out, doc)
		}
	}
	return out, nil
}

func newTestService(repo *fakeDocumentRepo) *documentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := trust.New(config.DefaultTrustPolicy(), logger)
	return NewDocumentService(repo, gateway, logger).(*documentService)
}

var published = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func hostileNews() models.Document {
	return models.Document{
		ID:    "news-1",
		Type:  models.TypeNews,
		Title: `Soci & <amici>`,
		Content: models.Body{
			Summary:   `<b>Assemblea</b>`,
			HTML:      `<p onclick="x()">Ordine del giorno<script>alert(1)</script></p>`,
			MainImage: models.InlineRef("image-abc-800x600-jpg"),
			Images: []models.MediaReference{
				models.DirectURL("https://cdn.sanity.io/images/coopfuturo/production/g1-10x10.png"),
				models.DirectURL("https://evil.example/g2.png"),
				models.DirectURL("javascript:alert(1)"),
			},
			File: models.DirectRef("file-bilancio-pdf"),
			Links: []models.Link{
				{Label: "Contatti", URL: "https://coopfuturo.it/contatti"},
				{Label: "<i>x</i>", URL: "javascript:alert(1)"},
			},
		},
		PublishedAt: published,
	}
}

func TestRenderDocument(t *testing.T) {
	svc := newTestService(&fakeDocumentRepo{docs: map[string]models.Document{"news-1": hostileNews()}})

	out, err := svc.RenderDocument(context.Background(), " news-1 ")
	require.NoError(t, err)

	assert.Equal(t, "news-1", out.ID)
	assert.Equal(t, "Soci &amp; &lt;amici&gt;", out.Title)
	assert.Equal(t, "&lt;b&gt;Assemblea&lt;/b&gt;", out.Summary)
	assert.Equal(t, "<p>Ordine del giorno</p>", out.BodyHTML)

	require.NotNil(t, out.ImageURL)
	assert.Equal(t, "https://cdn.sanity.io/images/coopfuturo/production/abc-800x600.jpg", *out.ImageURL)

	assert.Equal(t, []string{"https://cdn.sanity.io/images/coopfuturo/production/g1-10x10.png"}, out.Gallery)

	require.NotNil(t, out.FileURL)
	assert.Equal(t, "https://cdn.sanity.io/files/coopfuturo/production/bilancio.pdf", *out.FileURL)

	require.Len(t, out.Links, 2)
	assert.Equal(t, models.RenderedLink{Label: "Contatti", Href: "https://coopfuturo.it/contatti"}, out.Links[0])
	assert.Equal(t, "#", out.Links[1].Href)
	assert.Equal(t, "&lt;i&gt;x&lt;/i&gt;", out.Links[1].Label)
	assert.Equal(t, published, out.PublishedAt)
}

func TestRenderDocumentWithoutMedia(t *testing.T) {
	doc := models.Document{ID: "a-1", Type: models.TypeAnnouncement, Title: "Chiusura estiva"}
	svc := newTestService(&fakeDocumentRepo{docs: map[string]models.Document{"a-1": doc}})

	out, err := svc.RenderDocument(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Nil(t, out.ImageURL)
	assert.Nil(t, out.FileURL)
	assert.Empty(t, out.Gallery)
	assert.Empty(t, out.Links)
	assert.Equal(t, "", out.BodyHTML)
}

func TestRenderDocumentErrors(t *testing.T) {
	svc := newTestService(&fakeDocumentRepo{})

	_, err := svc.RenderDocument(context.Background(), "   ")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.RenderDocument(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListDocuments(t *testing.T) {
	repo := &fakeDocumentRepo{docs: map[string]models.Document{
		"news-1": hostileNews(),
		"fr-1":   {ID: "fr-1", Type: models.TypeFinancialReport, Title: "Bilancio"},
	}}
	svc := newTestService(repo)

	out, err := svc.ListDocuments(context.Background(), models.TypeNews, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "<p>Ordine del giorno</p>", out[0].BodyHTML)
}

func TestListDocumentsValidation(t *testing.T) {
	tests := []struct {
		name    string
		docType models.DocumentType
		limit   int
	}{
		{name: "missing type", docType: "", limit: 10},
		{name: "unknown type", docType: "recipe", limit: 10},
		{name: "zero limit", docType: models.TypeNews, limit: 0},
		{name: "negative limit", docType: models.TypeNews, limit: -1},
		{name: "limit over max", docType: models.TypeNews, limit: config.MaxListLimit + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDocumentRepo{}
			svc := newTestService(repo)

			_, err := svc.ListDocuments(context.Background(), tt.docType, tt.limit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Equal(t, 0, repo.listCalls)
		})
	}
}

func TestListDocumentsRepoError(t *testing.T) {
	svc := newTestService(&fakeDocumentRepo{listErr: domain.ErrUnavailable})

	_, err := svc.ListDocuments(context.Background(), models.TypeGallery, 5)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
