package seed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "contentgate/internal/domain/models/content"
	"contentgate/internal/repository/postgres"
)

type execCall struct {
	sql  string
	args []any
}

type recordingDB struct {
	calls  []execCall
	failID string
}

func (d *recordingDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	d.calls = append(d.calls, execCall{sql: sql, args: args})
	if d.failID != "" && len(args) > 0 && args[0] == d.failID {
		return pgconn.CommandTag{}, errors.New("constraint violation")
	}
	return pgconn.CommandTag{}, nil
}

func (d *recordingDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *recordingDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func newTestSeeder(db *recordingDB) *ContentSeeder {
	return NewContentSeeder(db, postgres.NewTableNames("test_"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSampleDocumentsCoverEveryType(t *testing.T) {
	seen := map[models.DocumentType]bool{}
	for _, doc := range SampleDocuments(time.Now()) {
		require.True(t, doc.Type.Valid(), doc.ID)
		seen[doc.Type] = true
	}
	for _, typ := range models.DocumentTypes {
		assert.True(t, seen[typ], "missing sample for %s", typ)
	}
}

func TestSeedDocuments(t *testing.T) {
	db := &recordingDB{}
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := SampleDocuments(now)

	n, err := newTestSeeder(db).SeedDocuments(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, len(docs), n)
	require.Len(t, db.calls, len(docs))

	first := db.calls[0]
	assert.True(t, strings.HasPrefix(first.sql, "INSERT INTO test_cms_documents"))
	assert.Equal(t, "news-assemblea-2026", first.args[0])
	assert.Equal(t, "news", first.args[1])

	// content round-trips through the media reference wire format
	var body models.Body
	require.NoError(t, json.Unmarshal(first.args[3].([]byte), &body))
	assert.Equal(t, models.InlineRef("image-a1b2c3-1200x800-jpg"), body.MainImage)

	// unpublished drafts get a NULL published_at
	last := db.calls[len(db.calls)-1]
	assert.Nil(t, last.args[4])
}

func TestSeedDocumentsSkipsFailures(t *testing.T) {
	db := &recordingDB{failID: "bilancio-2025"}
	docs := SampleDocuments(time.Now())

	n, err := newTestSeeder(db).SeedDocuments(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, len(docs)-1, n)
}

func TestSeedDocumentsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := newTestSeeder(&recordingDB{}).SeedDocuments(ctx, SampleDocuments(time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}

func TestClearDocuments(t *testing.T) {
	db := &recordingDB{}
	require.NoError(t, newTestSeeder(db).ClearDocuments(context.Background()))
	require.Len(t, db.calls, 1)
	assert.Equal(t, "DELETE FROM test_cms_documents", db.calls[0].sql)
}
