package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	stmts []string
	err   error
}

func (e *execRecorder) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	e.stmts = append(e.stmts, sql)
	return pgconn.CommandTag{}, e.err
}

func (e *execRecorder) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (e *execRecorder) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func TestNewTableNames(t *testing.T) {
	assert.Equal(t, "dev_cms_documents", NewTableNames("dev_").Documents)
	assert.Equal(t, "cms_documents", NewTableNames("").Documents)
}

func TestEnsureSchema(t *testing.T) {
	db := &execRecorder{}
	require.NoError(t, EnsureSchema(context.Background(), db, NewTableNames("test_")))
	require.Len(t, db.stmts, 1)
	assert.Contains(t, db.stmts[0], "CREATE TABLE IF NOT EXISTS test_cms_documents")
	assert.Contains(t, db.stmts[0], "test_cms_documents_type_published_idx")

	db = &execRecorder{err: errors.New("permission denied")}
	assert.ErrorContains(t, EnsureSchema(context.Background(), db, NewTableNames("test_")), "ensure schema")
}

func TestDropSchema(t *testing.T) {
	db := &execRecorder{}
	require.NoError(t, DropSchema(context.Background(), db, NewTableNames("test_")))
	assert.Equal(t, []string{"DROP TABLE IF EXISTS test_cms_documents CASCADE"}, db.stmts)
}

func TestPgErrorHelpers(t *testing.T) {
	assert.True(t, IsPgNoRowsError(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsPgNoRowsError(errors.New("other")))

	assert.True(t, IsPgUndefinedTableError(fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})))
	assert.False(t, IsPgUndefinedTableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsPgUndefinedTableError(nil))
}
