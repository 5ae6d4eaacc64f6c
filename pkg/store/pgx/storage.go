package pgx

import (
	"context"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// DocumentDBStorage implements the DocumentStorage interface on
// PostgreSQL. Paper metadata, author/concept/method lists and persisted
// layouts each live in their own table; see migrations/ for the schema.
type DocumentDBStorage struct {
	conn pgxIConn
}

// NewDocumentDBStorage creates a DocumentDBStorage over an existing
// connection or pool.
func NewDocumentDBStorage(conn pgxIConn) *DocumentDBStorage {
	return &DocumentDBStorage{conn: conn}
}
