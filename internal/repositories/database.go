package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool, pgx.Tx and
// the pgxmock pool, so repositories run identically inside and outside a
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB adds transaction support on top of Querier. Services that need
// all-or-nothing sequences hold a DB and rebind repositories with WithTx.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
