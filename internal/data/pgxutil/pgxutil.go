// Package pgxutil exposes native pgx connections from a database/sql pool,
// letting repositories use pgx row-collection helpers without opening a
// second pool.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// WithPgxConn checks a connection out of the pool, unwraps it through the
// pgx stdlib driver, and runs fn against the raw *pgx.Conn. The connection
// returns to the pool when fn completes.
func WithPgxConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get conn from pool: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	return conn.Raw(func(dc any) error {
		std, ok := dc.(*stdlib.Conn)
		if !ok {
			return errors.New("driver connection is not *stdlib.Conn; is the pool using the pgx driver?")
		}
		return fn(std.Conn())
	})
}
