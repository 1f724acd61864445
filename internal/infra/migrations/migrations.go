package migrations

import (
	"context"
	"embed"

	"clinic-appointments/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var fs embed.FS

// Up applies all pending migrations. Goose needs database/sql, so a
// throwaway *sql.DB is opened from the pgx pool and closed afterwards.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errs.Wrap(err, "failed to set goose dialect")
	}
	goose.SetBaseFS(fs)

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "sql"); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}
