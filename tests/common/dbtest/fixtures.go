//go:build e2e

package dbtest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB wipes all appointment data between subtests. The identity
// sequence is restarted so ids are predictable within a test.
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()

	if _, err := pool.Exec(ctx, "TRUNCATE TABLE appointments RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate appointments: %w", err)
	}
	return nil
}
