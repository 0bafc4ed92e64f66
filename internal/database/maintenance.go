package database

import (
	"context"
	"time"
)

// Prune deletes status records older than the retention window and returns
// how many rows went away. Runs after every monitoring pass, so it stays a
// single indexed DELETE.
func (db *DB) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)

	res, err := db.ExecContext(ctx, "DELETE FROM internet_status WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}

	deleted, _ := res.RowsAffected()

	// Reclaim space occasionally rather than after every prune
	if deleted > 0 && time.Now().Day() == 1 {
		db.ExecContext(ctx, "VACUUM")
	}

	return deleted, nil
}
