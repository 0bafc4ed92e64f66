package database

import (
	"context"
	"database/sql"
	"time"

	"linkwatch/internal/models"
)

const recordColumns = "id, timestamp, status, success_percentage, avg_latency_ms, max_latency_ms, min_latency_ms, packet_loss"

// Insert appends a status record and returns its row id
func (db *DB) Insert(ctx context.Context, rec models.StatusRecord) (int64, error) {
	query := `
        INSERT INTO internet_status (timestamp, status, success_percentage, avg_latency_ms, max_latency_ms, min_latency_ms, packet_loss)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	res, err := db.ExecContext(ctx, query,
		rec.Timestamp.UTC(),
		rec.Status,
		rec.SuccessPercentage,
		nullable(rec.AvgLatencyMS),
		nullable(rec.MaxLatencyMS),
		nullable(rec.MinLatencyMS),
		rec.PacketLoss,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Latest returns the most recent status record, or nil when the table is empty
func (db *DB) Latest(ctx context.Context) (*models.StatusRecord, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM internet_status
        ORDER BY timestamp DESC, id DESC
        LIMIT 1
    `
	row := db.QueryRowContext(ctx, query)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Recent retrieves status records newer than since, oldest first. A zero
// since returns the full history.
func (db *DB) Recent(ctx context.Context, since time.Time) ([]models.StatusRecord, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM internet_status
        WHERE timestamp >= ?
        ORDER BY timestamp ASC, id ASC
    `
	rows, err := db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.StatusRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// StatusCounts tallies records per status label since the given time
func (db *DB) StatusCounts(ctx context.Context, since time.Time) (models.StatusCounts, error) {
	query := `
        SELECT
            SUM(CASE WHEN success_percentage = 100 THEN 1 ELSE 0 END),
            SUM(CASE WHEN success_percentage > 0 AND success_percentage < 100 THEN 1 ELSE 0 END),
            SUM(CASE WHEN success_percentage = 0 THEN 1 ELSE 0 END)
        FROM internet_status
        WHERE timestamp >= ?
    `

	var fullyUp, partiallyUp, down sql.NullInt64
	err := db.QueryRowContext(ctx, query, since.UTC()).Scan(&fullyUp, &partiallyUp, &down)
	if err != nil {
		return models.StatusCounts{}, err
	}

	return models.StatusCounts{
		FullyUp:     int(fullyUp.Int64),
		PartiallyUp: int(partiallyUp.Int64),
		Down:        int(down.Int64),
	}, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (models.StatusRecord, error) {
	var rec models.StatusRecord
	var avg, max, min sql.NullFloat64

	err := row.Scan(&rec.ID, &rec.Timestamp, &rec.Status, &rec.SuccessPercentage,
		&avg, &max, &min, &rec.PacketLoss)
	if err != nil {
		return rec, err
	}

	if avg.Valid {
		rec.AvgLatencyMS = &avg.Float64
	}
	if max.Valid {
		rec.MaxLatencyMS = &max.Float64
	}
	if min.Valid {
		rec.MinLatencyMS = &min.Float64
	}

	return rec, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
