package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// SnapshotRepository provides data access methods for the patrimony_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func scanSnapshot(row rowScanner) (model.PatrimonySnapshot, error) {
	var record model.PatrimonySnapshot
	var date sql.NullString
	var value, calculatedAt string

	if err := row.Scan(&record.ID, &date, &value, &record.ActiveCount, &calculatedAt); err != nil {
		return record, err
	}

	var err error
	if record.Date, err = parseDate("date", date); err != nil {
		return record, err
	}
	if record.Value, err = parseDecimal("value", value); err != nil {
		return record, err
	}
	if record.CalculatedAt, err = ParseTime(calculatedAt); err != nil {
		return record, fmt.Errorf("failed to parse calculated_at: %w", err)
	}
	return record, nil
}

// GetSnapshots streams the stored snapshots between startDate and endDate (inclusive),
// oldest first. The callback is called once per record; an error from it stops the scan.
func (r *SnapshotRepository) GetSnapshots(
	ctx context.Context,
	startDate, endDate valuation.Date,
	callback func(record model.PatrimonySnapshot) error,
) error {
	query := `
		SELECT id, date, value, active_count, calculated_at
		FROM patrimony_snapshot
		WHERE date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, startDate.String(), endDate.String())
	if err != nil {
		return fmt.Errorf("failed to query patrimony_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanSnapshot(rows)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// GetSnapshot returns the snapshot stored for one date.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, date valuation.Date) (model.PatrimonySnapshot, error) {
	query := `
		SELECT id, date, value, active_count, calculated_at
		FROM patrimony_snapshot
		WHERE date = ?
	`

	record, err := scanSnapshot(r.db.QueryRowContext(ctx, query, date.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return model.PatrimonySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.PatrimonySnapshot{}, fmt.Errorf("failed to query patrimony_snapshot: %w", err)
	}
	return record, nil
}

// UpsertSnapshot stores a snapshot, replacing any previous one for the same date.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, record model.PatrimonySnapshot) error {
	query := `
		INSERT INTO patrimony_snapshot (id, date, value, active_count, calculated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			value = excluded.value,
			active_count = excluded.active_count,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Date.String(),
		record.Value.String(),
		record.ActiveCount,
		record.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert patrimony_snapshot: %w", err)
	}
	return nil
}

// DeleteSnapshotsFrom removes every snapshot dated on or after from. Snapshots become
// stale as soon as a possession valued on those dates changes.
func (r *SnapshotRepository) DeleteSnapshotsFrom(ctx context.Context, from valuation.Date) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patrimony_snapshot WHERE date >= ?`, from.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete patrimony_snapshot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
