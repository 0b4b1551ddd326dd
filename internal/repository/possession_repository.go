package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PossessionRepository provides data access methods for the possession table.
// Rows are returned in insertion order, which is the order the ledger is valued in.
type PossessionRepository struct {
	db     *sql.DB
	cipher *OwnerCipher
}

// NewPossessionRepository creates a new PossessionRepository. cipher may be nil to
// store owners in plain text.
func NewPossessionRepository(db *sql.DB, cipher *OwnerCipher) *PossessionRepository {
	return &PossessionRepository{db: db, cipher: cipher}
}

const possessionColumns = `
	label, owner, initial_value, start_date, end_date,
	depreciation_rate, constant_per_period, uses_day_count
`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PossessionRepository) scanPossession(row rowScanner) (valuation.Possession, error) {
	var p valuation.Possession
	var owner, initialValue, rate string
	var startDate, endDate, constant sql.NullString

	err := row.Scan(
		&p.Label,
		&owner,
		&initialValue,
		&startDate,
		&endDate,
		&rate,
		&constant,
		&p.UsesDayCount,
	)
	if err != nil {
		return p, err
	}

	if p.Owner, err = r.cipher.Open(owner); err != nil {
		return p, fmt.Errorf("%w: possession %q: %v", apperrors.ErrDataInconsistency, p.Label, err)
	}
	if p.InitialValue, err = parseDecimal("initial_value", initialValue); err != nil {
		return p, err
	}
	if p.DepreciationRatePercent, err = parseDecimal("depreciation_rate", rate); err != nil {
		return p, err
	}
	if constant.Valid {
		value, err := parseDecimal("constant_per_period", constant.String)
		if err != nil {
			return p, err
		}
		p.ConstantPerPeriodValue = decimal.NewNullDecimal(value)
	}
	if p.StartDate, err = parseDate("start_date", startDate); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDate("end_date", endDate); err != nil {
		return p, err
	}

	return p, nil
}

// GetPossessions retrieves possessions matching the filter.
// Returns an empty slice if nothing matches.
func (r *PossessionRepository) GetPossessions(ctx context.Context, filter model.PossessionFilter) ([]valuation.Possession, error) {
	query := `SELECT ` + possessionColumns + ` FROM possession ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query possession table: %w", err)
	}
	defer rows.Close()

	possessions := []valuation.Possession{}

	for rows.Next() {
		p, err := r.scanPossession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan possession table results: %w", err)
		}

		// Owners may be encrypted, so the owner filter cannot run in SQL.
		if filter.Owner != "" && p.Owner != filter.Owner {
			continue
		}

		possessions = append(possessions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating possession table: %w", err)
	}

	return possessions, nil
}

// GetPossession retrieves the possession with the given label.
func (r *PossessionRepository) GetPossession(ctx context.Context, label string) (valuation.Possession, error) {
	query := `SELECT ` + possessionColumns + ` FROM possession WHERE label = ?`

	p, err := r.scanPossession(r.db.QueryRowContext(ctx, query, label))
	if errors.Is(err, sql.ErrNoRows) {
		return valuation.Possession{}, apperrors.ErrPossessionNotFound
	}
	if err != nil {
		return valuation.Possession{}, fmt.Errorf("failed to query possession: %w", err)
	}

	return p, nil
}

// InsertPossession stores a new possession. Returns apperrors.ErrDuplicateLabel when
// the label is already taken.
func (r *PossessionRepository) InsertPossession(ctx context.Context, p valuation.Possession) error {
	owner, err := r.cipher.Seal(p.Owner)
	if err != nil {
		return err
	}

	var constant any
	if p.ConstantPerPeriodValue.Valid {
		constant = p.ConstantPerPeriodValue.Decimal.String()
	}

	query := `
		INSERT INTO possession (` + possessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		p.Label,
		owner,
		p.InitialValue.String(),
		p.StartDate.String(),
		nullableDate(p.EndDate),
		p.DepreciationRatePercent.String(),
		constant,
		p.UsesDayCount,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateLabel
		}
		return fmt.Errorf("failed to insert possession: %w", err)
	}

	return nil
}

// UpdateEndDate sets or overwrites the end date of a possession.
func (r *PossessionRepository) UpdateEndDate(ctx context.Context, label string, end valuation.Date) error {
	query := `UPDATE possession SET end_date = ? WHERE label = ?`

	result, err := r.db.ExecContext(ctx, query, nullableDate(end), label)
	if err != nil {
		return fmt.Errorf("failed to update possession end date: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrPossessionNotFound
	}

	return nil
}

// DeletePossession removes a possession.
func (r *PossessionRepository) DeletePossession(ctx context.Context, label string) error {
	query := `DELETE FROM possession WHERE label = ?`

	result, err := r.db.ExecContext(ctx, query, label)
	if err != nil {
		return fmt.Errorf("failed to delete possession: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrPossessionNotFound
	}

	return nil
}
