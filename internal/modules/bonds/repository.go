package bonds

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const timeLayout = "2006-01-02 15:04:05"

// Repository handles bond catalogue persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new bond repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "bonds").Logger(),
	}
}

// Create inserts a new bond
func (r *Repository) Create(b *Bond) (*Bond, error) {
	query := `
		INSERT INTO bonds (
			symbol, name, face_value, coupon_rate, market_price,
			remaining_years, payment_frequency, required_yield, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().Format(timeLayout)

	result, err := r.db.Exec(
		query,
		b.Symbol,
		b.Name,
		b.FaceValue,
		b.CouponRate,
		b.MarketPrice,
		b.RemainingYears,
		b.PaymentFrequency,
		b.RequiredYield,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bond: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	b.ID = int(id)
	b.CreatedAt, _ = time.Parse(timeLayout, now)
	b.UpdatedAt = b.CreatedAt

	return b, nil
}

// GetBySymbol retrieves a bond by symbol. Returns nil when not found.
func (r *Repository) GetBySymbol(symbol string) (*Bond, error) {
	query := `
		SELECT id, symbol, name, face_value, coupon_rate, market_price,
		       remaining_years, payment_frequency, required_yield, created_at, updated_at
		FROM bonds
		WHERE symbol = ?
	`

	var b Bond
	var createdAt, updatedAt string

	err := r.db.QueryRow(query, symbol).Scan(
		&b.ID,
		&b.Symbol,
		&b.Name,
		&b.FaceValue,
		&b.CouponRate,
		&b.MarketPrice,
		&b.RemainingYears,
		&b.PaymentFrequency,
		&b.RequiredYield,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bond: %w", err)
	}

	b.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	b.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &b, nil
}

// GetAll retrieves all bonds ordered by symbol
func (r *Repository) GetAll() ([]Bond, error) {
	query := `
		SELECT id, symbol, name, face_value, coupon_rate, market_price,
		       remaining_years, payment_frequency, required_yield, created_at, updated_at
		FROM bonds
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonds: %w", err)
	}
	defer rows.Close()

	var bonds []Bond
	for rows.Next() {
		var b Bond
		var createdAt, updatedAt string

		if err := rows.Scan(
			&b.ID,
			&b.Symbol,
			&b.Name,
			&b.FaceValue,
			&b.CouponRate,
			&b.MarketPrice,
			&b.RemainingYears,
			&b.PaymentFrequency,
			&b.RequiredYield,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bond: %w", err)
		}

		b.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		b.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
		bonds = append(bonds, b)
	}

	return bonds, rows.Err()
}

// UpdatePrice sets a new observed market price
func (r *Repository) UpdatePrice(symbol string, marketPrice float64) error {
	now := time.Now().Format(timeLayout)

	result, err := r.db.Exec(
		"UPDATE bonds SET market_price = ?, updated_at = ? WHERE symbol = ?",
		marketPrice, now, symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bond %s not found", symbol)
	}

	return nil
}

// Delete removes a bond from the catalogue
func (r *Repository) Delete(symbol string) error {
	result, err := r.db.Exec("DELETE FROM bonds WHERE symbol = ?", symbol)
	if err != nil {
		return fmt.Errorf("failed to delete bond: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bond %s not found", symbol)
	}

	return nil
}
