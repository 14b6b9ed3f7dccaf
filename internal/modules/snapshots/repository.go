package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const timeLayout = "2006-01-02 15:04:05"

// Repository handles valuation snapshot persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// Create inserts a snapshot, replacing any earlier row for the same bond and
// date
func (r *Repository) Create(s *Snapshot) (*Snapshot, error) {
	query := `
		INSERT OR REPLACE INTO valuation_snapshots (
			symbol, date, market_price, ytm, ytm_converged,
			macaulay_duration, modified_duration, convexity, current_yield, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().Format(timeLayout)

	result, err := r.db.Exec(
		query,
		s.Symbol,
		s.Date,
		s.MarketPrice,
		s.YTM,
		s.YTMConverged,
		s.MacaulayDuration,
		s.ModifiedDuration,
		s.Convexity,
		s.CurrentYield,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	s.ID = int(id)
	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return s, nil
}

// GetBySymbol retrieves snapshots for a bond over the last N days, oldest
// first. days <= 0 returns the full history.
func (r *Repository) GetBySymbol(symbol string, days int) ([]Snapshot, error) {
	query := `
		SELECT id, symbol, date, market_price, ytm, ytm_converged,
		       macaulay_duration, modified_duration, convexity, current_yield, created_at
		FROM valuation_snapshots
		WHERE symbol = ?
	`
	args := []interface{}{symbol}

	if days > 0 {
		cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
		query += " AND date >= ?"
		args = append(args, cutoff)
	}
	query += " ORDER BY date ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return r.scanSnapshots(rows)
}

// Latest retrieves the most recent snapshot for a bond. Returns nil when the
// bond has no history.
func (r *Repository) Latest(symbol string) (*Snapshot, error) {
	query := `
		SELECT id, symbol, date, market_price, ytm, ytm_converged,
		       macaulay_duration, modified_duration, convexity, current_yield, created_at
		FROM valuation_snapshots
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT 1
	`

	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	defer rows.Close()

	snaps, err := r.scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[0], nil
}

// DeleteBySymbol removes a bond's history (used when a bond leaves the
// catalogue)
func (r *Repository) DeleteBySymbol(symbol string) error {
	if _, err := r.db.Exec("DELETE FROM valuation_snapshots WHERE symbol = ?", symbol); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}

func (r *Repository) scanSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		var createdAt string

		if err := rows.Scan(
			&s.ID,
			&s.Symbol,
			&s.Date,
			&s.MarketPrice,
			&s.YTM,
			&s.YTMConverged,
			&s.MacaulayDuration,
			&s.ModifiedDuration,
			&s.Convexity,
			&s.CurrentYield,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
