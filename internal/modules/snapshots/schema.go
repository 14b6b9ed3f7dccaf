package snapshots

import "database/sql"

// SnapshotsSchema defines the valuation history table. One row per bond per
// valuation date; re-running a day replaces the row.
const SnapshotsSchema = `
CREATE TABLE IF NOT EXISTS valuation_snapshots (
    id INTEGER PRIMARY KEY,
    symbol TEXT NOT NULL,
    date TEXT NOT NULL,
    market_price REAL NOT NULL,
    ytm REAL NOT NULL,
    ytm_converged INTEGER NOT NULL,
    macaulay_duration REAL NOT NULL,
    modified_duration REAL NOT NULL,
    convexity REAL NOT NULL,
    current_yield REAL NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(symbol, date)
);

CREATE INDEX IF NOT EXISTS idx_valuation_snapshots_symbol ON valuation_snapshots(symbol, date);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SnapshotsSchema)
	return err
}
