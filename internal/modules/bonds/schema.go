package bonds

import "database/sql"

// BondsSchema defines the bond catalogue table.
const BondsSchema = `
CREATE TABLE IF NOT EXISTS bonds (
    id INTEGER PRIMARY KEY,
    symbol TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    face_value REAL NOT NULL,
    coupon_rate REAL NOT NULL,
    market_price REAL NOT NULL,
    remaining_years INTEGER NOT NULL,
    payment_frequency INTEGER NOT NULL,
    required_yield REAL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bonds_symbol ON bonds(symbol);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(BondsSchema)
	return err
}
