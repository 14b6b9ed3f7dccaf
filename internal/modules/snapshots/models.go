package snapshots

import "time"

// Snapshot is one day's valuation record for a catalogued bond.
type Snapshot struct {
	ID     int    `json:"id,omitempty"`
	Symbol string `json:"symbol"`
	// Date is the valuation date, YYYY-MM-DD.
	Date string `json:"date"`

	MarketPrice      float64 `json:"market_price"`
	YTM              float64 `json:"ytm"`
	YTMConverged     bool    `json:"ytm_converged"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
	CurrentYield     float64 `json:"current_yield"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// HistoryStats summarizes a bond's snapshot history.
type HistoryStats struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`

	YTMMean   float64 `json:"ytm_mean"`
	YTMStdDev float64 `json:"ytm_std_dev"`
	YTMMin    float64 `json:"ytm_min"`
	YTMMax    float64 `json:"ytm_max"`
	YTMChange float64 `json:"ytm_change"`

	PriceMean   float64 `json:"price_mean"`
	PriceStdDev float64 `json:"price_std_dev"`
	PriceMin    float64 `json:"price_min"`
	PriceMax    float64 `json:"price_max"`
	PriceChange float64 `json:"price_change"`
}
