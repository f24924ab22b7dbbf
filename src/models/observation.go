package models

// -----------------------------------------------------------------------------
// Normalized quote records. Built fresh on every invocation, never persisted.
// -----------------------------------------------------------------------------

// MPriceObservation is the uniform per-symbol record the pipeline works with.
// ChangePct is derived from ReferencePrice/CurrentPrice, except on the crypto
// path where the provider supplies the 24h change verbatim and ReferencePrice
// stays zero.
type MPriceObservation struct {
	Symbol         string  `json:"symbol"`
	Label          string  `json:"label"`
	ReferencePrice float64 `json:"reference_price"`
	CurrentPrice   float64 `json:"current_price"`
	ChangePct      float64 `json:"change_pct"`
	AsOf           string  `json:"as_of,omitempty"`
}

// MBucket is a named, ordered collection of observations. After aggregation
// the entries are sorted by ChangePct descending (stable; ties keep the
// watchlist order) and never mutated afterward.
type MBucket struct {
	Name         string              `json:"name"`
	Observations []MPriceObservation `json:"observations"`
}

// MDailyBar is the last line of a daily-bar CSV response.
type MDailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// MSpotQuote is one asset out of a batch spot-price response.
type MSpotQuote struct {
	Price        float64 `json:"price"`
	ChangePct24h float64 `json:"change_pct_24h"`
}
