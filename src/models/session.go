package models

// SessionMode is the three-way classification of the current wall-clock time.
// Recomputed on every invocation, never persisted.
type SessionMode int

const (
	MarketClosed SessionMode = iota
	MarketOpen
	WeekendCrypto
)

func (m SessionMode) String() string {
	switch m {
	case MarketOpen:
		return "market_open"
	case WeekendCrypto:
		return "weekend_crypto"
	default:
		return "market_closed"
	}
}
