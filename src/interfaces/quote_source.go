package interfaces

import "market-pulse/src/models"

// -----------------------------------------------------------------------------
// Quote source contracts. Two upstream shapes exist: a per-symbol daily-bar
// feed and a batched spot-price feed.
// -----------------------------------------------------------------------------

type IBarSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// LastBar fetches the daily-bar history for one symbol and returns the
	// last trading day's bar. One outbound request per call.
	LastBar(symbol string) (models.MDailyBar, error)
}

// -----------------------------------------------------------------------------

type ISpotSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// SpotPrices fetches current price and 24h change for all requested asset
	// ids in exactly one outbound request. Every requested id must be present
	// in the result; a missing id is an upstream data error.
	SpotPrices(ids []string) (map[string]models.MSpotQuote, error)
}
