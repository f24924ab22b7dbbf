package analysis

import (
	"sort"

	"market-pulse/src/analysis/core"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// Aggregator builds sorted observation buckets out of the quote sources.
// Equity fetches are sequential in watchlist order; the crypto watchlist is
// resolved by a single batched call.
type Aggregator struct {
	Bars   interfaces.IBarSource
	Spot   interfaces.ISpotSource
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAggregator(cfg *models.MConfig, bars interfaces.IBarSource, spot interfaces.ISpotSource) *Aggregator {
	return &Aggregator{
		Bars:   bars,
		Spot:   spot,
		Logger: logger.NewLogger(cfg.LogLevel, "Aggregator"),
	}
}

// -----------------------------------------------------------------------------

// BuildBucket fetches one bar per watchlist entry, derives the change, and
// returns the bucket sorted descending by change. Any single failed symbol
// fails the whole bucket; partial buckets are never produced.
func (a *Aggregator) BuildBucket(name string, watch []models.MSymbolConfig) (models.MBucket, error) {
	observations := make([]models.MPriceObservation, 0, len(watch))

	for _, entry := range watch {
		bar, err := a.Bars.LastBar(entry.Symbol)
		if err != nil {
			return models.MBucket{}, err
		}

		observations = append(observations, models.MPriceObservation{
			Symbol:         entry.Symbol,
			Label:          entry.Label,
			ReferencePrice: bar.Open,
			CurrentPrice:   bar.Close,
			ChangePct:      core.ChangePercent(bar.Open, bar.Close),
			AsOf:           bar.Date,
		})
	}

	SortByChange(observations)
	a.Logger.Debug("Built bucket '%s' with %d observations", name, len(observations))

	return models.MBucket{Name: name, Observations: observations}, nil
}

// -----------------------------------------------------------------------------

// BuildCryptoBucket resolves the crypto watchlist with one batch call. The
// provider's 24h change is taken verbatim; ReferencePrice stays zero.
func (a *Aggregator) BuildCryptoBucket(name string, watch []models.MCryptoConfig) (models.MBucket, error) {
	ids := make([]string, 0, len(watch))
	for _, entry := range watch {
		ids = append(ids, entry.ID)
	}

	quotes, err := a.Spot.SpotPrices(ids)
	if err != nil {
		return models.MBucket{}, err
	}

	observations := make([]models.MPriceObservation, 0, len(watch))
	for _, entry := range watch {
		q := quotes[entry.ID]
		observations = append(observations, models.MPriceObservation{
			Symbol:       entry.ID,
			Label:        entry.Label,
			CurrentPrice: q.Price,
			ChangePct:    q.ChangePct24h,
		})
	}

	SortByChange(observations)
	a.Logger.Debug("Built crypto bucket '%s' with %d observations", name, len(observations))

	return models.MBucket{Name: name, Observations: observations}, nil
}

// -----------------------------------------------------------------------------

// BuildObservation fetches a single daily-bar instrument (the gold proxy).
func (a *Aggregator) BuildObservation(symbol, label string) (models.MPriceObservation, error) {
	bar, err := a.Bars.LastBar(symbol)
	if err != nil {
		return models.MPriceObservation{}, err
	}

	return models.MPriceObservation{
		Symbol:         symbol,
		Label:          label,
		ReferencePrice: bar.Open,
		CurrentPrice:   bar.Close,
		ChangePct:      core.ChangePercent(bar.Open, bar.Close),
		AsOf:           bar.Date,
	}, nil
}

// -----------------------------------------------------------------------------

// SortByChange sorts observations descending by change. The sort is stable so
// equal changes keep their watchlist order.
func SortByChange(observations []models.MPriceObservation) {
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].ChangePct > observations[j].ChangePct
	})
}

// -----------------------------------------------------------------------------

// TopN returns the first n observations of a sorted bucket.
func TopN(bucket models.MBucket, n int) []models.MPriceObservation {
	if n > len(bucket.Observations) {
		n = len(bucket.Observations)
	}
	return bucket.Observations[:n]
}

// -----------------------------------------------------------------------------

// BottomN takes the last n observations of a sorted bucket and re-orders them
// ascending, so the worst performer leads the slice.
func BottomN(bucket models.MBucket, n int) []models.MPriceObservation {
	if n > len(bucket.Observations) {
		n = len(bucket.Observations)
	}

	tail := bucket.Observations[len(bucket.Observations)-n:]
	out := make([]models.MPriceObservation, n)
	for i, obs := range tail {
		out[n-1-i] = obs
	}
	return out
}

// -----------------------------------------------------------------------------

// CorePulse computes the market pulse over the designated core buckets.
func CorePulse(buckets ...models.MBucket) core.MarketPulse {
	var changes []float64
	for _, b := range buckets {
		for _, obs := range b.Observations {
			changes = append(changes, obs.ChangePct)
		}
	}
	return core.Pulse(changes)
}
