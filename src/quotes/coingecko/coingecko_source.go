package coingecko

import (
	"encoding/json"
	"fmt"
	"strings"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// Source fetches spot prices with 24h change from the CoinGecko simple-price
// endpoint. The whole crypto watchlist is served by a single round trip; the
// pipeline must never fall back to per-asset calls.
type Source struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *Source {
	return &Source{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "CoingeckoSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *Source) Name() string {
	return "coingecko"
}

// -----------------------------------------------------------------------------

// SpotPrices fetches current price and 24h change for all ids in one call.
// Response shape: {"bitcoin": {"usd": 60000.1, "usd_24h_change": -1.2}, ...}
func (s *Source) SpotPrices(ids []string) (map[string]models.MSpotQuote, error) {
	vs := s.Config.Sources.Coingecko.VsCurrency

	params := map[string]string{
		"ids":                 strings.Join(ids, ","),
		"vs_currencies":       vs,
		"include_24hr_change": "true",
	}

	body, err := s.Network.Get(s.Config.Sources.Coingecko.BaseURL, params)
	if err != nil {
		return nil, helpers.NewUpstreamTransportError("coingecko request failed", err)
	}

	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, helpers.NewUpstreamDataError("coingecko response unmarshal failed", err)
	}

	quotes := make(map[string]models.MSpotQuote, len(ids))
	for _, id := range ids {
		entry, ok := raw[id]
		if !ok {
			return nil, helpers.NewUpstreamDataError(
				fmt.Sprintf("coingecko response missing asset '%s'", id), nil)
		}

		price, ok := entry[vs]
		if !ok {
			return nil, helpers.NewUpstreamDataError(
				fmt.Sprintf("coingecko response missing %s price for '%s'", vs, id), nil)
		}

		// 24h change may be absent for thin assets; the provider-supplied
		// delta is used verbatim, defaulting to zero.
		quotes[id] = models.MSpotQuote{
			Price:        price,
			ChangePct24h: entry[vs+"_24h_change"],
		}
	}

	s.Logger.Debug("Fetched %d crypto quotes in one batch", len(quotes))
	return quotes, nil
}
