package stooq

import (
	"fmt"
	"strconv"
	"strings"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// Source fetches end-of-day bars from the Stooq CSV export. The feed has no
// batch endpoint, so the pipeline pays one request per symbol.
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
		Logger:  logger.NewLogger(cfg.LogLevel, "StooqSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *Source) Name() string {
	return "stooq"
}

// -----------------------------------------------------------------------------

// LastBar fetches the daily CSV for one symbol and returns the last trading
// day's bar. The response is one line per day, `date,open,high,low,close,volume`,
// last non-blank line authoritative.
func (s *Source) LastBar(symbol string) (models.MDailyBar, error) {
	params := map[string]string{
		"s": strings.ToLower(symbol),
		"i": "d",
	}

	body, err := s.Network.Get(s.Config.Sources.Stooq.BaseURL, params)
	if err != nil {
		return models.MDailyBar{}, helpers.NewUpstreamTransportError(
			fmt.Sprintf("stooq request failed for %s", symbol), err)
	}

	bar, err := parseDailyCSV(symbol, body)
	if err != nil {
		return models.MDailyBar{}, err
	}

	s.Logger.Debug("Fetched %s: %s open=%.4f close=%.4f", symbol, bar.Date, bar.Open, bar.Close)
	return bar, nil
}

// -----------------------------------------------------------------------------

// parseDailyCSV extracts the last bar from a daily CSV payload. The first line
// is the header, so fewer than two non-blank lines means the feed returned no
// usable bar data.
func parseDailyCSV(symbol string, body []byte) (models.MDailyBar, error) {
	var lines []string
	for _, raw := range strings.Split(string(body), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return models.MDailyBar{}, helpers.NewUpstreamDataError(
			fmt.Sprintf("insufficient bar data for %s (%d lines)", symbol, len(lines)), nil)
	}

	fields := strings.Split(lines[len(lines)-1], ",")
	if len(fields) < 6 {
		return models.MDailyBar{}, helpers.NewUpstreamDataError(
			fmt.Sprintf("malformed bar line for %s (%d fields)", symbol, len(fields)), nil)
	}

	open, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.MDailyBar{}, helpers.NewUpstreamDataError(
			fmt.Sprintf("non-numeric open for %s", symbol), err)
	}

	closePx, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return models.MDailyBar{}, helpers.NewUpstreamDataError(
			fmt.Sprintf("non-numeric close for %s", symbol), err)
	}

	// High/low/volume are carried along but nothing downstream requires them;
	// some instruments (metals) publish empty volume columns.
	high, _ := strconv.ParseFloat(fields[2], 64)
	low, _ := strconv.ParseFloat(fields[3], 64)
	volume, _ := strconv.ParseFloat(fields[5], 64)

	return models.MDailyBar{
		Date:   fields[0],
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
		Volume: volume,
	}, nil
}
