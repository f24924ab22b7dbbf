package analysis

import (
	"errors"
	"testing"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type fakeBarSource struct {
	bars  map[string]models.MDailyBar
	calls []string
	err   error
}

func (f *fakeBarSource) Name() string { return "fake" }

func (f *fakeBarSource) LastBar(symbol string) (models.MDailyBar, error) {
	f.calls = append(f.calls, symbol)
	if f.err != nil {
		return models.MDailyBar{}, f.err
	}
	bar, ok := f.bars[symbol]
	if !ok {
		return models.MDailyBar{}, errors.New("unknown symbol " + symbol)
	}
	return bar, nil
}

type fakeSpotSource struct {
	quotes    map[string]models.MSpotQuote
	batchArgs [][]string
	err       error
}

func (f *fakeSpotSource) Name() string { return "fake" }

func (f *fakeSpotSource) SpotPrices(ids []string) (map[string]models.MSpotQuote, error) {
	f.batchArgs = append(f.batchArgs, ids)
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func testConfig() *models.MConfig {
	return &models.MConfig{LogLevel: "ERROR"}
}

// -----------------------------------------------------------------------------
// Bucket construction
// -----------------------------------------------------------------------------

func TestBuildBucketSortedDescending(t *testing.T) {
	bars := &fakeBarSource{bars: map[string]models.MDailyBar{
		"AAPL": {Date: "2026-08-27", Open: 100, Close: 110},
		"MSFT": {Date: "2026-08-27", Open: 100, Close: 95},
		"NVDA": {Date: "2026-08-27", Open: 100, Close: 105},
	}}
	agg := NewAggregator(testConfig(), bars, nil)

	watch := []models.MSymbolConfig{
		{Symbol: "AAPL", Label: "AAPL"},
		{Symbol: "MSFT", Label: "MSFT"},
		{Symbol: "NVDA", Label: "NVDA"},
	}

	bucket, err := agg.BuildBucket("test", watch)
	if err != nil {
		t.Fatalf("BuildBucket failed: %v", err)
	}

	want := []string{"AAPL", "NVDA", "MSFT"}
	for i, sym := range want {
		if bucket.Observations[i].Symbol != sym {
			t.Errorf("position %d = %s, want %s", i, bucket.Observations[i].Symbol, sym)
		}
	}

	// Fetches happen in watchlist order, one per symbol
	if len(bars.calls) != 3 || bars.calls[0] != "AAPL" || bars.calls[2] != "NVDA" {
		t.Errorf("fetch order = %v", bars.calls)
	}
}

func TestBuildBucketFailsWhole(t *testing.T) {
	bars := &fakeBarSource{bars: map[string]models.MDailyBar{
		"AAPL": {Open: 100, Close: 110},
	}}
	agg := NewAggregator(testConfig(), bars, nil)

	watch := []models.MSymbolConfig{
		{Symbol: "AAPL", Label: "AAPL"},
		{Symbol: "MISSING", Label: "MISSING"},
	}

	_, err := agg.BuildBucket("test", watch)
	if err == nil {
		t.Fatal("expected error for failed symbol, got nil")
	}
}

func TestBuildCryptoBucketSingleBatch(t *testing.T) {
	spot := &fakeSpotSource{quotes: map[string]models.MSpotQuote{
		"bitcoin":  {Price: 60000, ChangePct24h: -1.2},
		"ethereum": {Price: 3000, ChangePct24h: 2.5},
	}}
	agg := NewAggregator(testConfig(), nil, spot)

	watch := []models.MCryptoConfig{
		{ID: "bitcoin", Label: "BTC"},
		{ID: "ethereum", Label: "ETH"},
	}

	bucket, err := agg.BuildCryptoBucket("crypto", watch)
	if err != nil {
		t.Fatalf("BuildCryptoBucket failed: %v", err)
	}

	if len(spot.batchArgs) != 1 {
		t.Fatalf("expected exactly one batch call, got %d", len(spot.batchArgs))
	}
	if len(spot.batchArgs[0]) != 2 {
		t.Errorf("batch ids = %v, want both assets", spot.batchArgs[0])
	}

	// ETH (+2.5) sorts above BTC (-1.2)
	if bucket.Observations[0].Label != "ETH" {
		t.Errorf("first observation = %s, want ETH", bucket.Observations[0].Label)
	}
	if bucket.Observations[0].ReferencePrice != 0 {
		t.Errorf("crypto reference price = %v, want 0", bucket.Observations[0].ReferencePrice)
	}
}

// -----------------------------------------------------------------------------
// Sorting and slicing
// -----------------------------------------------------------------------------

func TestSortByChangeStable(t *testing.T) {
	obs := []models.MPriceObservation{
		{Symbol: "A", ChangePct: 2},
		{Symbol: "B", ChangePct: 2},
		{Symbol: "C", ChangePct: 5},
	}

	SortByChange(obs)

	want := []string{"C", "A", "B"}
	for i, sym := range want {
		if obs[i].Symbol != sym {
			t.Errorf("position %d = %s, want %s (ties keep input order)", i, obs[i].Symbol, sym)
		}
	}
}

func TestBottomNWorstFirst(t *testing.T) {
	bucket := models.MBucket{Observations: []models.MPriceObservation{
		{Symbol: "A", ChangePct: 5},
		{Symbol: "B", ChangePct: 2},
		{Symbol: "C", ChangePct: 0},
		{Symbol: "D", ChangePct: -3},
		{Symbol: "E", ChangePct: -6},
	}}

	bottom := BottomN(bucket, 2)
	if len(bottom) != 2 {
		t.Fatalf("len = %d, want 2", len(bottom))
	}
	if bottom[0].Symbol != "E" || bottom[1].Symbol != "D" {
		t.Errorf("bottom = [%s %s], want [E D]", bottom[0].Symbol, bottom[1].Symbol)
	}
}

func TestTopBottomNClamp(t *testing.T) {
	bucket := models.MBucket{Observations: []models.MPriceObservation{
		{Symbol: "A", ChangePct: 1},
		{Symbol: "B", ChangePct: -1},
	}}

	if got := TopN(bucket, 5); len(got) != 2 {
		t.Errorf("TopN clamp len = %d, want 2", len(got))
	}
	if got := BottomN(bucket, 5); len(got) != 2 {
		t.Errorf("BottomN clamp len = %d, want 2", len(got))
	}
}

func TestCorePulseFlattensBuckets(t *testing.T) {
	b1 := models.MBucket{Observations: []models.MPriceObservation{{ChangePct: 4}}}
	b2 := models.MBucket{Observations: []models.MPriceObservation{{ChangePct: -2}, {ChangePct: 1}}}

	p := CorePulse(b1, b2)
	if p.Advancers != 2 || p.Decliners != 1 {
		t.Errorf("breadth = %d/%d, want 2/1", p.Advancers, p.Decliners)
	}
	if p.Heat != 1.0 {
		t.Errorf("heat = %v, want 1.0", p.Heat)
	}
}
