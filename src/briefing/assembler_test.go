package briefing

import (
	"strings"
	"testing"
	"time"

	"market-pulse/src/analysis/core"
	"market-pulse/src/models"
	"market-pulse/src/session"
)

// -----------------------------------------------------------------------------

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	cfg := serviceConfig()
	gate, err := session.NewGate(cfg)
	if err != nil {
		t.Fatalf("NewGate failed: %v", err)
	}
	return NewAssembler(cfg, gate)
}

func obs(label string, price, change float64) models.MPriceObservation {
	return models.MPriceObservation{Label: label, CurrentPrice: price, ChangePct: change}
}

func tuesdayNoon(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	return time.Date(2026, 8, 25, 12, 0, 0, 0, loc)
}

// -----------------------------------------------------------------------------

func TestBuildDashboardSections(t *testing.T) {
	a := newTestAssembler(t)

	mag7 := models.MBucket{Observations: []models.MPriceObservation{obs("AAPL", 110, 10), obs("MSFT", 95, -5)}}
	etfs := models.MBucket{Observations: []models.MPriceObservation{obs("VOO (S&P500)", 520, 0.4)}}
	small := models.MBucket{Observations: []models.MPriceObservation{
		obs("IREN", 12, 8), obs("RKLB", 30, 2), obs("ASTS", 25, -1),
		obs("LUNR", 9, -3), obs("RDW", 7, -4), obs("QBTS", 3, -9),
	}}
	crypto := models.MBucket{Observations: []models.MPriceObservation{obs("BTC", 60000, 1.5)}}
	gold := obs("GOLD", 3300.5, 0.2)

	panel := a.BuildDashboard(tuesdayNoon(t), mag7, etfs, small, crypto, gold, core.Pulse([]float64{10, -5, 0.4}))

	if panel.Title != "📊 US MARKETS DASHBOARD" {
		t.Errorf("title = %q", panel.Title)
	}
	if panel.Color != 3447003 {
		t.Errorf("color = %d", panel.Color)
	}

	headings := make([]string, 0, len(panel.Sections))
	for _, s := range panel.Sections {
		headings = append(headings, s.Heading)
	}
	want := []string{"MAG 7", "ETF / INDICES", "SMALL CAP TOP 5 / BOTTOM 5", "CRYPTO (24h)", "GOLD"}
	if len(headings) != len(want) {
		t.Fatalf("headings = %v", headings)
	}
	for i := range want {
		if headings[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, headings[i], want[i])
		}
	}

	// Every section body is diff-fenced
	for _, s := range panel.Sections {
		if !strings.HasPrefix(s.Body, "```diff\n") || !strings.HasSuffix(s.Body, "\n```") {
			t.Errorf("section %q body not fenced: %q", s.Heading, s.Body[:20])
		}
	}

	// Split section carries the divider between top and bottom slices
	if !strings.Contains(panel.Sections[2].Body, "\n---\n") {
		t.Errorf("small cap section missing divider:\n%s", panel.Sections[2].Body)
	}

	// Description carries local time and pulse summary
	if !strings.Contains(panel.Description, "🕒 2026-08-25 12:00 (EDT)") {
		t.Errorf("description = %q", panel.Description)
	}
	if !strings.Contains(panel.Description, "2▲ / 1▼") || !strings.Contains(panel.Description, "RISK-ON") {
		t.Errorf("description = %q", panel.Description)
	}

	if panel.FooterNote != "market-pulse" {
		t.Errorf("footer = %q", panel.FooterNote)
	}
}

func TestBuildDashboardEmptyBucketPlaceholder(t *testing.T) {
	a := newTestAssembler(t)
	empty := models.MBucket{}

	panel := a.BuildDashboard(tuesdayNoon(t), empty, empty, empty, empty,
		models.MPriceObservation{Label: "GOLD"}, core.Pulse(nil))

	if !strings.Contains(panel.Sections[0].Body, "  no data") {
		t.Errorf("empty section body = %q, want placeholder", panel.Sections[0].Body)
	}
}

// -----------------------------------------------------------------------------

func TestSectionTruncationBudget(t *testing.T) {
	a := newTestAssembler(t)
	a.Config.Report.SectionLimit = 100

	long := strings.Repeat("x", 500)
	sec := a.section("BIG", long)

	// Fenced body never exceeds the configured limit
	if len(sec.Body) > 100 {
		t.Errorf("fenced body length = %d, want <= 100", len(sec.Body))
	}
	if !strings.Contains(sec.Body, "...") {
		t.Error("truncated body missing ellipsis")
	}
	if !strings.HasPrefix(sec.Body, "```diff\n") || !strings.HasSuffix(sec.Body, "\n```") {
		t.Error("fence broken by truncation")
	}
}

func TestSectionMinimumAcceptedLimit(t *testing.T) {
	// The smallest section_limit that passes validation must still render:
	// the whole budget goes to the ellipsis and the fence, never a panic.
	a := newTestAssembler(t)
	a.Config.Report.SectionLimit = 16

	sec := a.section("TINY", "+ AAPL  110.00  +10.00%")
	if len(sec.Body) > 16 {
		t.Errorf("fenced body length = %d, want <= 16", len(sec.Body))
	}
	if !strings.HasPrefix(sec.Body, "```diff\n") || !strings.HasSuffix(sec.Body, "\n```") {
		t.Errorf("fence broken: %q", sec.Body)
	}
}

func TestSectionShortBodyUntouched(t *testing.T) {
	a := newTestAssembler(t)
	sec := a.section("SMALL", "+ AAPL  110.00  +10.00%")
	if sec.Body != "```diff\n+ AAPL  110.00  +10.00%\n```" {
		t.Errorf("body = %q", sec.Body)
	}
}

// -----------------------------------------------------------------------------

func TestBuildWeekendCrypto(t *testing.T) {
	a := newTestAssembler(t)
	crypto := models.MBucket{Observations: []models.MPriceObservation{obs("BTC", 60123, -1.2)}}

	// Saturday
	loc, _ := time.LoadLocation("America/New_York")
	sat := time.Date(2026, 8, 29, 12, 0, 0, 0, loc)

	panel := a.BuildWeekendCrypto(sat, crypto)
	if panel.Color != 10181046 {
		t.Errorf("color = %d, want weekend color", panel.Color)
	}
	if len(panel.Sections) != 1 || panel.Sections[0].Heading != "CRYPTO (24h)" {
		t.Errorf("sections = %+v", panel.Sections)
	}

	// Weekend annotation lands in the footer
	if !strings.Contains(panel.FooterNote, "weekend session") {
		t.Errorf("footer = %q", panel.FooterNote)
	}

	// Whole-number crypto prices
	if !strings.Contains(panel.Sections[0].Body, "60,123") {
		t.Errorf("body = %q", panel.Sections[0].Body)
	}
}

func TestBuildSmallCapTape(t *testing.T) {
	a := newTestAssembler(t)
	small := models.MBucket{Observations: []models.MPriceObservation{
		obs("IREN", 12, 8), obs("RKLB", 30, -2),
	}}

	panel := a.BuildSmallCapTape(tuesdayNoon(t), small)
	if panel.Title != "🧪 SMALL CAP FULL BOARD" {
		t.Errorf("title = %q", panel.Title)
	}
	if panel.Color != 15844367 {
		t.Errorf("color = %d", panel.Color)
	}

	body := panel.Sections[0].Body
	if !strings.Contains(body, "IREN") || !strings.Contains(body, "RKLB") {
		t.Errorf("tape body missing symbols:\n%s", body)
	}
	// Severity tags are on for the tape
	if !strings.Contains(body, "HOT") {
		t.Errorf("tape body missing severity tag:\n%s", body)
	}
}
