package briefing

import (
	"fmt"
	"time"

	"market-pulse/src/analysis"
	"market-pulse/src/analysis/core"
	"market-pulse/src/logger"
	"market-pulse/src/models"
	"market-pulse/src/render"
	"market-pulse/src/session"
)

// Diff fence wrapped around every section body. The '+'/'-' row markers the
// renderer emits drive the green/red coloring on the delivery surface.
const (
	fenceOpen  = "```diff\n"
	fenceClose = "\n```"
)

// Assembler turns observation buckets into finished report panels. All string
// work happens here; the delivery layer ships panels verbatim.
type Assembler struct {
	Config *models.MConfig
	Gate   *session.Gate
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAssembler(cfg *models.MConfig, gate *session.Gate) *Assembler {
	return &Assembler{
		Config: cfg,
		Gate:   gate,
		Logger: logger.NewLogger(cfg.LogLevel, "Assembler"),
	}
}

// -----------------------------------------------------------------------------

// BuildDashboard assembles the main market dashboard panel.
func (a *Assembler) BuildDashboard(now time.Time,
	mag7, etfs, smallCaps, crypto models.MBucket,
	gold models.MPriceObservation, pulse core.MarketPulse) models.MReportPanel {

	topN := a.Config.Report.TopN

	smallCapSlice := render.RenderTable(analysis.TopN(smallCaps, topN), render.PolicyCents, true) +
		"\n" + render.DividerLine + "\n" +
		render.RenderTable(analysis.BottomN(smallCaps, topN), render.PolicyCents, true)

	sections := []models.MPanelSection{
		a.section("MAG 7", render.RenderTable(mag7.Observations, render.PolicyCents, true)),
		a.section("ETF / INDICES", render.RenderTable(etfs.Observations, render.PolicyCents, false)),
		a.section(fmt.Sprintf("SMALL CAP TOP %d / BOTTOM %d", topN, topN), smallCapSlice),
		a.section("CRYPTO (24h)", render.RenderTable(crypto.Observations, render.PolicyWhole, false)),
		a.section("GOLD", render.RenderTable([]models.MPriceObservation{gold}, render.PolicyCents, false)),
	}

	description := fmt.Sprintf("🕒 %s\nBreadth %d▲ / %d▼  ·  Heat %+.2f%%  ·  %s",
		a.Gate.LocalTimeString(now),
		pulse.Advancers, pulse.Decliners, pulse.Heat, pulse.Mood)

	return models.MReportPanel{
		Title:       "📊 US MARKETS DASHBOARD",
		Description: description,
		Color:       a.Config.Report.DashboardColor,
		Sections:    sections,
		FooterNote:  a.footer(now),
		GeneratedAt: now,
	}
}

// -----------------------------------------------------------------------------

// BuildSmallCapTape assembles the full small-cap board, every symbol in sorted
// order, no top/bottom slicing.
func (a *Assembler) BuildSmallCapTape(now time.Time, smallCaps models.MBucket) models.MReportPanel {
	return models.MReportPanel{
		Title:       "🧪 SMALL CAP FULL BOARD",
		Description: fmt.Sprintf("🕒 %s", a.Gate.LocalTimeString(now)),
		Color:       a.Config.Report.TapeColor,
		Sections: []models.MPanelSection{
			a.section("ALL SMALL CAPS", render.RenderTable(smallCaps.Observations, render.PolicyCents, true)),
		},
		FooterNote:  a.footer(now),
		GeneratedAt: now,
	}
}

// -----------------------------------------------------------------------------

// BuildWeekendCrypto assembles the weekend panel. Crypto trades through the
// weekend, so this is the only content delivered on Saturday and Sunday.
func (a *Assembler) BuildWeekendCrypto(now time.Time, crypto models.MBucket) models.MReportPanel {
	return models.MReportPanel{
		Title:       "🪙 WEEKEND CRYPTO CHECK",
		Description: fmt.Sprintf("🕒 %s", a.Gate.LocalTimeString(now)),
		Color:       a.Config.Report.WeekendColor,
		Sections: []models.MPanelSection{
			a.section("CRYPTO (24h)", render.RenderTable(crypto.Observations, render.PolicyWhole, false)),
		},
		FooterNote:  a.footer(now),
		GeneratedAt: now,
	}
}

// -----------------------------------------------------------------------------

// section caps the table text so the fenced body never exceeds the configured
// section limit, then wraps it in the diff fence.
func (a *Assembler) section(heading, table string) models.MPanelSection {
	budget := a.Config.Report.SectionLimit - len(fenceOpen) - len(fenceClose)
	return models.MPanelSection{
		Heading: heading,
		Body:    fenceOpen + render.Truncate(table, budget) + fenceClose,
	}
}

// -----------------------------------------------------------------------------

func (a *Assembler) footer(now time.Time) string {
	if note := a.Gate.Annotation(now); note != "" {
		return fmt.Sprintf("%s · %s", a.Config.Name, note)
	}
	return a.Config.Name
}
