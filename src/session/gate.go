package session

import (
	"time"

	"github.com/scmhub/calendar"

	"market-pulse/src/helpers"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// Session window bounds in seconds-of-day, local exchange time. Both ends are
// inclusive: 16:00:00 exactly still counts as the open session, 16:00:01 does
// not. Intentional; do not "fix" to a half-open window.
const (
	openSecond  = 9*3600 + 30*60
	closeSecond = 16 * 3600
)

// Gate classifies wall-clock time into a session mode. Pure function of the
// injected time; no state is kept between invocations.
type Gate struct {
	Location        *time.Location
	RespectHolidays bool
	Calendar        *calendar.Calendar
	Logger          *logger.Logger
}

// -----------------------------------------------------------------------------

// NewGate builds a gate for the configured exchange time zone. The XNYS
// calendar (scmhub/calendar, ISO 10383 MIC) backs holiday annotations and,
// when respect_holidays is set, holiday gating.
func NewGate(cfg *models.MConfig) (*Gate, error) {
	loc, err := time.LoadLocation(cfg.Session.Timezone)
	if err != nil {
		return nil, helpers.NewConfigurationError("invalid session timezone '%s': %v", cfg.Session.Timezone, err)
	}

	log := logger.NewLogger(cfg.LogLevel, "SessionGate")

	cal := calendar.GetCalendar("xnys")
	if cal == nil {
		log.Warning("XNYS calendar unavailable; holiday awareness disabled")
	}

	return &Gate{
		Location:        loc,
		RespectHolidays: cfg.Session.RespectHolidays,
		Calendar:        cal,
		Logger:          log,
	}, nil
}

// -----------------------------------------------------------------------------

// Evaluate returns the session mode for time t.
func (g *Gate) Evaluate(t time.Time) models.SessionMode {
	local := t.In(g.Location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return models.WeekendCrypto
	}

	if g.RespectHolidays && g.Calendar != nil && !g.Calendar.IsBusinessDay(local) {
		return models.MarketClosed
	}

	sod := local.Hour()*3600 + local.Minute()*60 + local.Second()
	if sod >= openSecond && sod <= closeSecond {
		return models.MarketOpen
	}

	return models.MarketClosed
}

// -----------------------------------------------------------------------------

// Annotation returns a human-readable session note for the panel footer, or
// the empty string on a plain trading day.
func (g *Gate) Annotation(t time.Time) string {
	local := t.In(g.Location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return "weekend session"
	}

	if g.Calendar != nil && !g.Calendar.IsBusinessDay(local) {
		return "NYSE holiday (cash session closed)"
	}

	return ""
}

// -----------------------------------------------------------------------------

// LocalTimeString formats t in the exchange time zone for panel descriptions.
func (g *Gate) LocalTimeString(t time.Time) string {
	return t.In(g.Location).Format("2006-01-02 15:04 (MST)")
}
