package briefing

import (
	"sync/atomic"
	"time"

	"market-pulse/src/analysis"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
	"market-pulse/src/session"
)

// Service orchestrates one briefing run: gate, fetch, assemble, deliver,
// journal. A run is all-or-nothing; any upstream failure aborts it before
// anything is delivered.
type Service struct {
	Config     *models.MConfig
	Gate       *session.Gate
	Aggregator *analysis.Aggregator
	Assembler  *Assembler
	Deliverer  interfaces.IDeliverer
	Journal    interfaces.IRunJournal
	Exchanger  interfaces.IBriefingExchanger
	Logger     *logger.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	running atomic.Bool
}

// -----------------------------------------------------------------------------

func NewService(cfg *models.MConfig, gate *session.Gate, agg *analysis.Aggregator,
	deliverer interfaces.IDeliverer, journal interfaces.IRunJournal) *Service {

	return &Service{
		Config:     cfg,
		Gate:       gate,
		Aggregator: agg,
		Assembler:  NewAssembler(cfg, gate),
		Deliverer:  deliverer,
		Journal:    journal,
		Logger:     logger.NewLogger(cfg.LogLevel, "BriefingService"),
		Now:        time.Now,
	}
}

// -----------------------------------------------------------------------------

// Run executes one briefing cycle. Outside any session it is a silent no-op:
// zero upstream requests, zero panels, nil error.
func (s *Service) Run() (models.SessionMode, error) {
	started := s.Now()
	mode := s.Gate.Evaluate(started)

	s.Logger.Info("Run started (mode: %s)", mode)

	panels, err := s.buildPanels(started, mode)
	if err != nil {
		s.Logger.Error("Run failed: %v", err)
		s.journalRun(started, mode, 0, models.RunFailed, err.Error())
		return mode, err
	}

	if len(panels) == 0 {
		s.Logger.Info("Market closed; nothing to deliver")
		s.journalRun(started, mode, 0, models.RunNoop, "")
		return mode, nil
	}

	if err := s.Deliverer.Deliver(panels); err != nil {
		s.Logger.Error("Delivery failed: %v", err)
		s.journalRun(started, mode, len(panels), models.RunFailed, err.Error())
		return mode, err
	}

	s.journalRun(started, mode, len(panels), models.RunDelivered, "")

	if s.Exchanger != nil {
		b := models.MBriefing{Mode: mode.String(), Panels: panels, GeneratedAt: started}
		s.Exchanger.UpdateLatest(b)
		s.Exchanger.Broadcast(b)
	}

	s.Logger.Info("Run delivered (%d panels)", len(panels))
	return mode, nil
}

// -----------------------------------------------------------------------------

// TryRun runs a cycle unless one is already in flight. Used by the HTTP
// trigger endpoint; the scheduled path calls Run through it too, so a slow
// manual trigger cannot overlap a ticker fire.
func (s *Service) TryRun() (models.SessionMode, bool, error) {
	if !s.running.CompareAndSwap(false, true) {
		return models.MarketClosed, false, nil
	}
	defer s.running.Store(false)

	mode, err := s.Run()
	return mode, true, err
}

// -----------------------------------------------------------------------------

func (s *Service) buildPanels(now time.Time, mode models.SessionMode) ([]models.MReportPanel, error) {
	switch mode {
	case models.WeekendCrypto:
		crypto, err := s.Aggregator.BuildCryptoBucket("crypto", s.Config.Watchlist.Crypto)
		if err != nil {
			return nil, err
		}
		return []models.MReportPanel{s.Assembler.BuildWeekendCrypto(now, crypto)}, nil

	case models.MarketOpen:
		mag7, err := s.Aggregator.BuildBucket("mag7", s.Config.Watchlist.MAG7)
		if err != nil {
			return nil, err
		}
		etfs, err := s.Aggregator.BuildBucket("etfs", s.Config.Watchlist.ETFs)
		if err != nil {
			return nil, err
		}
		smallCaps, err := s.Aggregator.BuildBucket("small_caps", s.Config.Watchlist.SmallCaps)
		if err != nil {
			return nil, err
		}
		gold, err := s.Aggregator.BuildObservation(s.Config.Watchlist.GoldSymbol, s.Config.Watchlist.GoldLabel)
		if err != nil {
			return nil, err
		}
		crypto, err := s.Aggregator.BuildCryptoBucket("crypto", s.Config.Watchlist.Crypto)
		if err != nil {
			return nil, err
		}

		// Pulse covers the core subset only: large caps and index ETFs.
		pulse := analysis.CorePulse(mag7, etfs)

		return []models.MReportPanel{
			s.Assembler.BuildDashboard(now, mag7, etfs, smallCaps, crypto, gold, pulse),
			s.Assembler.BuildSmallCapTape(now, smallCaps),
		}, nil

	default:
		return nil, nil
	}
}

// -----------------------------------------------------------------------------

func (s *Service) journalRun(started time.Time, mode models.SessionMode, panels int, status, errText string) {
	rec := models.MRunRecord{
		StartedAt:  started,
		Mode:       mode.String(),
		PanelCount: panels,
		Status:     status,
		Error:      errText,
		DurationMS: s.Now().Sub(started).Milliseconds(),
	}

	// Journal trouble never fails a run that already delivered.
	if err := s.Journal.RecordRun(rec); err != nil {
		s.Logger.Warning("Failed to journal run: %v", err)
	}
}
