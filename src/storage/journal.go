package storage

import (
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------

// NewRunJournal selects the journal backend from configuration.
func NewRunJournal(cfg *models.MConfig, log *logger.Logger) (interfaces.IRunJournal, error) {
	switch cfg.Storage.DBType {
	case "postgres":
		return NewPostgresJournal(cfg, log)
	case "none":
		return &NopJournal{}, nil
	default:
		// Default to SQLite
		return NewSQLiteJournal(cfg, log)
	}
}

// -----------------------------------------------------------------------------

// NopJournal discards records; used for cron deployments without a writable
// disk (db_type: none).
type NopJournal struct{}

func (n *NopJournal) Initialize() error                            { return nil }
func (n *NopJournal) RecordRun(models.MRunRecord) error            { return nil }
func (n *NopJournal) LastRun() (*models.MRunRecord, error)         { return nil, nil }
func (n *NopJournal) RecentRuns(int) ([]models.MRunRecord, error)  { return nil, nil }
func (n *NopJournal) Close() error                                 { return nil }
