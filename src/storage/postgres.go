package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"database/sql"

	_ "github.com/lib/pq"

	"market-pulse/src/helpers"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------

type PostgresJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresJournal(cfg *models.MConfig, log *logger.Logger) (*PostgresJournal, error) {
	// Schema named after the executable so several deployments can share one
	// database.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresJournal{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewJournalError("failed to open postgres journal", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewJournalError("failed to ping postgres journal", err)
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return helpers.NewJournalError(fmt.Sprintf("failed to create schema %s", d.Schema), err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s".run_journal (
			id SERIAL PRIMARY KEY,
			started_at TEXT,
			mode TEXT,
			panel_count INTEGER,
			status TEXT,
			error TEXT,
			duration_ms BIGINT
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return helpers.NewJournalError("failed to create run_journal", err)
	}

	d.Logger.Info("PostgresJournal initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) RecordRun(rec models.MRunRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO "%s".run_journal (started_at, mode, panel_count, status, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.Schema)

	_, err := d.DB.Exec(query,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Mode, rec.PanelCount, rec.Status, rec.Error, rec.DurationMS)

	if err != nil {
		return helpers.NewJournalError("failed to insert run record", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) LastRun() (*models.MRunRecord, error) {
	recs, err := d.RecentRuns(1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) RecentRuns(n int) ([]models.MRunRecord, error) {
	query := fmt.Sprintf(`
		SELECT started_at, mode, panel_count, status, error, duration_ms
		FROM "%s".run_journal ORDER BY id DESC LIMIT $1
	`, d.Schema)

	rows, err := d.DB.Query(query, n)
	if err != nil {
		return nil, helpers.NewJournalError("failed to query run records", err)
	}
	defer rows.Close()

	return scanRunRecords(rows)
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
