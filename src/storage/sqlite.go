package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"market-pulse/src/helpers"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------

type SQLiteJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteJournal(cfg *models.MConfig, log *logger.Logger) (*SQLiteJournal, error) {
	return &SQLiteJournal{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewJournalError("failed to open sqlite journal", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewJournalError("failed to ping sqlite journal", err)
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	// The journal is append-only ops history: unlike a cache it survives
	// restarts, so CREATE IF NOT EXISTS rather than drop/recreate.
	query := `
		CREATE TABLE IF NOT EXISTS run_journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT,
			mode TEXT,
			panel_count INTEGER,
			status TEXT,
			error TEXT,
			duration_ms INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return helpers.NewJournalError("failed to create run_journal", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) RecordRun(rec models.MRunRecord) error {
	_, err := d.DB.Exec(`
		INSERT INTO run_journal (started_at, mode, panel_count, status, error, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Mode, rec.PanelCount, rec.Status, rec.Error, rec.DurationMS)

	if err != nil {
		return helpers.NewJournalError("failed to insert run record", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) LastRun() (*models.MRunRecord, error) {
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

func (d *SQLiteJournal) RecentRuns(n int) ([]models.MRunRecord, error) {
	rows, err := d.DB.Query(`
		SELECT started_at, mode, panel_count, status, error, duration_ms
		FROM run_journal ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, helpers.NewJournalError("failed to query run records", err)
	}
	defer rows.Close()

	return scanRunRecords(rows)
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// -----------------------------------------------------------------------------

// scanRunRecords is shared with the Postgres backend; both store started_at
// as RFC3339 text.
func scanRunRecords(rows *sql.Rows) ([]models.MRunRecord, error) {
	var out []models.MRunRecord

	for rows.Next() {
		var rec models.MRunRecord
		var startedAt string

		if err := rows.Scan(&startedAt, &rec.Mode, &rec.PanelCount, &rec.Status, &rec.Error, &rec.DurationMS); err != nil {
			return nil, helpers.NewJournalError("failed to scan run record", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, helpers.NewJournalError(fmt.Sprintf("bad started_at '%s'", startedAt), err)
		}
		rec.StartedAt = ts

		out = append(out, rec)
	}

	return out, rows.Err()
}
