package storage

import (
	"path/filepath"
	"testing"
	"time"

	"market-pulse/src/logger"
	"market-pulse/src/models"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("ERROR", "test")
}

// -----------------------------------------------------------------------------

func TestNewRunJournalSelection(t *testing.T) {
	cfg := &models.MConfig{LogLevel: "ERROR"}

	cfg.Storage.DBType = "none"
	j, err := NewRunJournal(cfg, testLogger())
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if _, ok := j.(*NopJournal); !ok {
		t.Errorf("db_type none gave %T, want NopJournal", j)
	}

	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "t.db")
	j, err = NewRunJournal(cfg, testLogger())
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if _, ok := j.(*SQLiteJournal); !ok {
		t.Errorf("db_type sqlite gave %T, want SQLiteJournal", j)
	}
}

// -----------------------------------------------------------------------------

func TestSQLiteJournalRoundTrip(t *testing.T) {
	cfg := &models.MConfig{LogLevel: "ERROR"}
	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLiteJournal(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewSQLiteJournal failed: %v", err)
	}
	if err := j.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer j.Close()

	started := time.Date(2026, 8, 25, 16, 0, 0, 0, time.UTC)
	recs := []models.MRunRecord{
		{StartedAt: started, Mode: "market_open", PanelCount: 2, Status: models.RunDelivered, DurationMS: 1800},
		{StartedAt: started.Add(30 * time.Minute), Mode: "market_closed", Status: models.RunNoop},
		{StartedAt: started.Add(time.Hour), Mode: "market_open", Status: models.RunFailed, Error: "stooq down"},
	}
	for _, r := range recs {
		if err := j.RecordRun(r); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	last, err := j.LastRun()
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if last == nil || last.Status != models.RunFailed || last.Error != "stooq down" {
		t.Errorf("last run = %+v", last)
	}
	if !last.StartedAt.Equal(started.Add(time.Hour)) {
		t.Errorf("started_at = %v", last.StartedAt)
	}

	recent, err := j.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Status != models.RunFailed || recent[1].Status != models.RunNoop {
		t.Errorf("recent = %+v", recent)
	}
}

func TestSQLiteJournalEmpty(t *testing.T) {
	cfg := &models.MConfig{LogLevel: "ERROR"}
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "empty.db")

	j, err := NewSQLiteJournal(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewSQLiteJournal failed: %v", err)
	}
	if err := j.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer j.Close()

	last, err := j.LastRun()
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if last != nil {
		t.Errorf("last run = %+v, want nil on empty journal", last)
	}
}
