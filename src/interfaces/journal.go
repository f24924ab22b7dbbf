package interfaces

import "market-pulse/src/models"

// -----------------------------------------------------------------------------
// IRunJournal defines the contract for the operational run journal.
// Journal rows are ops metadata only; the pricing pipeline never reads them.
// -----------------------------------------------------------------------------

type IRunJournal interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the journal schema.
	Initialize() error

	// -----------------------------------------------------------------------------

	// RecordRun appends one invocation record.
	RecordRun(rec models.MRunRecord) error

	// -----------------------------------------------------------------------------

	// LastRun returns the most recent record, or nil when the journal is empty.
	LastRun() (*models.MRunRecord, error)

	// -----------------------------------------------------------------------------

	// RecentRuns returns up to n records, newest first.
	RecentRuns(n int) ([]models.MRunRecord, error)

	// -----------------------------------------------------------------------------

	// Close the underlying connection
	Close() error
}
