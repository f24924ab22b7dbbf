package interfaces

import "market-pulse/src/models"

// -----------------------------------------------------------------------------
// IBriefingExchanger defines the interface for sharing delivered briefings
// with external systems (ops server push).
// -----------------------------------------------------------------------------

type IBriefingExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes a delivered briefing to connected listeners.
	Broadcast(b models.MBriefing)

	// -----------------------------------------------------------------------------

	// UpdateLatest replaces the cached briefing without broadcasting.
	UpdateLatest(b models.MBriefing)

	// -----------------------------------------------------------------------------

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
