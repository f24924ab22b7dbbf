package interfaces

import "market-pulse/src/models"

// -----------------------------------------------------------------------------
// IDeliverer defines the contract for handing a finished briefing to the chat
// surface.
// -----------------------------------------------------------------------------

type IDeliverer interface {

	// -----------------------------------------------------------------------------

	// Deliver posts all panels in one batched call. Never called with an empty
	// panel list; partial delivery does not exist.
	Deliver(panels []models.MReportPanel) error
}
