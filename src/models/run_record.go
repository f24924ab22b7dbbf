package models

import "time"

// Run outcome values stored in the journal.
const (
	RunDelivered = "delivered"
	RunNoop      = "noop"
	RunFailed    = "failed"
)

// MRunRecord is one journal row describing a pipeline invocation. Operational
// metadata only; no price data is ever stored.
type MRunRecord struct {
	StartedAt  time.Time `json:"started_at"`
	Mode       string    `json:"mode"`
	PanelCount int       `json:"panel_count"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}
