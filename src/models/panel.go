package models

import "time"

// -----------------------------------------------------------------------------
// Report panels handed to the delivery layer.
// -----------------------------------------------------------------------------

// MPanelSection is one (heading, text block) pair inside a panel. Body is
// already fenced and capped by the assembler.
type MPanelSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// MReportPanel is one self-contained rendered report unit.
type MReportPanel struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Color       int             `json:"color"`
	Sections    []MPanelSection `json:"sections"`
	FooterNote  string          `json:"footer_note"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// MBriefing is the unit pushed to ops clients after a delivered run.
type MBriefing struct {
	Mode        string         `json:"mode"`
	Panels      []MReportPanel `json:"panels"`
	GeneratedAt time.Time      `json:"generated_at"`
}
