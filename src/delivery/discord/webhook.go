package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// Webhook posts finished briefings to a Discord-compatible webhook URL. All
// panels of an invocation go out in one POST; there is no per-panel delivery
// and no retry.
type Webhook struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewWebhook(cfg *models.MConfig) *Webhook {
	return &Webhook{
		Config: cfg,
		Logger: logger.NewLogger(cfg.LogLevel, "DiscordWebhook"),
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------
// Wire structures (Discord embed shape)
// -----------------------------------------------------------------------------

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// -----------------------------------------------------------------------------

// Deliver posts all panels as one batched webhook call.
func (w *Webhook) Deliver(panels []models.MReportPanel) error {
	payload := buildPayload(panels)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := w.Client.Post(w.Config.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return helpers.NewUpstreamTransportError("webhook post failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return helpers.NewUpstreamTransportError(
			fmt.Sprintf("webhook returned status %d", resp.StatusCode), nil)
	}

	w.Logger.Info("Delivered %d panel(s)", len(panels))
	return nil
}

// -----------------------------------------------------------------------------

func buildPayload(panels []models.MReportPanel) webhookPayload {
	payload := webhookPayload{Embeds: make([]embed, 0, len(panels))}

	for _, p := range panels {
		e := embed{
			Title:       p.Title,
			Description: p.Description,
			Color:       p.Color,
			Timestamp:   p.GeneratedAt.UTC().Format(time.RFC3339),
		}

		for _, sec := range p.Sections {
			e.Fields = append(e.Fields, embedField{
				Name:   sec.Heading,
				Value:  sec.Body,
				Inline: false,
			})
		}

		if p.FooterNote != "" {
			e.Footer = &embedFooter{Text: p.FooterNote}
		}

		payload.Embeds = append(payload.Embeds, e)
	}

	return payload
}
