package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // succeeded, no failed rows
	colorOrange = 0xE67E22 // succeeded with failed rows
	colorRed    = 0xE74C3C // run failed
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendRunSummary posts a run summary as a single Discord embed.
func (d *DiscordNotifier) SendRunSummary(ctx context.Context, summary *RunSummary) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(summary)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(s *RunSummary) discordEmbed {
	c := s.Counters
	embed := discordEmbed{
		Title: fmt.Sprintf("Sync %s: %s", s.JobName, s.Status),
		Color: statusColor(s),
		Fields: []discordEmbedField{
			{Name: "Attempted", Value: fmt.Sprintf("%d", c.Attempted), Inline: true},
			{Name: "Matched", Value: fmt.Sprintf("%d", c.Matched), Inline: true},
			{Name: "Persisted", Value: fmt.Sprintf("%d", c.Persisted), Inline: true},
			{Name: "Unmatched", Value: fmt.Sprintf("%d", c.Unmatched()), Inline: true},
			{Name: "Failed", Value: fmt.Sprintf("%d", c.Failed), Inline: true},
			{Name: "Duration", Value: s.Duration.Round(time.Second).String(), Inline: true},
		},
	}
	if c.Inserted > 0 || c.Updated > 0 {
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Inserted", Value: fmt.Sprintf("%d", c.Inserted), Inline: true},
			discordEmbedField{Name: "Updated", Value: fmt.Sprintf("%d", c.Updated), Inline: true},
		)
	}
	if s.Error != "" {
		embed.Description = s.Error
	}
	return embed
}

func statusColor(s *RunSummary) int {
	switch {
	case s.Status != domain.JobStatusSucceeded:
		return colorRed
	case s.Counters.Failed > 0:
		return colorOrange
	default:
		return colorGreen
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
