// Package telemetry sends opt-in anonymous usage events. It is a no-op
// unless explicitly enabled in configuration with an API key; no event ever
// carries plan content or business descriptions.
package telemetry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"

	"github.com/planora-ai/planora/types"
)

// Event names captured by the CLI.
const (
	EventGenerate = "plan_generated"
	EventSave     = "project_saved"
	EventDelete   = "project_deleted"
	EventImport   = "project_imported"
	EventExport   = "project_exported"
	EventChat     = "chat_message"
)

// Client wraps the PostHog client behind the enabled/disabled decision.
type Client struct {
	mu         sync.Mutex
	ph         posthog.Client
	distinctID string
	enabled    bool
	version    string
}

// New creates a telemetry client. When telemetry is disabled or no API key
// is configured, the client is inert.
func New(config types.TelemetryConfig, version string) *Client {
	c := &Client{version: version}
	if !config.Enabled || config.APIKey == "" {
		return c
	}

	cfg := posthog.Config{}
	if config.Endpoint != "" {
		cfg.Endpoint = config.Endpoint
	}
	ph, err := posthog.NewWithConfig(config.APIKey, cfg)
	if err != nil {
		return c
	}

	c.ph = ph
	c.distinctID = uuid.NewString()
	c.enabled = true
	return c
}

// Capture enqueues one event. Properties must stay anonymous.
func (c *Client) Capture(event string, properties map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}

	props := posthog.NewProperties().Set("version", c.version)
	for k, v := range properties {
		props = props.Set(k, v)
	}

	_ = c.ph.Enqueue(posthog.Capture{
		DistinctId: c.distinctID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes pending events.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		_ = c.ph.Close()
	}
}
