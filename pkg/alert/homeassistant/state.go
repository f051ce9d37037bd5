package homeassistant

import (
	"time"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
)

type statePostRequest struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func newStatePostRequest(event alert.Event) statePostRequest {
	attributes := map[string]any{
		"icon":          "mdi:wifi-alert",
		"friendly_name": "WiFi Sentry",
		"message":       event.Message,
	}
	if event.Identifier != "" {
		attributes["identifier"] = event.Identifier
	}
	if event.DisplayName != "" {
		attributes["display_name"] = event.DisplayName
	}
	if event.Signal > 0 {
		attributes["signal"] = event.Signal
	}
	if !event.At.IsZero() {
		attributes["at"] = event.At.Format(time.RFC3339)
	}

	return statePostRequest{
		State:      event.Kind.String(),
		Attributes: attributes,
	}
}
