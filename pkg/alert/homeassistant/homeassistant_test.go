package homeassistant

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/credentials"
)

func TestNewStatePostRequest(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC)
	actual := newStatePostRequest(alert.Event{
		Kind:        alert.KindKnownVisitor,
		Identifier:  "AA:BB:CC:DD:EE:FF",
		DisplayName: "Alex",
		Message:     "Visitor approaching. Alex is nearby.",
		Signal:      87,
		At:          at,
	})

	assert.Equal(t, "knownVisitor", actual.State)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", actual.Attributes["identifier"])
	assert.Equal(t, "Alex", actual.Attributes["display_name"])
	assert.Equal(t, 87, actual.Attributes["signal"])
	assert.Equal(t, "2026-08-31T12:30:00Z", actual.Attributes["at"])
	assert.Equal(t, "mdi:wifi-alert", actual.Attributes["icon"])
}

func TestNewStatePostRequest_omitsEmptyFields(t *testing.T) {
	actual := newStatePostRequest(alert.Event{
		Kind:    alert.KindWatching,
		Message: "Wifi sentry is watching.",
	})

	assert.Equal(t, "watching", actual.State)
	assert.NotContains(t, actual.Attributes, "identifier")
	assert.NotContains(t, actual.Attributes, "display_name")
	assert.NotContains(t, actual.Attributes, "signal")
	assert.NotContains(t, actual.Attributes, "at")
}

func TestHomeassistant_Notify(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody statePostRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	instance := Homeassistant{
		conf: &Configuration{EntityId: "sensor.wifi_sentry_test"},
		creds: credentials.Credentials{
			HomeAssistantServer: server.URL,
			HomeAssistantToken:  "t0ken",
		},
	}

	require.NoError(t, instance.Notify(alert.Event{
		Kind:    alert.KindUnknownVisitor,
		Message: "Visitor Approaching. Unknown signal detected. Warning. Warning",
	}))

	assert.Equal(t, "/api/states/sensor.wifi_sentry_test", gotPath)
	assert.Equal(t, "Bearer t0ken", gotAuth)
	assert.Equal(t, "unknownVisitor", gotBody.State)
}

func TestHomeassistant_NotifyFailsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	instance := Homeassistant{
		conf:  &Configuration{EntityId: "sensor.wifi_sentry_test"},
		creds: credentials.Credentials{HomeAssistantServer: server.URL},
	}

	assert.Error(t, instance.Notify(alert.Event{Kind: alert.KindWatching, Message: "x"}))
}

func TestNormalizeEntityIdPart(t *testing.T) {
	assert.Equal(t, "my_host_1", normalizeEntityIdPart("My-Host.1"))
	assert.Equal(t, "abc_def", normalizeEntityIdPart("abc def"))
}
