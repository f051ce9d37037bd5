package app

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_roundtrip(t *testing.T) {
	instance := NewConfiguration()
	instance.ScanInterval = 42 * time.Second
	instance.DatabaseFile = "/tmp/signals.db"
	instance.SummarySchedule = "0 20 * * *"
	instance.Sentry.Cooldown = 30 * time.Minute
	instance.Sentry.WelcomePhrases = []string{"here"}
	instance.Prompt.Disabled = true
	require.NoError(t, instance.Scan.Backend.Set("demo"))

	var buf bytes.Buffer
	require.NoError(t, instance.saveTo(&buf))

	actual := NewConfiguration()
	require.NoError(t, actual.loadFrom(&buf))

	assert.Equal(t, instance, actual)
}

func TestConfiguration_loadFromRejectsUnknownFields(t *testing.T) {
	actual := NewConfiguration()
	err := actual.loadFrom(bytes.NewBufferString("scanInterval: 10s\nfrobnicate: true\n"))
	assert.Error(t, err)
}

func TestConfiguration_loadFromFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "configuration.yml")

	instance := NewConfiguration()
	instance.ScanInterval = 17 * time.Second
	require.NoError(t, instance.saveToFile(fn))

	actual := NewConfiguration()
	require.NoError(t, actual.loadFromFile(fn, false))
	assert.Equal(t, 17*time.Second, actual.ScanInterval)

	// Missing files are only an error if they are not allowed to be.
	missing := filepath.Join(t.TempDir(), "nope.yml")
	assert.NoError(t, actual.loadFromFile(missing, true))
	assert.Error(t, actual.loadFromFile(missing, false))
}
