package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	result, err := Open(filepath.Join(t.TempDir(), "signals.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = result.Close()
	})
	return result
}

func TestRegistry_CreateAndGet(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	created := instance.Create("AA:BB:CC:DD:EE:FF", "HomeNet", CategoryUnknown, now)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", created.Identifier)
	assert.Equal(t, CategoryUnknown, created.Category)

	actual, ok := instance.Get("AA:BB:CC:DD:EE:FF")
	require.True(t, ok)
	assert.Equal(t, "HomeNet", actual.SSID)
	assert.True(t, actual.LastAnnouncedAt.IsZero())

	// Creating again must not reset anything.
	instance.StampAnnounced("AA:BB:CC:DD:EE:FF", now)
	again := instance.Create("AA:BB:CC:DD:EE:FF", "OtherNet", CategoryKnown, now.Add(time.Hour))
	assert.Equal(t, CategoryUnknown, again.Category)
	assert.Equal(t, "HomeNet", again.SSID)

	_, ok = instance.Get("11:22:33:44:55:66")
	assert.False(t, ok)
}

func TestRegistry_SetDisplayName(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	instance.Create("AA:BB:CC:DD:EE:FF", "HomeNet", CategoryUnknown, now)
	instance.StampAnnounced("AA:BB:CC:DD:EE:FF", now)

	actual, ok := instance.SetDisplayName("AA:BB:CC:DD:EE:FF", "Alex", now.Add(time.Minute))
	require.True(t, ok)
	assert.Equal(t, "Alex", actual.DisplayName)
	assert.Equal(t, CategoryKnown, actual.Category)
	assert.True(t, actual.LastAnnouncedAt.IsZero(), "naming should clear the announcement stamp")

	_, ok = instance.SetDisplayName("11:22:33:44:55:66", "Nobody", now)
	assert.False(t, ok)
}

func TestRegistry_SetDisplayName_keepsHomeCategory(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	instance.MarkHome("AA:BB:CC:DD:EE:FF", "HomeNet", now)
	actual, ok := instance.SetDisplayName("AA:BB:CC:DD:EE:FF", "Router", now)
	require.True(t, ok)
	assert.Equal(t, CategoryHome, actual.Category)
}

func TestRegistry_MarkHome(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	// Marking an unseen identifier creates the record.
	actual := instance.MarkHome("AA:BB:CC:DD:EE:FF", "HomeNet", now)
	assert.Equal(t, CategoryHome, actual.Category)
	assert.Equal(t, 1, instance.Len())

	instance.Create("11:22:33:44:55:66", "", CategoryUnknown, now)
	actual = instance.MarkHome("11:22:33:44:55:66", "", now)
	assert.Equal(t, CategoryHome, actual.Category)
}

func TestRegistry_Observe(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	instance.Create("AA:BB:CC:DD:EE:FF", "", CategoryUnknown, now)
	instance.Observe("AA:BB:CC:DD:EE:FF", "HomeNet", now.Add(time.Minute))

	actual, ok := instance.Get("AA:BB:CC:DD:EE:FF")
	require.True(t, ok)
	assert.Equal(t, "HomeNet", actual.SSID)
	assert.True(t, actual.LastSeen.After(now))

	// Observing an unseen identifier is a no-op.
	instance.Observe("11:22:33:44:55:66", "Whatever", now)
	assert.Equal(t, 1, instance.Len())
}

func TestRegistry_CountSeenSince(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	instance.Create("AA:BB:CC:DD:EE:01", "", CategoryUnknown, now)
	instance.SetDisplayName("AA:BB:CC:DD:EE:01", "Alex", now)
	instance.Create("AA:BB:CC:DD:EE:02", "", CategoryUnknown, now.Add(-48*time.Hour))
	instance.SetDisplayName("AA:BB:CC:DD:EE:02", "Sam", now.Add(-48*time.Hour))
	instance.Create("AA:BB:CC:DD:EE:03", "", CategoryUnknown, now)

	assert.Equal(t, 1, instance.CountSeenSince(CategoryKnown, now.Add(-24*time.Hour)))
	assert.Equal(t, 2, instance.CountSeenSince(CategoryKnown, now.Add(-72*time.Hour)))
	assert.Equal(t, 1, instance.CountSeenSince(CategoryUnknown, now.Add(-24*time.Hour)))
}

func TestRegistry_ReopenRoundtrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "signals.db")
	now := time.Now()

	instance, err := Open(fn)
	require.NoError(t, err)
	instance.Create("AA:BB:CC:DD:EE:FF", "HomeNet", CategoryUnknown, now)
	instance.SetDisplayName("AA:BB:CC:DD:EE:FF", "Alex", now)
	instance.StampAnnounced("AA:BB:CC:DD:EE:FF", now)
	instance.MarkHome("11:22:33:44:55:66", "HomeNet", now)
	require.NoError(t, instance.Close())

	reopened, err := Open(fn)
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()

	require.Equal(t, 2, reopened.Len())

	actual, ok := reopened.Get("AA:BB:CC:DD:EE:FF")
	require.True(t, ok)
	assert.Equal(t, "Alex", actual.DisplayName)
	assert.Equal(t, CategoryKnown, actual.Category)
	assert.Equal(t, "HomeNet", actual.SSID)
	assert.WithinDuration(t, now, actual.LastAnnouncedAt, time.Second)

	actual, ok = reopened.Get("11:22:33:44:55:66")
	require.True(t, ok)
	assert.Equal(t, CategoryHome, actual.Category)
	assert.True(t, actual.LastAnnouncedAt.IsZero())
}

func TestRegistry_All(t *testing.T) {
	instance := openTestRegistry(t)
	now := time.Now()

	instance.Create("AA:BB:CC:DD:EE:02", "", CategoryUnknown, now.Add(time.Minute))
	instance.Create("AA:BB:CC:DD:EE:01", "", CategoryUnknown, now)

	actual := instance.All()
	require.Len(t, actual, 2)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", actual[0].Identifier)
	assert.Equal(t, "AA:BB:CC:DD:EE:02", actual[1].Identifier)
}

func TestRegistry_persistFailureIsNotFatal(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "signals.db")
	now := time.Now()

	instance, err := Open(fn)
	require.NoError(t, err)

	// Kill the database underneath; mutations must still succeed in
	// memory and stay dirty.
	require.NoError(t, instance.db.Close())

	instance.Create("AA:BB:CC:DD:EE:FF", "HomeNet", CategoryUnknown, now)
	actual, ok := instance.Get("AA:BB:CC:DD:EE:FF")
	require.True(t, ok)
	assert.Equal(t, "HomeNet", actual.SSID)
	assert.Contains(t, instance.dirty, "AA:BB:CC:DD:EE:FF")

	assert.Error(t, instance.Flush())
}

func TestCategory_Set(t *testing.T) {
	cases := map[string]Category{
		"unknown": CategoryUnknown,
		"known":   CategoryKnown,
		"home":    CategoryHome,
		"Home":    CategoryHome,
	}
	for plain, expected := range cases {
		var actual Category
		require.NoError(t, actual.Set(plain))
		assert.Equal(t, expected, actual)
	}

	var buf Category
	assert.Error(t, buf.Set("enemy"))
}
