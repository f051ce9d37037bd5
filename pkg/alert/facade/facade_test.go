package facade

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
)

type fakeOutput struct {
	events   []alert.Event
	err      error
	disposed bool
}

func (this *fakeOutput) Notify(event alert.Event) error {
	this.events = append(this.events, event)
	return this.err
}

func (this *fakeOutput) Dispose() error {
	this.disposed = true
	return nil
}

func (this *fakeOutput) GetType() alert.Type {
	return alert.TypeSystray
}

func TestFacade_fansOutToAllOutputs(t *testing.T) {
	var instance Facade
	first := &fakeOutput{}
	second := &fakeOutput{err: errors.New("boom")}
	third := &fakeOutput{}
	instance.Register(first)
	instance.Register(second)
	instance.Register(third)

	event := alert.Event{Kind: alert.KindWatching, Message: "Wifi sentry is watching."}
	instance.Notify(event)

	// A failing output must not keep the event from the others.
	assert.Equal(t, []alert.Event{event}, first.events)
	assert.Equal(t, []alert.Event{event}, second.events)
	assert.Equal(t, []alert.Event{event}, third.events)
}

func TestFacade_Dispose(t *testing.T) {
	var instance Facade
	output := &fakeOutput{}
	instance.Register(output)

	require.NoError(t, instance.Dispose())
	assert.True(t, output.disposed)

	// Disposed facades drop their outputs.
	instance.Notify(alert.Event{Kind: alert.KindWatching})
	assert.Empty(t, output.events)
}

func TestFacade_InitializeWithSpeechEngine(t *testing.T) {
	var instance Facade
	conf := NewConfiguration()
	engine := &announce.Recorder{}

	require.NoError(t, instance.Initialize(&conf, func() error { return nil }, engine))
	defer func() {
		_ = instance.Dispose()
	}()

	instance.Notify(alert.Event{Kind: alert.KindUnknownVisitor, Message: "Warning."})
	require.NoError(t, instance.Dispose())

	assert.Equal(t, []string{"Warning."}, engine.Lines())
}

func TestFacade_InitializeIsIdempotent(t *testing.T) {
	var instance Facade
	conf := NewConfiguration()
	engine := &announce.Recorder{}

	require.NoError(t, instance.Initialize(&conf, func() error { return nil }, engine))
	require.NoError(t, instance.Initialize(&conf, func() error { return nil }, engine))
	defer func() {
		_ = instance.Dispose()
	}()
}
