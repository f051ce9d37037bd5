package announce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_speaksInOrder(t *testing.T) {
	engine := &Recorder{}
	instance := NewQueue(engine)

	instance.Enqueue("one")
	instance.Enqueue("two")
	instance.Enqueue("three")
	assert.Equal(t, 3, instance.Pending())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	instance.Start(ctx)
	instance.Drain()

	assert.Equal(t, []string{"one", "two", "three"}, engine.Lines())
	assert.Equal(t, 0, instance.Pending())
}

func TestQueue_ignoresEnqueueAfterDrain(t *testing.T) {
	engine := &Recorder{}
	instance := NewQueue(engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	instance.Start(ctx)

	instance.Enqueue("one")
	instance.Drain()
	instance.Enqueue("late")

	assert.Equal(t, []string{"one"}, engine.Lines())
	assert.Equal(t, 0, instance.Pending())
}

func TestQueue_engineErrorsDoNotStopTheWorker(t *testing.T) {
	engine := &Recorder{}
	failing := &Recorder{Err: errors.New("no sound device")}

	instance := NewQueue(failing)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	instance.Start(ctx)
	instance.Enqueue("one")
	instance.Drain()
	assert.Equal(t, 0, instance.Pending())

	// The same backlog on a working engine arrives completely.
	working := NewQueue(engine)
	working.Start(ctx)
	working.Enqueue("one")
	working.Drain()
	assert.Equal(t, []string{"one"}, engine.Lines())
}

func TestSelectEngine_rejectsUnknownName(t *testing.T) {
	conf := NewConfiguration()
	conf.Engine = "bogus"

	_, err := SelectEngine(&conf)
	assert.Error(t, err)
}
