package speech

import (
	"context"

	log "github.com/echocat/slf4g"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
)

// Speech is the voice of the sentry. Events are pushed onto an unbounded
// queue and spoken one after another by the selected engine.
type Speech struct {
	conf   *announce.Configuration
	queue  *announce.Queue
	cancel context.CancelFunc
}

func (this *Speech) Initialize(conf *announce.Configuration) error {
	engine, err := announce.SelectEngine(conf)
	if err != nil {
		return err
	}
	return this.initializeWith(conf, engine)
}

// InitializeWithEngine wires a caller supplied engine; used for silent
// runs and tests.
func (this *Speech) InitializeWithEngine(conf *announce.Configuration, engine announce.Engine) error {
	return this.initializeWith(conf, engine)
}

func (this *Speech) initializeWith(conf *announce.Configuration, engine announce.Engine) error {
	log.With("engine", engine.Name()).
		Debug("Speech engine selected.")

	ctx, cancel := context.WithCancel(context.Background())
	this.conf = conf
	this.cancel = cancel
	this.queue = announce.NewQueue(engine)
	this.queue.Start(ctx)
	return nil
}

func (this *Speech) Notify(event alert.Event) error {
	if event.Message == "" {
		return nil
	}
	this.queue.Enqueue(event.Message)
	return nil
}

func (this *Speech) Dispose() error {
	if this.queue != nil {
		this.queue.Drain()
	}
	if this.cancel != nil {
		this.cancel()
	}
	this.queue = nil
	this.cancel = nil
	return nil
}

func (this *Speech) GetType() alert.Type {
	return alert.TypeSpeech
}
