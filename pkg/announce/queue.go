package announce

import (
	"context"
	"sync"

	log "github.com/echocat/slf4g"
)

// Queue serializes announcements onto one engine. It is unbounded: while
// an utterance (or a pending naming prompt) blocks the worker, further
// announcements pile up but are never dropped.
type Queue struct {
	engine Engine

	pending   []string
	closed    bool
	cancelled bool

	mutex sync.Mutex
	cond  *sync.Cond
	wg    sync.WaitGroup
}

func NewQueue(engine Engine) *Queue {
	result := &Queue{engine: engine}
	result.cond = sync.NewCond(&result.mutex)
	return result
}

// Start launches the worker goroutine. Cancelling the context stops the
// worker without waiting for the backlog.
func (this *Queue) Start(ctx context.Context) {
	this.wg.Add(1)
	go this.worker(ctx)
	go func() {
		<-ctx.Done()
		this.mutex.Lock()
		this.cancelled = true
		this.cond.Broadcast()
		this.mutex.Unlock()
	}()
}

func (this *Queue) worker(ctx context.Context) {
	defer this.wg.Done()

	for {
		this.mutex.Lock()
		for len(this.pending) == 0 && !this.closed && !this.cancelled {
			this.cond.Wait()
		}
		if this.cancelled || (this.closed && len(this.pending) == 0) {
			this.mutex.Unlock()
			return
		}
		text := this.pending[0]
		this.pending = this.pending[1:]
		this.mutex.Unlock()

		if err := this.engine.Speak(ctx, text); err != nil {
			log.WithError(err).
				With("engine", this.engine.Name()).
				With("text", text).
				Warn("Cannot announce; skipping this utterance.")
		}
	}
}

// Enqueue appends one announcement. Silently ignored after Drain.
func (this *Queue) Enqueue(text string) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.closed || this.cancelled {
		return
	}
	this.pending = append(this.pending, text)
	this.cond.Signal()
}

// Pending reports the current backlog size.
func (this *Queue) Pending() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return len(this.pending)
}

// Drain stops accepting new announcements, speaks the backlog to its end
// and returns afterwards.
func (this *Queue) Drain() {
	this.mutex.Lock()
	this.closed = true
	this.cond.Broadcast()
	this.mutex.Unlock()

	this.wg.Wait()
}
