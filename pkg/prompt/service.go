package prompt

import (
	"context"
	"sync"

	log "github.com/echocat/slf4g"
)

// Service decouples the scan loop from the user: requests pile up in an
// unbounded queue, one worker asks them in order, replies are consumed by
// the scan loop whenever it is convenient. Nothing is ever dropped.
type Service struct {
	conf     *Configuration
	prompter Prompter

	pending   []Request
	queued    map[string]struct{}
	cancelled bool

	replies chan Reply
	mutex   sync.Mutex
	cond    *sync.Cond
}

func NewService(conf *Configuration, prompter Prompter) *Service {
	result := &Service{
		conf:     conf,
		prompter: prompter,
		queued:   make(map[string]struct{}),
		replies:  make(chan Reply, 16),
	}
	result.cond = sync.NewCond(&result.mutex)
	return result
}

func (this *Service) Start(ctx context.Context) {
	go this.worker(ctx)
	go func() {
		<-ctx.Done()
		this.mutex.Lock()
		this.cancelled = true
		this.cond.Broadcast()
		this.mutex.Unlock()
	}()
}

// Submit queues one question. Duplicate questions for the same station
// are collapsed while the first one is still unanswered.
func (this *Service) Submit(request Request) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	key := request.Kind.String() + "/" + request.Station.BSSID
	if _, ok := this.queued[key]; ok {
		return
	}
	this.queued[key] = struct{}{}
	this.pending = append(this.pending, request)
	this.cond.Signal()
}

// Replies delivers the answers. The channel is never closed; consumers
// stop via their own context.
func (this *Service) Replies() <-chan Reply {
	return this.replies
}

func (this *Service) worker(ctx context.Context) {
	for {
		this.mutex.Lock()
		for len(this.pending) == 0 && !this.cancelled {
			this.cond.Wait()
		}
		if this.cancelled {
			this.mutex.Unlock()
			return
		}
		request := this.pending[0]
		this.pending = this.pending[1:]
		this.mutex.Unlock()

		reply := this.answer(ctx, request)

		this.mutex.Lock()
		delete(this.queued, request.Kind.String()+"/"+request.Station.BSSID)
		this.mutex.Unlock()

		select {
		case this.replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func (this *Service) answer(ctx context.Context, request Request) Reply {
	reply := Reply{
		Kind:       request.Kind,
		Identifier: request.Station.BSSID,
		SSID:       request.Station.SSID,
	}

	if this.conf.Disabled {
		return reply
	}

	var err error
	switch request.Kind {
	case KindHomeConfirmation:
		reply.Confirmed, err = this.prompter.ConfirmHome(ctx, request.Station)
	case KindName:
		reply.Name, err = this.prompter.RequestName(ctx, request.Station)
	}
	if err != nil && ctx.Err() == nil {
		log.WithError(err).
			With("station", request.Station).
			Warn("Cannot ask about signal; treating the question as declined.")
	}

	return reply
}
