package announce

import (
	"context"
	"sync"
)

// Recorder is an Engine that only records what would have been spoken.
// Used by tests and by --silent runs.
type Recorder struct {
	// Err, if set, is returned by every Speak call.
	Err error
	// OnSpeak, if set, is invoked for every spoken line.
	OnSpeak func(text string)

	lines []string
	mutex sync.Mutex
}

func (this *Recorder) Name() string { return "recorder" }

func (this *Recorder) Available() bool { return true }

func (this *Recorder) Speak(_ context.Context, text string) error {
	if this.Err != nil {
		return this.Err
	}

	this.mutex.Lock()
	this.lines = append(this.lines, text)
	onSpeak := this.OnSpeak
	this.mutex.Unlock()

	if onSpeak != nil {
		onSpeak(text)
	}
	return nil
}

// Lines returns everything spoken so far.
func (this *Recorder) Lines() []string {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	result := make([]string, len(this.lines))
	copy(result, this.lines)
	return result
}
