package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/sentrylabs/wifi-sentry/pkg/scan"
)

// Readline asks questions on the controlling terminal. One instance is
// created per question; closing it also unblocks a pending read when the
// answer timeout elapsed.
type Readline struct {
	conf *Configuration
}

func NewReadline(conf *Configuration) *Readline {
	return &Readline{conf: conf}
}

func (this *Readline) ConfirmHome(ctx context.Context, station scan.Station) (bool, error) {
	answer, err := this.ask(ctx, fmt.Sprintf("Signal %s is visible. Is this one of your own home networks? [y/N]: ", station))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (this *Readline) RequestName(ctx context.Context, station scan.Station) (string, error) {
	return this.ask(ctx, fmt.Sprintf("New signal %s detected. Enter a name for it (empty to skip): ", station))
}

func (this *Readline) ask(ctx context.Context, promptText string) (string, error) {
	l, err := readline.NewEx(&readline.Config{
		Stdin:  os.Stdin,
		Stdout: os.Stderr,
		Prompt: promptText,
	})
	if err != nil {
		return "", fmt.Errorf("could not read from terminal: %w", err)
	}
	defer func() {
		_ = l.Close()
	}()

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := l.Readline()
		answers <- answer{line, err}
	}()

	timeout := this.conf.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case v := <-answers:
		if v.err != nil {
			// EOF and interrupt both count as declined.
			return "", nil
		}
		return strings.TrimSpace(v.line), nil
	case <-timer.C:
		// Closing unblocks the pending Readline call.
		_ = l.Close()
		return "", nil
	case <-ctx.Done():
		_ = l.Close()
		return "", ctx.Err()
	}
}
