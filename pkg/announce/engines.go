package announce

import (
	"context"
	"os/exec"
	"strconv"
)

// sayEngine uses the macOS `say` command.
type sayEngine struct {
	conf *Configuration
}

func (this *sayEngine) Name() string { return "say" }

func (this *sayEngine) Available() bool {
	return binaryAvailable("say")
}

func (this *sayEngine) Speak(ctx context.Context, text string) error {
	args := []string{"-r", strconv.FormatUint(uint64(this.conf.Rate), 10)}
	if this.conf.Voice != "" {
		args = append(args, "-v", this.conf.Voice)
	}
	args = append(args, text)
	return runSpeechCommand(ctx, this.conf.Timeout, "", "say", args...)
}

// espeakEngine drives espeak-ng or classic espeak; both share the same
// command line surface.
type espeakEngine struct {
	conf   *Configuration
	binary string
}

func (this *espeakEngine) Name() string { return this.binary }

func (this *espeakEngine) Available() bool {
	return binaryAvailable(this.binary)
}

func (this *espeakEngine) Speak(ctx context.Context, text string) error {
	args := []string{"-s", strconv.FormatUint(uint64(this.conf.Rate), 10)}
	if this.conf.Voice != "" {
		args = append(args, "-v", this.conf.Voice)
	}
	// Text is passed via stdin to avoid any quoting trouble.
	args = append(args, "--stdin")
	return runSpeechCommand(ctx, this.conf.Timeout, text, this.binary, args...)
}

// fliteEngine is the last resort on minimal systems. It supports neither
// rate nor voice selection in a portable way.
type fliteEngine struct {
	conf *Configuration
}

func (this *fliteEngine) Name() string { return "flite" }

func (this *fliteEngine) Available() bool {
	return binaryAvailable("flite")
}

func (this *fliteEngine) Speak(ctx context.Context, text string) error {
	return runSpeechCommand(ctx, this.conf.Timeout, "", "flite", "-t", text)
}

func binaryAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
