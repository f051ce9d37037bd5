package announce

import (
	"context"
	"fmt"
	"strings"
)

// Engine produces audible speech from a text. Implementations wrap one
// concrete synthesizer of the host system.
type Engine interface {
	// Name identifies the engine for configuration and logging.
	Name() string
	// Available reports whether the engine can run on this system.
	Available() bool
	// Speak synthesizes and plays the given text. It blocks until the
	// utterance finished or the context was cancelled.
	Speak(ctx context.Context, text string) error
}

// SelectEngine resolves the configured engine name, or picks the first
// available one if no name was configured.
func SelectEngine(conf *Configuration) (Engine, error) {
	candidates := platformEngines(conf)

	if name := strings.TrimSpace(strings.ToLower(conf.Engine)); name != "" {
		for _, candidate := range candidates {
			if candidate.Name() == name {
				if !candidate.Available() {
					return nil, fmt.Errorf("speech engine %q is configured but not available on this system", name)
				}
				return candidate, nil
			}
		}
		return nil, fmt.Errorf("unknown speech engine %q; possible values: %s", name, engineNames(candidates))
	}

	for _, candidate := range candidates {
		if candidate.Available() {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("no speech engine available on this system; tried: %s", engineNames(candidates))
}

func engineNames(engines []Engine) string {
	result := make([]string, len(engines))
	for i, v := range engines {
		result[i] = v.Name()
	}
	return strings.Join(result, ", ")
}
