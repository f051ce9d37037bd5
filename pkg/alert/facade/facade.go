package facade

import (
	"fmt"
	"sync"

	log "github.com/echocat/slf4g"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/homeassistant"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/hue"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/speech"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
)

// Facade holds all configured alert outputs and fans every event out to
// them. A failing output is logged but never stops the others.
type Facade struct {
	outputs []alert.Output

	lock sync.RWMutex
}

// Initialize creates the outputs selected in the configuration.
// speechEngine may override the auto-detected engine; used for silent
// runs and tests.
func (this *Facade) Initialize(conf *Configuration, saveConfFunc func() error, speechEngine announce.Engine) error {
	this.lock.Lock()
	defer this.lock.Unlock()

	if this.outputs != nil {
		return nil
	}

	for _, candidate := range conf.Types {
		switch candidate {
		case alert.TypeSpeech:
			var buf speech.Speech
			var err error
			if speechEngine != nil {
				err = buf.InitializeWithEngine(&conf.Speech, speechEngine)
			} else {
				err = buf.Initialize(&conf.Speech)
			}
			if err != nil {
				return err
			}
			this.outputs = append(this.outputs, &buf)
		case alert.TypeHue:
			var buf hue.Hue
			if err := buf.Initialize(&conf.Hue, saveConfFunc); err != nil {
				return err
			}
			this.outputs = append(this.outputs, &buf)
		case alert.TypeHomeAssistant:
			var buf homeassistant.Homeassistant
			if err := buf.Initialize(&conf.HomeAssistant, saveConfFunc); err != nil {
				return err
			}
			this.outputs = append(this.outputs, &buf)
		case alert.TypeSystray:
			// The tray output is owned by the entrypoint and registered
			// via Register, because it needs the embedded icons.
		default:
			return fmt.Errorf("unsupported alert type: %v", candidate)
		}
	}

	return nil
}

// Register adds an externally constructed output.
func (this *Facade) Register(output alert.Output) {
	this.lock.Lock()
	defer this.lock.Unlock()

	this.outputs = append(this.outputs, output)
}

func (this *Facade) Notify(event alert.Event) {
	this.lock.RLock()
	defer this.lock.RUnlock()

	for _, output := range this.outputs {
		if err := output.Notify(event); err != nil {
			log.WithError(err).
				With("output", output.GetType()).
				With("event", event.Kind).
				Warn("Cannot deliver alert.")
		}
	}
}

func (this *Facade) Dispose() (rErr error) {
	this.lock.Lock()
	defer this.lock.Unlock()

	for _, output := range this.outputs {
		if err := output.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}
	this.outputs = nil
	return
}
