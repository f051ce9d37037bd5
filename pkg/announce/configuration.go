package announce

import (
	"time"

	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		"",
		"",
		150,
		30 * time.Second,
	}
}

type Configuration struct {
	Engine string `yaml:"engine,omitempty"`
	Voice  string `yaml:"voice,omitempty"`
	// Rate is the speaking rate in words per minute.
	Rate    uint          `yaml:"rate,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("speech.engine", "Speech engine to use. Auto-detected if empty.").
		Envar("WS_SPEECH_ENGINE").
		StringVar(&this.Engine)
	using.Flag("speech.voice", "Voice to use, if the engine supports voice selection.").
		Envar("WS_SPEECH_VOICE").
		StringVar(&this.Voice)
	using.Flag("speech.rate", "Speaking rate in words per minute.").
		Envar("WS_SPEECH_RATE").
		UintVar(&this.Rate)
	using.Flag("speech.timeout", "How long one utterance may take before it is given up.").
		Envar("WS_SPEECH_TIMEOUT").
		DurationVar(&this.Timeout)
}
