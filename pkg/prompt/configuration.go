package prompt

import (
	"time"

	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,
		45 * time.Second,
	}
}

type Configuration struct {
	// Disabled suppresses all questions; every request is answered as
	// declined. Useful for fully headless operation.
	Disabled bool          `yaml:"disabled,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("prompt.disabled", "If provided no questions are asked; unknown signals stay unnamed.").
		Envar("WS_PROMPT_DISABLED").
		BoolVar(&this.Disabled)
	using.Flag("prompt.timeout", "How long to wait for an answer before a question counts as declined.").
		Envar("WS_PROMPT_TIMEOUT").
		DurationVar(&this.Timeout)
}
