package scan

import (
	"time"

	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		BackendAuto,
		"",
		20 * time.Second,
	}
}

type Configuration struct {
	Backend   Backend       `yaml:"backend,omitempty"`
	Interface string        `yaml:"interface,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("scan.backend", "Scan backend to use. All possible values: "+AllBackends.String()).
		Envar("WS_SCAN_BACKEND").
		SetValue(&this.Backend)
	using.Flag("scan.interface", "Wireless interface to scan with. Auto-detected if empty.").
		Envar("WS_SCAN_INTERFACE").
		StringVar(&this.Interface)
	using.Flag("scan.timeout", "How long one scan invocation may take.").
		Envar("WS_SCAN_TIMEOUT").
		DurationVar(&this.Timeout)
}
