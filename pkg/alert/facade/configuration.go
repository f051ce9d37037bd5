package facade

import (
	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/homeassistant"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/hue"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		Types:         alert.Types{alert.TypeSpeech},
		Speech:        announce.NewConfiguration(),
		Hue:           hue.NewConfiguration(),
		HomeAssistant: homeassistant.NewConfiguration(),
	}
}

type Configuration struct {
	Types         alert.Types                 `yaml:"types"`
	Speech        announce.Configuration      `yaml:"speech,omitempty"`
	Hue           hue.Configuration           `yaml:"hue,omitempty"`
	HomeAssistant homeassistant.Configuration `yaml:"homeAssistant,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("alerts", "Comma separated list of alert outputs to use. All possible values: "+alert.AllTypes.String()).
		Envar("WS_ALERTS").
		SetValue(&this.Types)

	this.Speech.SetupConfiguration(using)
	this.Hue.SetupConfiguration(using)
	this.HomeAssistant.SetupConfiguration(using)
}
