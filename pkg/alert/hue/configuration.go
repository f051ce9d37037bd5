package hue

import (
	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,
		"",
		"",

		common.Regexp{},
		Kinds{KindLight},
	}
}

type Configuration struct {
	Pair   bool   `yaml:"pair,omitempty"`
	Bridge string `yaml:"bridge,omitempty"`
	User   string `yaml:"user,omitempty"`

	// Name restricts which lights or groups are flashed. Empty matches
	// everything.
	Name  common.Regexp `yaml:"name,omitempty"`
	Kinds Kinds         `yaml:"kinds,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("hue.pair", "Force a new pairing with the hue bridge on startup.").
		Envar("WS_HUE_PAIR").
		BoolVar(&this.Pair)
	using.Flag("hue.bridge", "Host of the hue bridge. Discovered automatically if empty.").
		Envar("WS_HUE_BRIDGE").
		StringVar(&this.Bridge)
	using.Flag("hue.user", "User to access the hue bridge with.").
		Envar("WS_HUE_USER").
		StringVar(&this.User)
	using.Flag("hue.name", "Only lights/groups with matching names are flashed on visitors.").
		Envar("WS_HUE_NAME").
		SetValue(&this.Name)
	using.Flag("hue.kinds", "Which kinds of hue targets to flash. All possible values: "+AllKinds.String()).
		Envar("WS_HUE_KINDS").
		SetValue(&this.Kinds)
}
