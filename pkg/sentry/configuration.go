package sentry

import (
	"time"

	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		time.Minute,
		time.Hour,
		2 * time.Minute,
		true,
		60,

		nil,

		common.Regexp{},
		common.Regexp{},
	}
}

type Configuration struct {
	// SetupWindow is the period after startup during which newly seen
	// signals are offered as home signals instead of being announced.
	SetupWindow time.Duration `yaml:"setupWindow,omitempty"`
	// Cooldown is the minimum interval between repeat announcements of
	// the same signal.
	Cooldown time.Duration `yaml:"cooldown,omitempty"`
	// DepartureTimeout is how long a signal has to stay invisible before
	// it counts as departed.
	DepartureTimeout   time.Duration `yaml:"departureTimeout,omitempty"`
	AnnounceDepartures bool          `yaml:"announceDepartures"`
	// ProximityThreshold is the signal percentage above which an unknown
	// visitor is announced as very close by.
	ProximityThreshold int `yaml:"proximityThreshold,omitempty"`

	// WelcomePhrases overrides the built-in phrases for known visitors.
	WelcomePhrases []string `yaml:"welcomePhrases,omitempty"`

	IncludedNetworks common.Regexp `yaml:"includedNetworks,omitempty"`
	ExcludedNetworks common.Regexp `yaml:"excludedNetworks,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("setupWindow", "Period after startup during which visible signals can be confirmed as home signals.").
		Envar("WS_SETUP_WINDOW").
		DurationVar(&this.SetupWindow)
	using.Flag("cooldown", "Minimum interval between repeat announcements of the same signal.").
		Envar("WS_COOLDOWN").
		DurationVar(&this.Cooldown)
	using.Flag("departureTimeout", "How long a signal has to stay invisible before it counts as departed.").
		Envar("WS_DEPARTURE_TIMEOUT").
		DurationVar(&this.DepartureTimeout)
	using.Flag("announceDepartures", "If departures of named signals should be announced.").
		Envar("WS_ANNOUNCE_DEPARTURES").
		BoolVar(&this.AnnounceDepartures)
	using.Flag("proximityThreshold", "Signal percentage above which an unknown visitor counts as very close by.").
		Envar("WS_PROXIMITY_THRESHOLD").
		IntVar(&this.ProximityThreshold)
	using.Flag("includedNetworks", "Only SSIDs matching this pattern are watched.").
		Envar("WS_INCLUDED_NETWORKS").
		SetValue(&this.IncludedNetworks)
	using.Flag("excludedNetworks", "SSIDs matching this pattern are ignored.").
		Envar("WS_EXCLUDED_NETWORKS").
		SetValue(&this.ExcludedNetworks)
}
