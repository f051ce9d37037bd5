package prompt

import (
	"context"
	"fmt"

	"github.com/sentrylabs/wifi-sentry/pkg/scan"
)

type Kind uint8

const (
	KindHomeConfirmation = Kind(0)
	KindName             = Kind(1)
)

func (this Kind) String() string {
	switch this {
	case KindHomeConfirmation:
		return "homeConfirmation"
	case KindName:
		return "name"
	default:
		return fmt.Sprintf("illegal-prompt-kind-%d", this)
	}
}

// Request asks the user one question about a station. Requests are
// emitted by the classifier and serviced asynchronously so the scan loop
// never blocks on user input.
type Request struct {
	Kind    Kind
	Station scan.Station
}

// Reply carries the user's answer back to the scan loop.
type Reply struct {
	Kind       Kind
	Identifier string
	SSID       string

	// Confirmed is set for home confirmations the user accepted.
	Confirmed bool
	// Name is the supplied display name; empty if the user declined.
	Name string
}

// Prompter asks one question at a time. Implementations decide how: on
// the console, in a dialog, or scripted in tests.
type Prompter interface {
	// ConfirmHome asks whether the station belongs to the user's own home.
	ConfirmHome(ctx context.Context, station scan.Station) (bool, error)
	// RequestName asks for a display name. An empty result means the user
	// declined.
	RequestName(ctx context.Context, station scan.Station) (string, error)
}
