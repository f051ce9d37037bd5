package prompt

import (
	"context"

	"github.com/sentrylabs/wifi-sentry/pkg/scan"
)

// Scripted answers questions from fixed maps. Used by tests.
type Scripted struct {
	// Homes maps BSSIDs to home confirmations.
	Homes map[string]bool
	// Names maps BSSIDs to display names; missing entries count as
	// declined.
	Names map[string]string
}

func (this *Scripted) ConfirmHome(_ context.Context, station scan.Station) (bool, error) {
	return this.Homes[station.BSSID], nil
}

func (this *Scripted) RequestName(_ context.Context, station scan.Station) (string, error) {
	return this.Names[station.BSSID], nil
}
