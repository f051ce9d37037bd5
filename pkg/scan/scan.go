package scan

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Station is one wireless access point observed during a scan.
type Station struct {
	// BSSID is the hardware address of the station, upper-cased.
	BSSID string
	// SSID is the advertised network name. May be empty for hidden networks.
	SSID string
	// Signal is the received signal strength in percent (0..100).
	Signal int
	// Frequency in MHz, zero if the backend does not report it.
	Frequency int
	// Channel number, zero if the backend does not report it.
	Channel int
}

func (this Station) String() string {
	if this.SSID == "" {
		return this.BSSID
	}
	return fmt.Sprintf("%s (%s)", this.SSID, this.BSSID)
}

// Scanner returns the currently visible stations. An empty result is not
// an error; it simply means nothing was observed this cycle.
type Scanner interface {
	Scan(ctx context.Context) ([]Station, error)
}

var macPattern = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)

func isValidBSSID(candidate string) bool {
	return macPattern.MatchString(candidate)
}

func normalizeBSSID(candidate string) string {
	return strings.ToUpper(strings.TrimSpace(candidate))
}

// signalPercentFromDbm converts a dBm reading to the 0..100 percent scale
// used across the application. -100dBm maps to 0%, -30dBm and above to 100%.
func signalPercentFromDbm(dbm float64) int {
	pct := int((dbm + 100) * 100 / 70)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
