package scan

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// iwScanner triggers an active scan via `iw dev <iface> scan`. This
// requires CAP_NET_ADMIN or root.
type iwScanner struct {
	conf *Configuration

	iface string
}

func (this *iwScanner) Scan(ctx context.Context) ([]Station, error) {
	if this.iface == "" {
		this.iface = this.conf.Interface
	}
	if this.iface == "" {
		this.iface = detectWirelessInterface()
	}

	ctx, cancel := context.WithTimeout(ctx, this.conf.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "iw", "dev", this.iface, "scan")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("cannot scan via iw on %q: %w (this usually requires root or CAP_NET_ADMIN)", this.iface, err)
	}

	return parseIwOutput(string(out)), nil
}

// parseIwOutput parses the BSS blocks of `iw dev <iface> scan`.
func parseIwOutput(output string) []Station {
	var result []Station

	scanner := bufio.NewScanner(strings.NewReader(output))

	var current *Station
	flush := func() {
		if current != nil && isValidBSSID(current.BSSID) {
			result = append(result, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		// New BSS block: "BSS aa:bb:cc:dd:ee:ff(on wlan0)"
		if strings.HasPrefix(line, "BSS ") {
			flush()
			bssid := strings.TrimPrefix(line, "BSS ")
			if idx := strings.IndexByte(bssid, '('); idx >= 0 {
				bssid = bssid[:idx]
			}
			current = &Station{BSSID: normalizeBSSID(bssid)}
			continue
		}

		if current == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		// Attribute lines inside capability blocks carry a "* " bullet.
		trimmed = strings.TrimPrefix(trimmed, "* ")
		switch {
		case strings.HasPrefix(trimmed, "SSID: "):
			current.SSID = strings.TrimPrefix(trimmed, "SSID: ")
		case strings.HasPrefix(trimmed, "freq: "):
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "freq: ")); err == nil {
				current.Frequency = v
			}
		case strings.HasPrefix(trimmed, "signal: "):
			sigStr := strings.TrimPrefix(trimmed, "signal: ")
			sigStr = strings.TrimSpace(strings.TrimSuffix(sigStr, " dBm"))
			if v, err := strconv.ParseFloat(sigStr, 64); err == nil {
				current.Signal = signalPercentFromDbm(v)
			}
		case strings.HasPrefix(trimmed, "DS Parameter set: channel "):
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "DS Parameter set: channel ")); err == nil {
				current.Channel = v
			}
		case strings.HasPrefix(trimmed, "primary channel: ") && current.Channel == 0:
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "primary channel: ")); err == nil {
				current.Channel = v
			}
		}
	}
	flush()

	return result
}
