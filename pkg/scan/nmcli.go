package scan

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// nmcliScanner reads the NetworkManager view of nearby access points. It
// works without elevated permissions and NetworkManager rescans on its
// own, so no explicit rescan is triggered here.
type nmcliScanner struct {
	conf *Configuration
}

func (this *nmcliScanner) Scan(ctx context.Context) ([]Station, error) {
	ctx, cancel := context.WithTimeout(ctx, this.conf.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "BSSID,SSID,FREQ,CHAN,SIGNAL", "dev", "wifi", "list")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("cannot scan via nmcli: %w", err)
	}

	return parseNmcliOutput(string(out)), nil
}

// parseNmcliOutput parses nmcli terse output. Format per line:
// BSSID:SSID:FREQ:CHAN:SIGNAL, where literal colons inside values are
// escaped as \:.
func parseNmcliOutput(output string) []Station {
	var result []Station

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		const placeholder = "\x00"
		escaped := strings.ReplaceAll(line, `\:`, placeholder)
		parts := strings.Split(escaped, ":")
		for i := range parts {
			parts[i] = strings.ReplaceAll(parts[i], placeholder, ":")
		}

		if len(parts) < 5 {
			continue
		}

		bssid := normalizeBSSID(parts[0])
		if !isValidBSSID(bssid) {
			continue
		}

		freq, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[2]), " MHz"))
		channel, _ := strconv.Atoi(strings.TrimSpace(parts[3]))

		signal := 0
		if v, err := strconv.Atoi(strings.TrimSpace(parts[4])); err == nil {
			signal = v
		}

		result = append(result, Station{
			BSSID:     bssid,
			SSID:      strings.TrimSpace(parts[1]),
			Signal:    signal,
			Frequency: freq,
			Channel:   channel,
		})
	}

	return result
}
