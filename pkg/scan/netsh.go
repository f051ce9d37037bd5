package scan

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// netshScanner uses `netsh wlan show networks mode=Bssid` on Windows.
type netshScanner struct {
	conf *Configuration
}

func (this *netshScanner) Scan(ctx context.Context) ([]Station, error) {
	ctx, cancel := context.WithTimeout(ctx, this.conf.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "netsh", "wlan", "show", "networks", "mode=Bssid")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("cannot scan via netsh: %w", err)
	}

	return parseNetshOutput(string(out)), nil
}

// parseNetshOutput parses the block structure of netsh. Every "SSID <n> :"
// line starts a network, every "BSSID <n>" line below it one station of
// that network; Signal and Channel lines apply to the most recent BSSID.
func parseNetshOutput(output string) []Station {
	var result []Station

	var currentSSID string
	var current *Station
	flush := func() {
		if current != nil && isValidBSSID(current.BSSID) {
			result = append(result, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		key, value, ok := splitNetshLine(line)
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(key, "SSID "):
			flush()
			currentSSID = value
		case strings.HasPrefix(key, "BSSID "):
			flush()
			current = &Station{
				BSSID: normalizeBSSID(value),
				SSID:  currentSSID,
			}
		case key == "Signal" && current != nil:
			if v, err := strconv.Atoi(strings.TrimSuffix(value, "%")); err == nil {
				current.Signal = v
			}
		case key == "Channel" && current != nil:
			if v, err := strconv.Atoi(value); err == nil {
				current.Channel = v
			}
		}
	}
	flush()

	return result
}

func splitNetshLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
