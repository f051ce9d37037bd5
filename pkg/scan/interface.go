package scan

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/echocat/slf4g"
	gnet "github.com/shirou/gopsutil/net"
)

// detectWirelessInterface finds the first wireless interface on this host.
// It inspects the interface list first and falls back to `iw dev`.
func detectWirelessInterface() string {
	if v := detectViaInterfaceList(); v != "" {
		return v
	}
	if v := detectViaIwDev(); v != "" {
		return v
	}

	log.Warn("Cannot detect a wireless interface; assuming wlan0.")
	return "wlan0"
}

func detectViaInterfaceList() string {
	interfaces, err := gnet.Interfaces()
	if err != nil {
		log.WithError(err).
			Debug("Cannot enumerate network interfaces.")
		return ""
	}

	for _, candidate := range interfaces {
		if isWirelessInterface(candidate.Name) {
			return candidate.Name
		}
	}
	return ""
}

func isWirelessInterface(name string) bool {
	// Linux exposes a wireless/ directory for wifi capable interfaces.
	if _, err := os.Stat(filepath.Join("/sys/class/net", name, "wireless")); err == nil {
		return true
	}
	return strings.HasPrefix(name, "wl")
}

func detectViaIwDev() string {
	out, err := exec.Command("iw", "dev").Output()
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Interface ") {
			return strings.TrimPrefix(line, "Interface ")
		}
	}
	return ""
}
