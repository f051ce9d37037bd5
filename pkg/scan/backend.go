package scan

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Backend uint8

const (
	BackendAuto  = Backend(0)
	BackendNmcli = Backend(1)
	BackendIw    = Backend(2)
	BackendNetsh = Backend(3)
	BackendDemo  = Backend(4)
)

var (
	AllBackends = Backends{
		BackendAuto,
		BackendNmcli,
		BackendIw,
		BackendNetsh,
		BackendDemo,
	}
)

func (this *Backend) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "", "auto":
		*this = BackendAuto
		return nil
	case "nmcli":
		*this = BackendNmcli
		return nil
	case "iw":
		*this = BackendIw
		return nil
	case "netsh":
		*this = BackendNetsh
		return nil
	case "demo":
		*this = BackendDemo
		return nil
	default:
		return fmt.Errorf("illegal-scan-backend: %s", plain)
	}
}

func (this Backend) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-scan-backend-%d", this)
	}
	return string(v)
}

func (this Backend) MarshalText() (text []byte, err error) {
	switch this {
	case BackendAuto:
		return []byte("auto"), nil
	case BackendNmcli:
		return []byte("nmcli"), nil
	case BackendIw:
		return []byte("iw"), nil
	case BackendNetsh:
		return []byte("netsh"), nil
	case BackendDemo:
		return []byte("demo"), nil
	default:
		return nil, fmt.Errorf("illegal scan backend: %d", this)
	}
}

func (this *Backend) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Backends []Backend

func (this Backends) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Backends) String() string {
	return strings.Join(this.Strings(), ",")
}

// NewScanner resolves the configured backend to a concrete scanner.
// BackendAuto picks the first backend whose tooling is present on this
// system.
func NewScanner(conf *Configuration) (Scanner, error) {
	backend := conf.Backend
	if backend == BackendAuto {
		backend = detectBackend()
	}

	switch backend {
	case BackendNmcli:
		return &nmcliScanner{conf: conf}, nil
	case BackendIw:
		return &iwScanner{conf: conf}, nil
	case BackendNetsh:
		return &netshScanner{conf: conf}, nil
	case BackendDemo:
		return NewDemoScanner(), nil
	default:
		return nil, fmt.Errorf("no usable wifi scan backend found (looked for nmcli, iw and netsh); use --scan.backend=demo to try without hardware")
	}
}

func detectBackend() Backend {
	if runtime.GOOS == "windows" && commandAvailable("netsh") {
		return BackendNetsh
	}
	if commandAvailable("nmcli") {
		return BackendNmcli
	}
	if commandAvailable("iw") {
		return BackendIw
	}
	return BackendAuto
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
