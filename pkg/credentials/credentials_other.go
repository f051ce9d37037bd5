//go:build !windows

package credentials

import (
	"fmt"
	"os"
	"path/filepath"
)

// Outside of Windows the credentials live in a mode 0600 JSON file next
// to the configuration.
func (this *Credentials) ReadFromStore() (supported bool, err error) {
	fn, err := defaultCredentialsFile()
	if err != nil {
		return false, err
	}

	b, err := os.ReadFile(fn)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read credentials file %q: %w", fn, err)
	}

	var buf Credentials
	if err := buf.UnmarshalBinary(b); err != nil {
		return false, fmt.Errorf("cannot unmarshal credentials file %q: %w", fn, err)
	}

	*this = buf
	return true, nil
}

func (this *Credentials) WriteToStore() (supported bool, err error) {
	fn, err := defaultCredentialsFile()
	if err != nil {
		return false, err
	}

	b, err := this.MarshalBinary()
	if err != nil {
		return false, fmt.Errorf("cannot marshal credentials to JSON: %w", err)
	}

	_ = os.MkdirAll(filepath.Dir(fn), 0700)
	if err := os.WriteFile(fn, b, 0600); err != nil {
		return false, fmt.Errorf("cannot write credentials file %q: %w", fn, err)
	}

	return true, nil
}

func defaultCredentialsFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user configuration directory: %w", err)
	}
	return filepath.Join(dir, "wifi-sentry", "credentials.json"), nil
}
