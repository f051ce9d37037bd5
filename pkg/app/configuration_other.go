//go:build !windows

package app

import (
	"os/user"
	"path/filepath"
)

func defaultConfigurationFile() string {
	return filepath.Join(defaultConfigurationDir(), "configuration.yml")
}

func defaultDatabaseFile() string {
	return filepath.Join(defaultConfigurationDir(), "signals.db")
}

func defaultConfigurationDir() string {
	u, err := user.Current()
	if err != nil {
		return "."
	}

	return filepath.Join(u.HomeDir, ".config", "wifi-sentry")
}
