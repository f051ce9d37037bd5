//go:build windows

package app

import (
	"os"
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
	if appData := os.Getenv("APPDATA"); appData != "" {
		fs, err := os.Stat(appData)
		if err == nil && fs.IsDir() {
			return filepath.Join(appData, "wifi-sentry")
		}
	}

	u, err := user.Current()
	if err != nil {
		return "."
	}

	return filepath.Join(u.HomeDir, ".config", "wifi-sentry")
}
