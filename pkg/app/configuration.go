package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sentrylabs/wifi-sentry/pkg/alert/facade"
	"github.com/sentrylabs/wifi-sentry/pkg/common"
	"github.com/sentrylabs/wifi-sentry/pkg/prompt"
	"github.com/sentrylabs/wifi-sentry/pkg/scan"
	"github.com/sentrylabs/wifi-sentry/pkg/sentry"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,

		10 * time.Second,
		"",
		"",

		facade.NewConfiguration(),
		sentry.NewConfiguration(),
		scan.NewConfiguration(),
		prompt.NewConfiguration(),
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	ScanInterval time.Duration `yaml:"scanInterval,omitempty"`
	DatabaseFile string        `yaml:"databaseFile,omitempty"`
	// SummarySchedule is a cron expression for the daily presence
	// summary. Empty disables the summary.
	SummarySchedule string `yaml:"summarySchedule,omitempty"`

	Alerts facade.Configuration `yaml:"alerts,omitempty"`
	Sentry sentry.Configuration `yaml:"sentry,omitempty"`
	Scan   scan.Configuration   `yaml:"scan,omitempty"`
	Prompt prompt.Configuration `yaml:"prompt,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("WS_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("scanInterval", "How often the surroundings are scanned.").
		Envar("WS_SCAN_INTERVAL").
		DurationVar(&this.ScanInterval)
	using.Flag("databaseFile", "Where the signal registry is stored.").
		Envar("WS_DATABASE_FILE").
		StringVar(&this.DatabaseFile)
	using.Flag("summarySchedule", "Cron expression for the daily presence summary. Empty disables it.").
		Envar("WS_SUMMARY_SCHEDULE").
		StringVar(&this.SummarySchedule)

	this.Alerts.SetupConfiguration(using)
	this.Sentry.SetupConfiguration(using)
	this.Scan.SetupConfiguration(using)
	this.Prompt.SetupConfiguration(using)
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(this)
}

func (this *Configuration) loadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) loadDefault(ignoreNotFound bool) error {
	return this.loadFromFile(defaultConfigurationFile(), ignoreNotFound)
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(this)
}

func (this *Configuration) saveToFile(fn string) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}

	return nil
}
