package app

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"dario.cat/mergo"
	log "github.com/echocat/slf4g"
	"github.com/robfig/cron/v3"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/alert/facade"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
	"github.com/sentrylabs/wifi-sentry/pkg/common"
	"github.com/sentrylabs/wifi-sentry/pkg/prompt"
	"github.com/sentrylabs/wifi-sentry/pkg/registry"
	"github.com/sentrylabs/wifi-sentry/pkg/scan"
	"github.com/sentrylabs/wifi-sentry/pkg/sentry"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

type App struct {
	Alerts            facade.Facade
	OtherOutputs      []alert.Output
	ConfigurationFile string

	// SpeechEngine overrides engine auto-detection; used for silent runs
	// and tests.
	SpeechEngine announce.Engine

	configFromFlags Configuration
	config          Configuration

	registry   *registry.Registry
	scanner    scan.Scanner
	classifier *sentry.Classifier
	prompts    *prompt.Service
	schedule   *cron.Cron

	paused    atomic.Bool
	startedAt time.Time
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		StringVar(&this.ConfigurationFile)
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	if fn := this.ConfigurationFile; fn != "" {
		if err := this.config.loadFromFile(fn, false); err != nil {
			return err
		}
	} else if err := this.config.loadDefault(true); err != nil {
		return err
	}
	if err := mergo.Merge(&this.config, this.configFromFlags); err != nil {
		return err
	}

	dbFile := this.config.DatabaseFile
	if dbFile == "" {
		dbFile = defaultDatabaseFile()
	}
	reg, err := registry.Open(dbFile)
	if err != nil {
		return err
	}
	this.registry = reg

	scanner, err := scan.NewScanner(&this.config.Scan)
	if err != nil {
		return err
	}
	this.scanner = scanner

	this.prompts = prompt.NewService(&this.config.Prompt, prompt.NewReadline(&this.config.Prompt))
	this.classifier = sentry.New(&this.config.Sentry, this.registry, this.prompts)

	if err := this.Alerts.Initialize(&this.config.Alerts, this.alwaysSaveConf, this.SpeechEngine); err != nil {
		return err
	}
	for _, output := range this.OtherOutputs {
		if v, ok := output.(interface{ Initialize() error }); ok {
			if err := v.Initialize(); err != nil {
				return err
			}
		}
		this.Alerts.Register(output)
	}

	if expr := this.config.SummarySchedule; expr != "" {
		this.schedule = cron.New()
		if _, err := this.schedule.AddFunc(expr, func() {
			this.Alerts.Notify(this.classifier.Summary(time.Now()))
		}); err != nil {
			return err
		}
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	success = true
	return nil
}

func (this *App) Run(ctx context.Context) error {
	this.startedAt = time.Now()

	this.prompts.Start(ctx)
	if this.schedule != nil {
		this.schedule.Start()
	}

	this.Alerts.Notify(alert.Event{
		Kind:    alert.KindWatching,
		Message: "Wifi sentry is watching.",
		At:      this.startedAt,
	})

	first := true
	for {
		if first {
			first = false
		} else {
			log.With("interval", this.config.ScanInterval).
				Debug("Wait until the next scan...")
			select {
			case <-ctx.Done():
				log.Debug("Scan loop interrupted.")
				return nil
			case <-time.After(this.config.ScanInterval):
			}
		}

		this.consumeReplies()

		if this.paused.Load() {
			continue
		}

		stations, err := this.scanner.Scan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).
				Error("Cannot scan surroundings.")
			continue
		}

		now := time.Now()
		if elapsed := now.Sub(this.startedAt); elapsed <= this.config.Sentry.SetupWindow {
			this.classifier.Initialize(stations, elapsed)
			continue
		}

		events := this.classifier.Evaluate(stations, now)
		events = append(events, this.classifier.CheckDepartures(now)...)
		for _, event := range events {
			this.Alerts.Notify(event)
		}
	}
}

// consumeReplies drains all answers that arrived since the previous
// scan cycle and folds them into the registry. Never blocks.
func (this *App) consumeReplies() {
	for {
		select {
		case reply := <-this.prompts.Replies():
			for _, event := range this.classifier.ApplyReply(reply, time.Now()) {
				this.Alerts.Notify(event)
			}
		default:
			return
		}
	}
}

// SetPaused suspends or resumes scanning; used by the tray menu.
func (this *App) SetPaused(paused bool) {
	this.paused.Store(paused)
	if paused {
		log.Info("Scanning paused.")
	} else {
		log.Info("Scanning resumed.")
	}
}

func (this *App) IsPaused() bool {
	return this.paused.Load()
}

func (this *App) alwaysSaveConf() error {
	return this.saveConf(true)
}

func (this *App) saveConf(always bool) error {
	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.ConfigurationFile
	if fn == "" {
		fn = defaultConfigurationFile()
	}
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

func (this *App) Dispose() (rErr error) {
	if this.schedule != nil {
		this.schedule.Stop()
	}

	if err := this.Alerts.Dispose(); err != nil && rErr == nil {
		rErr = err
	}

	if this.registry != nil {
		if err := this.registry.Close(); err != nil && rErr == nil {
			rErr = err
		}
		this.registry = nil
	}

	return
}
