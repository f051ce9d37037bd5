package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	_ "github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
	"github.com/getlantern/systray"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	st "github.com/sentrylabs/wifi-sentry/pkg/alert/systray"
	"github.com/sentrylabs/wifi-sentry/pkg/announce"
	"github.com/sentrylabs/wifi-sentry/pkg/app"
	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

func main() {
	wf := &writerFacade{delegates: []io.Writer{os.Stdout}}
	buf := common.NewRingLineBuffer(2000, 4096)
	buf.TruncateTooLongLines = true
	consumer.Default = consumer.NewWriter(wf)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()
	a.OtherOutputs = []alert.Output{&st.Systray{
		IconIdle:  sentryIdleIcon,
		IconAlert: sentryAlertIcon,
	}}

	var silent bool

	cmd := kingpin.New(os.Args[0], "").
		Action(func(*kingpin.ParseContext) error {
			if silent {
				a.SpeechEngine = &announce.Recorder{OnSpeak: func(text string) {
					log.With("text", text).Info("Announcement suppressed.")
				}}
			}
			if err := a.Initialize(); err != nil {
				return err
			}
			systray.Run(func() {
				defer func() { _ = a.Dispose() }()

				systray.SetIcon(sentryIdleIcon)
				systray.SetTitle("Wifi sentry")
				pauseMi := systray.AddMenuItem("Pause scanning", "Suspends scanning until resumed.")
				reportMi := systray.AddMenuItem("Save report", "Writes the recent log lines to a file.")
				quitMi := systray.AddMenuItem("Exit", "Exit the wifi sentry.")

				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()

				go func() {
					c := make(chan os.Signal, 1)
					signal.Notify(c, os.Interrupt, syscall.SIGTERM)
					for {
						select {
						case <-pauseMi.ClickedCh:
							if a.IsPaused() {
								a.SetPaused(false)
								pauseMi.SetTitle("Pause scanning")
								pauseMi.SetTooltip("Suspends scanning until resumed.")
							} else {
								a.SetPaused(true)
								pauseMi.SetTitle("Resume scanning")
								pauseMi.SetTooltip("Resumes the suspended scanning.")
							}
						case <-reportMi.ClickedCh:
							saveReport(buf)
						case <-c:
							log.Info("Terminated. Going down...")
							cancel()
						case <-quitMi.ClickedCh:
							log.Info("Exit clicked. Going down...")
							cancel()
						}
					}
				}()

				wf.set([]io.Writer{buf})
				_ = a.Run(ctx)
				os.Exit(0)
			}, nil)
			return nil
		})
	a.SetupConfiguration(cmd)

	cmd.Flag("silent", "Log announcements instead of speaking them.").
		BoolVar(&silent)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("always").
		SetValue(lv.Consumer.Formatter.ColorMode)

	kingpin.MustParse(cmd.Parse(os.Args[1:]))
}

func saveReport(buf *common.RingLineBuffer) {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	fn := filepath.Join(dir, fmt.Sprintf("wifi-sentry-report-%s.log", time.Now().Format("20060102-150405")))

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.WithError(err).
			Warn("Cannot create report file.")
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := buf.WriteTo(f); err != nil {
		log.WithError(err).
			With("file", fn).
			Warn("Cannot write report file.")
		return
	}

	log.With("file", fn).Info("Report saved.")
}

type writerFacade struct {
	delegates []io.Writer
	mutex     sync.RWMutex
}

func (this *writerFacade) Write(p []byte) (n int, err error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	for i, w := range this.delegates {
		var nn int
		if nn, err = w.Write(p); err != nil {
			return n, err
		}
		if i == 0 {
			n = nn
		} else if n != nn {
			return n, fmt.Errorf("the previous writer wrote %d, but the current one wrote %d bytes", nn, n)
		}
	}

	return
}

func (this *writerFacade) set(next []io.Writer, whileChange ...func(current, next []io.Writer)) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	current := this.delegates
	for _, fn := range whileChange {
		fn(current, next)
	}
	this.delegates = next
}

var (
	//go:embed assets/sentry-idle.png
	sentryIdleIcon []byte
	//go:embed assets/sentry-alert.png
	sentryAlertIcon []byte
)
