package systray

import (
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
)

// Systray mirrors the last event into the tray icon and its tooltip. The
// icon falls back to the idle variant once an alert went stale.
type Systray struct {
	IconIdle  []byte
	IconAlert []byte

	// HoldAlert defines how long the alert icon stays before falling back.
	HoldAlert time.Duration

	reset *time.Timer
	mutex sync.Mutex
}

func (this *Systray) Initialize() error {
	if len(this.IconIdle) == 0 {
		return fmt.Errorf("IconIdle is empty")
	}
	if len(this.IconAlert) == 0 {
		return fmt.Errorf("IconAlert is empty")
	}
	if this.HoldAlert <= 0 {
		this.HoldAlert = time.Minute
	}
	return nil
}

func (this *Systray) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.reset != nil {
		this.reset.Stop()
		this.reset = nil
	}
	return nil
}

func (this *Systray) Notify(event alert.Event) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	switch event.Kind {
	case alert.KindWatching:
		systray.SetIcon(this.IconIdle)
		systray.SetTooltip(event.Message)
	case alert.KindUnknownVisitor, alert.KindKnownVisitor:
		systray.SetIcon(this.IconAlert)
		systray.SetTooltip(fmt.Sprintf("%s\n%s", event.Message, event.At.Format("15:04:05")))
		this.scheduleReset()
	default:
		systray.SetTooltip(event.Message)
	}
	return nil
}

func (this *Systray) scheduleReset() {
	if this.reset != nil {
		this.reset.Stop()
	}
	this.reset = time.AfterFunc(this.HoldAlert, func() {
		systray.SetIcon(this.IconIdle)
	})
}

func (this *Systray) GetType() alert.Type {
	return alert.TypeSystray
}
