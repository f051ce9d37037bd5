package sentry

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/prompt"
	"github.com/sentrylabs/wifi-sentry/pkg/registry"
	"github.com/sentrylabs/wifi-sentry/pkg/scan"
)

const unknownWarning = "Visitor Approaching. Unknown signal detected. Warning. Warning"

// RequestSink receives the questions the classifier wants answered
// without blocking it. Usually a *prompt.Service.
type RequestSink interface {
	Submit(prompt.Request)
}

// Classifier decides for every scan result whether to stay silent,
// announce a visitor, or treat a signal as part of the home. It owns all
// mutations of the registry; Initialize, Evaluate, ApplyReply and
// CheckDepartures must be called from one goroutine.
type Classifier struct {
	conf     *Configuration
	registry *registry.Registry
	requests RequestSink

	lastObserved map[string]time.Time

	// randIntN is replaceable for deterministic tests.
	randIntN func(int) int
}

func New(conf *Configuration, reg *registry.Registry, requests RequestSink) *Classifier {
	return &Classifier{
		conf:         conf,
		registry:     reg,
		requests:     requests,
		lastObserved: make(map[string]time.Time),
		randIntN:     rand.Intn,
	}
}

// Initialize handles scans during the setup window: every newly seen
// signal is offered to the user as a potential home signal. Nothing is
// announced here. A no-op on empty input or outside the window.
func (this *Classifier) Initialize(stations []scan.Station, elapsedSinceStart time.Duration) {
	if len(stations) == 0 || elapsedSinceStart > this.conf.SetupWindow {
		return
	}

	now := time.Now()
	for _, station := range this.relevant(stations) {
		if _, ok := this.registry.Get(station.BSSID); ok {
			// Already decided in an earlier run; home signals especially
			// are never offered again.
			this.registry.Observe(station.BSSID, station.SSID, now)
			continue
		}
		this.requests.Submit(prompt.Request{
			Kind:    prompt.KindHomeConfirmation,
			Station: station,
		})
	}
}

// Evaluate classifies one scan batch and returns the events to deliver.
// Every registry change is persisted before this returns.
func (this *Classifier) Evaluate(stations []scan.Station, now time.Time) []alert.Event {
	var result []alert.Event

	for _, station := range this.relevant(stations) {
		this.lastObserved[station.BSSID] = now

		record, ok := this.registry.Get(station.BSSID)
		if !ok {
			result = append(result, this.onFirstObservation(station, now))
			continue
		}

		if record.Category == registry.CategoryHome {
			this.registry.Observe(station.BSSID, station.SSID, now)
			continue
		}

		this.registry.Observe(station.BSSID, station.SSID, now)
		if !this.cooledDown(&record, now) {
			continue
		}

		switch record.Category {
		case registry.CategoryKnown:
			result = append(result, this.onKnownVisitor(&record, station, now))
		case registry.CategoryUnknown:
			result = append(result, this.onUnknownAgain(station, now))
		}
	}

	return result
}

func (this *Classifier) onFirstObservation(station scan.Station, now time.Time) alert.Event {
	this.registry.Create(station.BSSID, station.SSID, registry.CategoryUnknown, now)
	this.registry.StampAnnounced(station.BSSID, now)
	this.requests.Submit(prompt.Request{
		Kind:    prompt.KindName,
		Station: station,
	})

	log.With("station", station).
		Info("Unknown signal detected.")

	return alert.Event{
		Kind:       alert.KindUnknownVisitor,
		Identifier: station.BSSID,
		Message:    this.unknownMessage(station),
		Signal:     station.Signal,
		At:         now,
	}
}

func (this *Classifier) onUnknownAgain(station scan.Station, now time.Time) alert.Event {
	this.registry.StampAnnounced(station.BSSID, now)
	// The user declined to name it so far; ask again, the prompt service
	// collapses duplicates while one question is still open.
	this.requests.Submit(prompt.Request{
		Kind:    prompt.KindName,
		Station: station,
	})

	return alert.Event{
		Kind:       alert.KindUnknownVisitor,
		Identifier: station.BSSID,
		Message:    this.unknownMessage(station),
		Signal:     station.Signal,
		At:         now,
	}
}

func (this *Classifier) onKnownVisitor(record *registry.Record, station scan.Station, now time.Time) alert.Event {
	this.registry.StampAnnounced(station.BSSID, now)

	log.With("station", station).
		With("name", record.DisplayName).
		Info("Known visitor detected.")

	return alert.Event{
		Kind:        alert.KindKnownVisitor,
		Identifier:  station.BSSID,
		DisplayName: record.DisplayName,
		Message:     fmt.Sprintf("Visitor approaching. %s is %s.", record.DisplayName, this.welcomePhrase()),
		Signal:      station.Signal,
		At:          now,
	}
}

func (this *Classifier) cooledDown(record *registry.Record, now time.Time) bool {
	if record.LastAnnouncedAt.IsZero() {
		return true
	}
	return now.Sub(record.LastAnnouncedAt) > this.conf.Cooldown
}

func (this *Classifier) unknownMessage(station scan.Station) string {
	if this.conf.ProximityThreshold > 0 && station.Signal > this.conf.ProximityThreshold {
		return unknownWarning + ". Signal is very close by."
	}
	return unknownWarning
}

// ApplyReply folds an answered question back into the registry.
func (this *Classifier) ApplyReply(reply prompt.Reply, now time.Time) []alert.Event {
	switch reply.Kind {
	case prompt.KindHomeConfirmation:
		if !reply.Confirmed {
			return nil
		}
		this.registry.MarkHome(reply.Identifier, reply.SSID, now)
		log.With("identifier", reply.Identifier).
			Info("Signal confirmed as home; it will never be announced.")
		return nil

	case prompt.KindName:
		if reply.Name == "" {
			return nil
		}
		record, ok := this.registry.SetDisplayName(reply.Identifier, reply.Name, now)
		if !ok {
			return nil
		}
		return []alert.Event{{
			Kind:        alert.KindNamed,
			Identifier:  record.Identifier,
			DisplayName: record.DisplayName,
			Message:     fmt.Sprintf("Signal named %s.", record.DisplayName),
			At:          now,
		}}

	default:
		return nil
	}
}

// CheckDepartures emits events for named signals that went out of range.
func (this *Classifier) CheckDepartures(now time.Time) []alert.Event {
	if !this.conf.AnnounceDepartures {
		return nil
	}

	var result []alert.Event
	for identifier, lastSeen := range this.lastObserved {
		if now.Sub(lastSeen) <= this.conf.DepartureTimeout {
			continue
		}
		delete(this.lastObserved, identifier)

		record, ok := this.registry.Get(identifier)
		if !ok || record.Category != registry.CategoryKnown || record.DisplayName == "" {
			continue
		}
		result = append(result, alert.Event{
			Kind:        alert.KindDeparture,
			Identifier:  identifier,
			DisplayName: record.DisplayName,
			Message:     fmt.Sprintf("%s has left the area.", record.DisplayName),
			At:          now,
		})
	}
	return result
}

// Summary builds the scheduled presence summary.
func (this *Classifier) Summary(now time.Time) alert.Event {
	count := this.registry.CountSeenSince(registry.CategoryKnown, now.Add(-24*time.Hour))
	noun := "visitors"
	if count == 1 {
		noun = "visitor"
	}
	return alert.Event{
		Kind:    alert.KindSummary,
		Message: fmt.Sprintf("Sentry summary. %d known %s seen in the last day.", count, noun),
		At:      now,
	}
}

// relevant deduplicates a batch and applies the SSID filters.
func (this *Classifier) relevant(stations []scan.Station) []scan.Station {
	seen := make(map[string]struct{}, len(stations))
	result := make([]scan.Station, 0, len(stations))
	for _, station := range stations {
		if station.BSSID == "" {
			continue
		}
		if _, ok := seen[station.BSSID]; ok {
			continue
		}
		seen[station.BSSID] = struct{}{}

		if v := this.conf.IncludedNetworks; v.HasContent() {
			if !v.MatchString(station.SSID) {
				continue
			}
		}
		if v := this.conf.ExcludedNetworks; v.HasContent() {
			if v.MatchString(station.SSID) {
				continue
			}
		}

		result = append(result, station)
	}
	return result
}
