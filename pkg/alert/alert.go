package alert

// Output delivers events to one surface: speech, tray icon, smart
// lights or a home automation system.
type Output interface {
	// Notify delivers one event. Implementations should return quickly;
	// slow deliveries have to be queued internally.
	Notify(Event) error
	Dispose() error

	GetType() Type
}
