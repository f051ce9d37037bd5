package registry

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	_ "github.com/mattn/go-sqlite3"
)

// Registry is the persisted collection of all signals ever observed. The
// full content is held in memory; every mutation is written through to
// SQLite before the mutating call returns. A failed write is not fatal:
// the record is kept dirty and retried on the next mutation and on Flush.
type Registry struct {
	db *sql.DB

	records map[string]*Record
	dirty   map[string]struct{}
	mutex   sync.RWMutex
}

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	identifier        TEXT PRIMARY KEY,
	ssid              TEXT NOT NULL DEFAULT '',
	display_name      TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT 'unknown',
	first_seen        DATETIME NOT NULL,
	last_seen         DATETIME NOT NULL,
	last_announced_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_signals_category ON signals(category);
`

func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open signal registry %q: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot initialize signal registry %q: %w", path, err)
	}

	result := &Registry{
		db:      db,
		records: make(map[string]*Record),
		dirty:   make(map[string]struct{}),
	}
	if err := result.load(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return result, nil
}

func (this *Registry) load() error {
	rows, err := this.db.Query(
		`SELECT identifier, ssid, display_name, category, first_seen, last_seen, last_announced_at
		 FROM signals`,
	)
	if err != nil {
		return fmt.Errorf("cannot load signal registry: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var record Record
		var category string
		var lastAnnounced sql.NullTime
		if err := rows.Scan(
			&record.Identifier, &record.SSID, &record.DisplayName, &category,
			&record.FirstSeen, &record.LastSeen, &lastAnnounced,
		); err != nil {
			return fmt.Errorf("cannot load signal registry: %w", err)
		}
		if err := record.Category.Set(category); err != nil {
			log.With("identifier", record.Identifier).
				With("category", category).
				Warn("Signal with illegal category in registry; treating as unknown.")
		}
		if lastAnnounced.Valid {
			record.LastAnnouncedAt = lastAnnounced.Time
		}
		this.records[record.Identifier] = &record
	}

	return rows.Err()
}

// Get returns a copy of the record for the given identifier.
func (this *Registry) Get(identifier string) (Record, bool) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if v, ok := this.records[identifier]; ok {
		return *v, true
	}
	return Record{}, false
}

// All returns copies of all records, ordered by first observation.
func (this *Registry) All() []Record {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	result := make([]Record, 0, len(this.records))
	for _, v := range this.records {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FirstSeen.Equal(result[j].FirstSeen) {
			return result[i].Identifier < result[j].Identifier
		}
		return result[i].FirstSeen.Before(result[j].FirstSeen)
	})
	return result
}

func (this *Registry) Len() int {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return len(this.records)
}

// Create stores a newly observed signal. It is a no-op if the identifier
// already exists.
func (this *Registry) Create(identifier, ssid string, category Category, now time.Time) Record {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if existing, ok := this.records[identifier]; ok {
		return *existing
	}

	record := &Record{
		Identifier: identifier,
		SSID:       ssid,
		Category:   category,
		FirstSeen:  now,
		LastSeen:   now,
	}
	this.records[identifier] = record
	this.persist(record)
	return *record
}

// Observe updates the last-seen timestamp and the advertised SSID of an
// existing record.
func (this *Registry) Observe(identifier, ssid string, now time.Time) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	record, ok := this.records[identifier]
	if !ok {
		return
	}
	record.LastSeen = now
	if ssid != "" {
		record.SSID = ssid
	}
	this.persist(record)
}

// SetDisplayName names a signal. Naming moves an unknown signal to the
// known category and clears the announcement stamp, so the next
// observation announces it under its new name.
func (this *Registry) SetDisplayName(identifier, name string, now time.Time) (Record, bool) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	record, ok := this.records[identifier]
	if !ok {
		return Record{}, false
	}
	record.DisplayName = name
	if record.Category == CategoryUnknown {
		record.Category = CategoryKnown
	}
	record.LastAnnouncedAt = time.Time{}
	record.LastSeen = now
	this.persist(record)
	return *record, true
}

// MarkHome confirms a signal as belonging to this household. Home signals
// are permanently exempt from announcements and from re-prompting.
func (this *Registry) MarkHome(identifier, ssid string, now time.Time) Record {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	record, ok := this.records[identifier]
	if !ok {
		record = &Record{
			Identifier: identifier,
			SSID:       ssid,
			FirstSeen:  now,
		}
		this.records[identifier] = record
	}
	record.Category = CategoryHome
	record.LastSeen = now
	this.persist(record)
	return *record
}

// StampAnnounced records that the signal was announced at the given time.
func (this *Registry) StampAnnounced(identifier string, now time.Time) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	record, ok := this.records[identifier]
	if !ok {
		return
	}
	record.LastAnnouncedAt = now
	record.LastSeen = now
	this.persist(record)
}

// CountSeenSince counts records of the given category observed since the
// given time.
func (this *Registry) CountSeenSince(category Category, since time.Time) int {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	result := 0
	for _, v := range this.records {
		if v.Category == category && !v.LastSeen.Before(since) {
			result++
		}
	}
	return result
}

// persist writes one record through to SQLite. Dirty records of earlier
// failed writes are retried first. Callers must hold the write lock.
func (this *Registry) persist(record *Record) {
	for identifier := range this.dirty {
		if identifier == record.Identifier {
			continue
		}
		if stale, ok := this.records[identifier]; ok {
			if err := this.upsert(stale); err != nil {
				log.WithError(err).
					With("identifier", identifier).
					Warn("Still cannot persist signal; will retry on the next change.")
				continue
			}
		}
		delete(this.dirty, identifier)
	}

	if err := this.upsert(record); err != nil {
		this.dirty[record.Identifier] = struct{}{}
		log.WithError(err).
			With("identifier", record.Identifier).
			Warn("Cannot persist signal; it stays in memory and will be retried on the next change.")
		return
	}
	delete(this.dirty, record.Identifier)
}

func (this *Registry) upsert(record *Record) error {
	var lastAnnounced any
	if !record.LastAnnouncedAt.IsZero() {
		lastAnnounced = record.LastAnnouncedAt
	}

	_, err := this.db.Exec(
		`INSERT INTO signals (identifier, ssid, display_name, category, first_seen, last_seen, last_announced_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(identifier) DO UPDATE SET
			ssid = excluded.ssid,
			display_name = excluded.display_name,
			category = excluded.category,
			last_seen = excluded.last_seen,
			last_announced_at = excluded.last_announced_at`,
		record.Identifier, record.SSID, record.DisplayName, record.Category.String(),
		record.FirstSeen, record.LastSeen, lastAnnounced,
	)
	return err
}

// Flush retries all records that could not be written so far.
func (this *Registry) Flush() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for identifier := range this.dirty {
		record, ok := this.records[identifier]
		if !ok {
			delete(this.dirty, identifier)
			continue
		}
		if err := this.upsert(record); err != nil {
			return fmt.Errorf("cannot flush signal %q: %w", identifier, err)
		}
		delete(this.dirty, identifier)
	}
	return nil
}

func (this *Registry) Close() (rErr error) {
	if err := this.Flush(); err != nil {
		rErr = err
	}
	if err := this.db.Close(); err != nil && rErr == nil {
		rErr = err
	}
	return
}
