package registry

import (
	"fmt"
	"strings"
	"time"
)

type Category uint8

const (
	CategoryUnknown = Category(0)
	CategoryKnown   = Category(1)
	CategoryHome    = Category(2)
)

var (
	AllCategories = Categories{
		CategoryUnknown,
		CategoryKnown,
		CategoryHome,
	}
)

func (this *Category) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "unknown", "":
		*this = CategoryUnknown
		return nil
	case "known":
		*this = CategoryKnown
		return nil
	case "home":
		*this = CategoryHome
		return nil
	default:
		return fmt.Errorf("illegal-signal-category: %s", plain)
	}
}

func (this Category) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-signal-category-%d", this)
	}
	return string(v)
}

func (this Category) MarshalText() (text []byte, err error) {
	switch this {
	case CategoryUnknown:
		return []byte("unknown"), nil
	case CategoryKnown:
		return []byte("known"), nil
	case CategoryHome:
		return []byte("home"), nil
	default:
		return nil, fmt.Errorf("illegal signal category: %d", this)
	}
}

func (this *Category) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Categories []Category

func (this Categories) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Categories) String() string {
	return strings.Join(this.Strings(), ",")
}

// Record is one remembered wireless signal. Records are created on first
// observation and never deleted automatically.
type Record struct {
	// Identifier is the BSSID of the signal and the unique key.
	Identifier string
	// SSID is the last advertised network name of the signal.
	SSID string
	// DisplayName is the user supplied name; empty while unnamed.
	DisplayName string
	Category    Category

	FirstSeen time.Time
	LastSeen  time.Time
	// LastAnnouncedAt is zero if the signal was never announced, or if its
	// category changed since the last announcement.
	LastAnnouncedAt time.Time
}

// Title is the name the record should be referred to by in announcements
// and tooltips.
func (this *Record) Title() string {
	if this.DisplayName != "" {
		return this.DisplayName
	}
	if this.SSID != "" {
		return this.SSID
	}
	return this.Identifier
}
