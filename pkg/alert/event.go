package alert

import (
	"fmt"
	"strings"
	"time"
)

type Kind uint8

const (
	KindWatching       = Kind(0)
	KindUnknownVisitor = Kind(1)
	KindKnownVisitor   = Kind(2)
	KindNamed          = Kind(3)
	KindDeparture      = Kind(4)
	KindSummary        = Kind(5)
)

func (this Kind) String() string {
	switch this {
	case KindWatching:
		return "watching"
	case KindUnknownVisitor:
		return "unknownVisitor"
	case KindKnownVisitor:
		return "knownVisitor"
	case KindNamed:
		return "named"
	case KindDeparture:
		return "departure"
	case KindSummary:
		return "summary"
	default:
		return fmt.Sprintf("illegal-alert-kind-%d", this)
	}
}

// IsVisitor reports whether the event announces somebody approaching.
func (this Kind) IsVisitor() bool {
	return this == KindUnknownVisitor || this == KindKnownVisitor
}

// Event is one thing worth telling the user about. Message carries the
// full sentence; the other fields let outputs render richer surfaces.
type Event struct {
	Kind        Kind
	Identifier  string
	DisplayName string
	Message     string
	Signal      int
	At          time.Time
}

func (this Event) String() string {
	var sb strings.Builder
	sb.WriteString(this.Kind.String())
	if this.Identifier != "" {
		sb.WriteString("(")
		sb.WriteString(this.Identifier)
		sb.WriteString(")")
	}
	if this.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(this.Message)
	}
	return sb.String()
}
