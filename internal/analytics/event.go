package analytics

import (
	"context"
	"time"
)

// TopicURLClicked is the message topic carrying redirect click events.
const TopicURLClicked = "url.clicked"

// URLClickedEvent is emitted on every successful redirect. The alias is the
// token actually used in the request path, which may be either the short
// token or the custom alias of the record it resolved to.
type URLClickedEvent struct {
	Alias     string    `json:"alias"`
	ClickedAt time.Time `json:"clickedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// ClickEvent is one persisted redirect record. Rows are append-only and are
// never mutated or deleted.
type ClickEvent struct {
	ID          string
	Alias       string
	OccurredAt  time.Time
	UserAgent   string
	IPAddress   string
	Geolocation string
}

// EventGroup is a pre-aggregated tuple combining all click events that share
// an alias, a calendar date and, for alias reports, a user agent. The
// grouping itself is a storage responsibility; aggregation consumes these
// tuples as-is.
type EventGroup struct {
	Alias       string
	ClickDate   string // YYYY-MM-DD
	UserAgent   string // empty for topic roll-ups, which group by date only
	TotalClicks int
	UniqueIPs   int
	IPAddress   string // one representative IP per group
}

// Store persists click events and serves pre-grouped views of them.
type Store interface {
	InsertClick(ctx context.Context, event *ClickEvent) error

	// GroupedByAgent returns one tuple per (date, user agent) pair for the
	// alias, in order of each group's earliest event.
	GroupedByAgent(ctx context.Context, alias string) ([]EventGroup, error)

	// GroupedByDate returns one tuple per (alias, date) pair across the
	// given aliases, in order of each group's earliest event.
	GroupedByDate(ctx context.Context, aliases []string) ([]EventGroup, error)
}
