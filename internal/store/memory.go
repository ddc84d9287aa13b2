package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/linkmetrics/internal/analytics"
	"github.com/serroba/linkmetrics/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository and
// analytics.Store. Event grouping mirrors the SQL rollup: one tuple per
// grouping key, ordered by each group's earliest event, with the first IP
// seen in the group as its representative.
type MemoryStore struct {
	mu     sync.RWMutex
	urls   []*shortener.ShortURL
	events []*analytics.ClickEvent
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.urls {
		if u.ShortToken == shortURL.ShortToken ||
			(shortURL.CustomAlias != "" && u.CustomAlias == shortURL.CustomAlias) {
			return shortener.ErrAliasTaken
		}
	}

	copied := *shortURL
	m.urls = append(m.urls, &copied)

	return nil
}

func (m *MemoryStore) FindByAlias(_ context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.urls {
		if u.ShortToken == alias || (u.CustomAlias != "" && u.CustomAlias == alias) {
			copied := *u

			return &copied, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *MemoryStore) FindByCustomAlias(_ context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.urls {
		if u.CustomAlias != "" && u.CustomAlias == alias {
			copied := *u

			return &copied, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *MemoryStore) FindByTopic(_ context.Context, topic shortener.Topic) ([]*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var urls []*shortener.ShortURL

	for _, u := range m.urls {
		if u.Topic == topic {
			copied := *u
			urls = append(urls, &copied)
		}
	}

	return urls, nil
}

func (m *MemoryStore) InsertClick(_ context.Context, event *analytics.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *event
	m.events = append(m.events, &copied)

	return nil
}

func (m *MemoryStore) GroupedByAgent(_ context.Context, alias string) ([]analytics.EventGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match := func(e *analytics.ClickEvent) bool { return e.Alias == alias }
	key := func(e *analytics.ClickEvent) groupKey {
		return groupKey{alias: e.Alias, date: clickDate(e.OccurredAt), userAgent: e.UserAgent}
	}

	return m.group(match, key, true), nil
}

func (m *MemoryStore) GroupedByDate(_ context.Context, aliases []string) ([]analytics.EventGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		members[a] = struct{}{}
	}

	match := func(e *analytics.ClickEvent) bool {
		_, ok := members[e.Alias]

		return ok
	}
	key := func(e *analytics.ClickEvent) groupKey {
		return groupKey{alias: e.Alias, date: clickDate(e.OccurredAt)}
	}

	return m.group(match, key, false), nil
}

type groupKey struct {
	alias     string
	date      string
	userAgent string
}

func (m *MemoryStore) group(
	match func(*analytics.ClickEvent) bool,
	key func(*analytics.ClickEvent) groupKey,
	keepAgent bool,
) []analytics.EventGroup {
	var order []groupKey

	groups := make(map[groupKey]*analytics.EventGroup)
	ips := make(map[groupKey]map[string]struct{})

	for _, e := range m.events {
		if !match(e) {
			continue
		}

		k := key(e)

		g, ok := groups[k]
		if !ok {
			g = &analytics.EventGroup{
				Alias:     k.alias,
				ClickDate: k.date,
				IPAddress: e.IPAddress,
			}
			if keepAgent {
				g.UserAgent = k.userAgent
			}

			groups[k] = g
			ips[k] = make(map[string]struct{})
			order = append(order, k)
		}

		g.TotalClicks++
		ips[k][e.IPAddress] = struct{}{}
	}

	result := make([]analytics.EventGroup, 0, len(order))

	for _, k := range order {
		g := groups[k]
		g.UniqueIPs = len(ips[k])
		result = append(result, *g)
	}

	return result
}

func clickDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Compile-time checks.
var (
	_ shortener.Repository = (*MemoryStore)(nil)
	_ analytics.Store      = (*MemoryStore)(nil)
)
