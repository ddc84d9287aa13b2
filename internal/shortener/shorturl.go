package shortener

import (
	"context"
	"errors"
	"time"
)

// Alias is the token used in a shortened URL's path, either system-generated
// or chosen by the caller.
type Alias string

// Topic is an optional free-text grouping label attached at creation time.
type Topic string

// ShortURL represents a registered short link. Records are immutable once
// created and are never deleted.
type ShortURL struct {
	ID          string
	LongURL     string
	ShortToken  Alias
	CustomAlias Alias // empty when the token was system-generated
	Topic       Topic
	CreatedAt   time.Time
}

var (
	// ErrNotFound is returned when no record matches an alias or topic.
	ErrNotFound = errors.New("short url not found")

	// ErrAliasTaken is returned when a custom alias is already registered.
	ErrAliasTaken = errors.New("custom alias already in use")

	// ErrMissingURL is returned when a create request has no long URL.
	ErrMissingURL = errors.New("long url is required")
)

// Repository defines the storage operations for short URL records.
type Repository interface {
	Save(ctx context.Context, shortURL *ShortURL) error

	// FindByAlias matches a record whose short token or custom alias equals
	// the given alias. When both could match, the first matching row wins.
	FindByAlias(ctx context.Context, alias Alias) (*ShortURL, error)

	// FindByCustomAlias matches only on the custom alias column. Used by the
	// creation collision check.
	FindByCustomAlias(ctx context.Context, alias Alias) (*ShortURL, error)

	// FindByTopic returns every record registered under the topic, oldest
	// first. An unknown topic yields an empty slice, not an error.
	FindByTopic(ctx context.Context, topic Topic) ([]*ShortURL, error)
}
