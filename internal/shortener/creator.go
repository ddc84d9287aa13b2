package shortener

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenGenerator generates unique URL-safe short tokens.
type TokenGenerator func() string

// Creator registers new short URLs.
type Creator struct {
	store    Repository
	newToken TokenGenerator
}

// NewCreator creates a new short URL creator.
func NewCreator(store Repository, generator TokenGenerator) *Creator {
	return &Creator{
		store:    store,
		newToken: generator,
	}
}

// Create registers a short URL. When a custom alias is given it becomes the
// short token and must not already be registered as a custom alias; otherwise
// a token is generated. The pre-check only guards against custom aliases, so
// the storage layer's uniqueness constraints are the actual race resolver:
// concurrent creates with the same alias both pass the check and the second
// insert fails with ErrAliasTaken.
func (c *Creator) Create(ctx context.Context, longURL string, customAlias Alias, topic Topic) (*ShortURL, error) {
	if longURL == "" {
		return nil, ErrMissingURL
	}

	token := customAlias

	if customAlias != "" {
		_, err := c.store.FindByCustomAlias(ctx, customAlias)
		if err == nil {
			return nil, ErrAliasTaken
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	} else {
		token = Alias(c.newToken())
	}

	shortURL := &ShortURL{
		ID:          uuid.NewString(),
		LongURL:     longURL,
		ShortToken:  token,
		CustomAlias: customAlias,
		Topic:       topic,
		CreatedAt:   time.Now(),
	}

	if err := c.store.Save(ctx, shortURL); err != nil {
		return nil, err
	}

	return shortURL, nil
}
