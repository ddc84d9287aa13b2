package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/linkmetrics/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for alias
// lookups on the redirect path. ShortURL records are immutable, so cached
// entries can only go stale by expiring.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "alias:",
		ttl:    ttl,
	}
}

// Save stores the record in the underlying store and warms the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	if err := r.store.Save(ctx, shortURL); err != nil {
		return err
	}

	r.cacheURL(ctx, shortURL)

	return nil
}

// FindByAlias retrieves a record by alias, checking the cache first.
func (r *RedisCacheRepository) FindByAlias(ctx context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	if url, err := r.getFromCache(ctx, alias); err == nil {
		return url, nil
	}

	url, err := r.store.FindByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}

	r.cacheURL(ctx, url)

	return url, nil
}

// FindByCustomAlias always hits the underlying store: the creation collision
// check must see the latest committed state.
func (r *RedisCacheRepository) FindByCustomAlias(ctx context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	return r.store.FindByCustomAlias(ctx, alias)
}

// FindByTopic always hits the underlying store.
func (r *RedisCacheRepository) FindByTopic(ctx context.Context, topic shortener.Topic) ([]*shortener.ShortURL, error) {
	return r.store.FindByTopic(ctx, topic)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(alias)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos)
		}
	}

	return &shortener.ShortURL{
		ID:          result["id"],
		LongURL:     result["long_url"],
		ShortToken:  shortener.Alias(result["short_token"]),
		CustomAlias: shortener.Alias(result["custom_alias"]),
		Topic:       shortener.Topic(result["topic"]),
		CreatedAt:   createdAt,
	}, nil
}

func (r *RedisCacheRepository) cacheURL(ctx context.Context, url *shortener.ShortURL) {
	fields := map[string]interface{}{
		"id":           url.ID,
		"long_url":     url.LongURL,
		"short_token":  string(url.ShortToken),
		"custom_alias": string(url.CustomAlias),
		"topic":        string(url.Topic),
		"created_at":   url.CreatedAt.UnixNano(),
	}

	pipe := r.client.Pipeline()

	// A record is reachable by its token and, when set, its custom alias.
	keys := []string{r.prefix + string(url.ShortToken)}
	if url.CustomAlias != "" && url.CustomAlias != url.ShortToken {
		keys = append(keys, r.prefix+string(url.CustomAlias))
	}

	for _, key := range keys {
		pipe.HSet(ctx, key, fields)

		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
	}

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
