//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/linkmetrics/internal/shortener"
	"github.com/serroba/linkmetrics/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	newCached := func() (*store.RedisCacheRepository, *store.MemoryStore) {
		backing := store.NewMemoryStore()
		return store.NewRedisCacheRepository(backing, client, time.Minute), backing
	}

	t.Run("save warms the cache", func(t *testing.T) {
		cached, _ := newCached()

		token := shortener.Alias("rc-" + uuid.NewString()[:8])
		shortURL := &shortener.ShortURL{
			ID:         uuid.NewString(),
			LongURL:    "https://example.com/cached",
			ShortToken: token,
			CreatedAt:  time.Now(),
		}

		require.NoError(t, cached.Save(ctx, shortURL))

		fields, err := client.HGetAll(ctx, "alias:"+string(token)).Result()
		require.NoError(t, err)
		assert.Equal(t, shortURL.ID, fields["id"])
		assert.Equal(t, shortURL.LongURL, fields["long_url"])
	})

	t.Run("find hits the cache after the first lookup", func(t *testing.T) {
		cached, backing := newCached()

		token := shortener.Alias("rc-" + uuid.NewString()[:8])
		shortURL := &shortener.ShortURL{
			ID:         uuid.NewString(),
			LongURL:    "https://example.com/warm",
			ShortToken: token,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, backing.Save(ctx, shortURL))

		got, err := cached.FindByAlias(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, shortURL.ID, got.ID)

		// Served from Redis even after the backing store loses the record.
		fresh := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)

		got, err = fresh.FindByAlias(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, shortURL.ID, got.ID)
		assert.Equal(t, shortURL.LongURL, got.LongURL)
	})

	t.Run("custom alias cached under both keys", func(t *testing.T) {
		cached, _ := newCached()

		token := shortener.Alias("rc-" + uuid.NewString()[:8])
		custom := shortener.Alias("rcc-" + uuid.NewString()[:8])
		shortURL := &shortener.ShortURL{
			ID:          uuid.NewString(),
			LongURL:     "https://example.com/custom",
			ShortToken:  token,
			CustomAlias: custom,
			CreatedAt:   time.Now(),
		}

		require.NoError(t, cached.Save(ctx, shortURL))

		for _, alias := range []shortener.Alias{token, custom} {
			got, err := cached.FindByAlias(ctx, alias)
			require.NoError(t, err)
			assert.Equal(t, shortURL.ID, got.ID)
			assert.Equal(t, custom, got.CustomAlias)
		}
	})

	t.Run("cache miss falls through to ErrNotFound", func(t *testing.T) {
		cached, _ := newCached()

		got, err := cached.FindByAlias(ctx, shortener.Alias("rc-missing-"+uuid.NewString()[:8]))

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("custom alias lookup bypasses the cache", func(t *testing.T) {
		cached, backing := newCached()

		custom := shortener.Alias("rcb-" + uuid.NewString()[:8])
		shortURL := &shortener.ShortURL{
			ID:          uuid.NewString(),
			LongURL:     "https://example.com/bypass",
			ShortToken:  shortener.Alias("rc-" + uuid.NewString()[:8]),
			CustomAlias: custom,
			CreatedAt:   time.Now(),
		}
		require.NoError(t, cached.Save(ctx, shortURL))

		got, err := cached.FindByCustomAlias(ctx, custom)
		require.NoError(t, err)
		assert.Equal(t, shortURL.ID, got.ID)

		// A store that no longer has the record must surface ErrNotFound
		// regardless of what Redis holds.
		fresh := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)

		_, err = fresh.FindByCustomAlias(ctx, custom)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}
