package shortener_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaevor/go-nanoid"
	"github.com/serroba/linkmetrics/internal/shortener"
	"github.com/serroba/linkmetrics/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMock = errors.New("mock error")

// mockRepository is a test double that can be configured to return errors.
type mockRepository struct {
	saveErr              error
	findByCustomAliasErr error
	found                *shortener.ShortURL
}

func (m *mockRepository) Save(_ context.Context, _ *shortener.ShortURL) error {
	return m.saveErr
}

func (m *mockRepository) FindByAlias(_ context.Context, _ shortener.Alias) (*shortener.ShortURL, error) {
	return nil, shortener.ErrNotFound
}

func (m *mockRepository) FindByCustomAlias(_ context.Context, _ shortener.Alias) (*shortener.ShortURL, error) {
	if m.findByCustomAliasErr != nil {
		return nil, m.findByCustomAliasErr
	}

	return m.found, nil
}

func (m *mockRepository) FindByTopic(_ context.Context, _ shortener.Topic) ([]*shortener.ShortURL, error) {
	return nil, nil
}

func newTestCreator(s shortener.Repository) *shortener.Creator {
	gen, _ := nanoid.Standard(8)

	return shortener.NewCreator(s, gen)
}

func TestCreator_Create(t *testing.T) {
	t.Run("generates token when no custom alias given", func(t *testing.T) {
		creator := newTestCreator(store.NewMemoryStore())

		url, err := creator.Create(context.Background(), "https://example.com", "", "")

		require.NoError(t, err)
		assert.NotEmpty(t, url.ID)
		assert.Len(t, string(url.ShortToken), 8)
		assert.Empty(t, url.CustomAlias)
		assert.Equal(t, "https://example.com", url.LongURL)
		assert.False(t, url.CreatedAt.IsZero())
	})

	t.Run("uses custom alias as the token", func(t *testing.T) {
		creator := newTestCreator(store.NewMemoryStore())

		url, err := creator.Create(context.Background(), "https://example.com", "spring-sale", "marketing")

		require.NoError(t, err)
		assert.Equal(t, shortener.Alias("spring-sale"), url.ShortToken)
		assert.Equal(t, shortener.Alias("spring-sale"), url.CustomAlias)
		assert.Equal(t, shortener.Topic("marketing"), url.Topic)
	})

	t.Run("rejects missing long url", func(t *testing.T) {
		creator := newTestCreator(store.NewMemoryStore())

		url, err := creator.Create(context.Background(), "", "alias", "")

		assert.Nil(t, url)
		assert.ErrorIs(t, err, shortener.ErrMissingURL)
	})

	t.Run("rejects duplicate custom alias", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		creator := newTestCreator(memStore)

		_, err := creator.Create(context.Background(), "http://x.com", "abc", "")
		require.NoError(t, err)

		url, err := creator.Create(context.Background(), "http://y.com", "abc", "")

		assert.Nil(t, url)
		assert.ErrorIs(t, err, shortener.ErrAliasTaken)
	})

	t.Run("generated tokens differ for same url", func(t *testing.T) {
		creator := newTestCreator(store.NewMemoryStore())

		first, err1 := creator.Create(context.Background(), "https://example.com", "", "")
		second, err2 := creator.Create(context.Background(), "https://example.com", "", "")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ShortToken, second.ShortToken)
	})

	t.Run("collision check does not cover generated tokens", func(t *testing.T) {
		// The pre-check only inspects existing custom aliases, so a custom
		// alias equal to a previously generated token passes it and is
		// stopped by the store's uniqueness constraint instead.
		memStore := store.NewMemoryStore()
		creator := newTestCreator(memStore)

		first, err := creator.Create(context.Background(), "https://example.com", "", "")
		require.NoError(t, err)

		url, err := creator.Create(context.Background(), "https://other.com", first.ShortToken, "")

		assert.Nil(t, url)
		assert.ErrorIs(t, err, shortener.ErrAliasTaken)
	})

	t.Run("returns error on collision check failure", func(t *testing.T) {
		creator := newTestCreator(&mockRepository{findByCustomAliasErr: errMock})

		url, err := creator.Create(context.Background(), "https://example.com", "abc", "")

		assert.Nil(t, url)
		assert.ErrorIs(t, err, errMock)
	})

	t.Run("returns error when save fails", func(t *testing.T) {
		creator := newTestCreator(&mockRepository{
			saveErr:              errMock,
			findByCustomAliasErr: shortener.ErrNotFound,
		})

		url, err := creator.Create(context.Background(), "https://example.com", "abc", "")

		assert.Nil(t, url)
		assert.ErrorIs(t, err, errMock)
	})
}
