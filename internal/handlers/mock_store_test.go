package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkmetrics/internal/analytics"
	"github.com/serroba/linkmetrics/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMock = errors.New("mock error")

// assertStatus checks the HTTP status carried by a huma error.
func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var statusErr huma.StatusError

	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, want, statusErr.GetStatus())
}

const testURL = "https://example.com"

// mockStore is a test double for shortener.Repository and analytics.Store
// that can be configured to return errors.
type mockStore struct {
	findByAliasErr error
	findByTopicErr error
	groupedErr     error
	urls           []*shortener.ShortURL
	groups         []analytics.EventGroup
}

func (m *mockStore) Save(_ context.Context, _ *shortener.ShortURL) error {
	return nil
}

func (m *mockStore) FindByAlias(_ context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	if m.findByAliasErr != nil {
		return nil, m.findByAliasErr
	}

	return &shortener.ShortURL{ShortToken: alias, LongURL: testURL}, nil
}

func (m *mockStore) FindByCustomAlias(_ context.Context, _ shortener.Alias) (*shortener.ShortURL, error) {
	return nil, shortener.ErrNotFound
}

func (m *mockStore) FindByTopic(_ context.Context, _ shortener.Topic) ([]*shortener.ShortURL, error) {
	if m.findByTopicErr != nil {
		return nil, m.findByTopicErr
	}

	return m.urls, nil
}

func (m *mockStore) InsertClick(_ context.Context, _ *analytics.ClickEvent) error {
	return nil
}

func (m *mockStore) GroupedByAgent(_ context.Context, _ string) ([]analytics.EventGroup, error) {
	if m.groupedErr != nil {
		return nil, m.groupedErr
	}

	return m.groups, nil
}

func (m *mockStore) GroupedByDate(_ context.Context, _ []string) ([]analytics.EventGroup, error) {
	if m.groupedErr != nil {
		return nil, m.groupedErr
	}

	return m.groups, nil
}
