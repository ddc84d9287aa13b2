package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkmetrics/internal/analytics"
	"github.com/serroba/linkmetrics/internal/messaging"
	"github.com/serroba/linkmetrics/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles short URL creation and redirection.
type URLHandler struct {
	creator      *shortener.Creator
	store        shortener.Repository
	baseURL      string
	publishClick messaging.Publish[analytics.URLClickedEvent]
	logger       *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	creator *shortener.Creator,
	store shortener.Repository,
	baseURL string,
	publishClick messaging.Publish[analytics.URLClickedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		creator:      creator,
		store:        store,
		baseURL:      baseURL,
		publishClick: publishClick,
		logger:       logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	shortURL, err := h.creator.Create(
		ctx,
		req.Body.LongURL,
		shortener.Alias(req.Body.CustomAlias),
		shortener.Topic(req.Body.Topic),
	)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrMissingURL):
			return nil, huma.Error400BadRequest("longUrl is required")
		case errors.Is(err, shortener.ErrAliasTaken):
			return nil, huma.Error409Conflict("custom alias already in use")
		default:
			return nil, huma.Error500InternalServerError("failed to save url")
		}
	}

	fullShortURL := fmt.Sprintf("%s/%s", h.baseURL, shortURL.ShortToken)

	resp := &ShortenResponse{}
	resp.Headers.Location = fullShortURL
	resp.Body.ID = shortURL.ID
	resp.Body.Alias = string(shortURL.ShortToken)
	resp.Body.ShortURL = fullShortURL
	resp.Body.LongURL = shortURL.LongURL
	resp.Body.Topic = string(shortURL.Topic)
	resp.Body.CreatedAt = shortURL.CreatedAt

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	shortURL, err := h.store.FindByAlias(ctx, shortener.Alias(req.Alias))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	// Analytics is best-effort: a publish failure must never fail the
	// redirect.
	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLClickedEvent{
		Alias:     req.Alias,
		ClickedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err = h.publishClick(event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("alias", req.Alias),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = shortURL.LongURL

	return resp, nil
}
