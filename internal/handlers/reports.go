package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkmetrics/internal/analytics"
	"github.com/serroba/linkmetrics/internal/shortener"
	"go.uber.org/zap"
)

// ReportsHandler serves derived click statistics. Reports are recomputed
// from storage on every request; nothing is cached.
type ReportsHandler struct {
	store  shortener.Repository
	clicks analytics.Store
	logger *zap.Logger
}

// NewReportsHandler creates a new analytics reports handler.
func NewReportsHandler(
	store shortener.Repository, clicks analytics.Store, logger *zap.Logger,
) *ReportsHandler {
	return &ReportsHandler{
		store:  store,
		clicks: clicks,
		logger: logger,
	}
}

func (h *ReportsHandler) GetAliasReport(ctx context.Context, req *AliasReportRequest) (*AliasReportResponse, error) {
	// An unregistered alias is NotFound; a registered alias with no events
	// yields an all-zero report.
	if _, err := h.store.FindByAlias(ctx, shortener.Alias(req.Alias)); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	groups, err := h.clicks.GroupedByAgent(ctx, req.Alias)
	if err != nil {
		h.logger.Error("failed to load grouped click events",
			zap.String("alias", req.Alias),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to load analytics")
	}

	return &AliasReportResponse{
		Body: *analytics.BuildAliasReport(groups, time.Now()),
	}, nil
}

func (h *ReportsHandler) GetTopicReport(ctx context.Context, req *TopicReportRequest) (*TopicReportResponse, error) {
	urls, err := h.store.FindByTopic(ctx, shortener.Topic(req.Topic))
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to get topic urls")
	}

	if len(urls) == 0 {
		return nil, huma.Error404NotFound("no urls registered under topic")
	}

	aliases := make([]string, 0, len(urls))
	for _, u := range urls {
		aliases = append(aliases, string(u.ShortToken))
	}

	groups, err := h.clicks.GroupedByDate(ctx, aliases)
	if err != nil {
		h.logger.Error("failed to load grouped click events",
			zap.String("topic", req.Topic),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to load analytics")
	}

	return &TopicReportResponse{
		Body: *analytics.BuildTopicReport(groups, time.Now()),
	}, nil
}
