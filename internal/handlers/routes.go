package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the URL shortener and analytics routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, reportsHandler *ReportsHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Registers a short URL with an optional custom alias and topic.",
		Tags:        []string{"URLs"},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/analytics/topic/{topic}",
		Summary:     "Topic click statistics",
		Description: "Combined click statistics across every alias registered under a topic.",
		Tags:        []string{"Analytics"},
	}, reportsHandler.GetTopicReport)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/analytics/{alias}",
		Summary:     "Alias click statistics",
		Description: "Click statistics for one alias: totals, unique visitors, trailing-7-day series, OS and device breakdowns.",
		Tags:        []string{"Analytics"},
	}, reportsHandler.GetAliasReport)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{alias}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the long URL and records the click as a side effect.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)
}
