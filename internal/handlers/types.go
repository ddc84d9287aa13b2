package handlers

import (
	"time"

	"github.com/serroba/linkmetrics/internal/analytics"
)

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		LongURL     string `doc:"The URL to shorten"                example:"https://example.com/very/long/path" json:"longUrl"`
		CustomAlias string `doc:"Optional custom alias"             example:"spring-sale"                        json:"customAlias,omitempty" required:"false"`
		Topic       string `doc:"Optional grouping topic"           example:"marketing"                          json:"topic,omitempty"       required:"false"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ID        string    `doc:"Record identifier"  json:"id"`
		Alias     string    `doc:"The short token"    example:"aB3xK9qT"                      json:"alias"`
		ShortURL  string    `doc:"The full short URL" example:"http://localhost:8888/aB3xK9qT" json:"shortUrl"`
		LongURL   string    `doc:"The original URL"   json:"longUrl"`
		Topic     string    `doc:"Grouping topic"     json:"topic,omitempty"`
		CreatedAt time.Time `doc:"Creation time"      json:"createdAt"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Alias string `doc:"The short token or custom alias" example:"aB3xK9qT" path:"alias"`
}

// RedirectResponse redirects the client to the registered long URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// AliasReportRequest is the request for per-alias click statistics.
type AliasReportRequest struct {
	Alias string `doc:"The short token or custom alias" example:"aB3xK9qT" path:"alias"`
}

// AliasReportResponse carries the derived click statistics for one alias.
type AliasReportResponse struct {
	Body analytics.Report
}

// TopicReportRequest is the request for topic-level click statistics.
type TopicReportRequest struct {
	Topic string `doc:"The grouping topic" example:"marketing" path:"topic"`
}

// TopicReportResponse carries the combined click statistics for a topic.
type TopicReportResponse struct {
	Body analytics.TopicReport
}
