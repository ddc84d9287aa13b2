package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	redis    Checker
	postgres Checker
}

// NewHandler creates a new health handler.
func NewHandler(redis, postgres Checker) *Handler {
	return &Handler{redis: redis, postgres: postgres}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status   string `json:"status"`
		Redis    string `json:"redis"`
		Postgres string `json:"postgres"`
	}
}

// Check reports the application status along with each dependency's.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Redis = pingStatus(ctx, h.redis)
	resp.Body.Postgres = pingStatus(ctx, h.postgres)

	resp.Body.Status = "ok"
	if resp.Body.Redis != "healthy" || resp.Body.Postgres != "healthy" {
		resp.Body.Status = "degraded"
	}

	return resp, nil
}

func pingStatus(ctx context.Context, c Checker) string {
	if err := c.Ping(ctx); err != nil {
		return "unhealthy"
	}

	return "healthy"
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
