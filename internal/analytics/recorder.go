package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/linkmetrics/internal/geo"
	"go.uber.org/zap"
)

// unknownIP is stored when the client IP could not be determined.
const unknownIP = "Unknown"

// Recorder turns a redirect into a persisted click event. Geolocation is
// best-effort: a failed lookup falls back to the Unknown sentinel instead of
// failing the record.
type Recorder struct {
	store   Store
	locator geo.Locator
	logger  *zap.Logger
}

// NewRecorder creates a new click event recorder.
func NewRecorder(store Store, locator geo.Locator, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:   store,
		locator: locator,
		logger:  logger,
	}
}

// Record persists one click. The returned error is for the message pipeline
// to trigger redelivery; it is never surfaced to the redirect caller, which
// has already been answered by the time this runs.
func (r *Recorder) Record(ctx context.Context, event *URLClickedEvent) error {
	ip := event.ClientIP
	if ip == "" {
		ip = unknownIP
	}

	location, err := r.locator.Locate(ctx, ip)
	if err != nil {
		r.logger.Debug("geolocation lookup failed",
			zap.String("ip", ip),
			zap.Error(err),
		)

		location = geo.Unknown
	}

	occurredAt := event.ClickedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	click := &ClickEvent{
		ID:          uuid.NewString(),
		Alias:       event.Alias,
		OccurredAt:  occurredAt,
		UserAgent:   event.UserAgent,
		IPAddress:   ip,
		Geolocation: location.String(),
	}

	if err := r.store.InsertClick(ctx, click); err != nil {
		r.logger.Error("failed to persist click event",
			zap.String("alias", event.Alias),
			zap.Error(err),
		)

		return err
	}

	return nil
}
