// Package service wires envelope handling to blob extraction and dispatch.
package service

import (
	"context"
	"log/slog"

	"github.com/gridhook-systems/gridhook/internal/blob"
	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/metrics"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// Dispatcher routes an extracted blob to a processor.
type Dispatcher interface {
	Dispatch(ctx context.Context, info models.BlobInfo, env models.Envelope) error
}

// EventService runs the extraction and dispatch pipeline for parsed
// envelopes. It is shared by the HTTP webhook and the push trigger.
type EventService struct {
	router Dispatcher
	logger *logging.Logger
}

// NewEventService constructs the service.
func NewEventService(router Dispatcher, logger *logging.Logger) *EventService {
	return &EventService{
		router: router,
		logger: logger,
	}
}

// HandleEnvelope processes one envelope. Blob-created events go through
// extraction and dispatch; any other type is logged and acknowledged
// without further processing (not an error).
func (s *EventService) HandleEnvelope(ctx context.Context, env models.Envelope) error {
	if env.Type != models.TypeBlobCreated {
		metrics.UnknownEventTypeTotal.Inc()
		s.logger.WarnContext(ctx, "ignoring event with unhandled type",
			logging.EventType(env.Type),
			logging.EventID(env.ID),
		)
		return nil
	}

	info := blob.Extract(env.Data)

	s.logger.InfoContext(ctx, "blob created event received",
		logging.EventID(env.ID),
		logging.Blob(info.BlobName),
		logging.Container(info.ContainerName),
		logging.ContentType(info.ContentType),
		slog.Int64("content_length", info.ContentLength),
		slog.String("event_time", env.Time),
	)

	return s.router.Dispatch(ctx, info, env)
}
