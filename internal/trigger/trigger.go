// Package trigger handles events delivered by the platform's push
// subscription, as opposed to the self-exposed HTTP webhook.
package trigger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/metrics"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// Event is the minimal view of a platform-delivered push event. Keeping
// the surface this small lets tests substitute a double with no broker
// dependency.
type Event interface {
	ID() string
	Source() string
	Subject() string
	Type() string
	Time() string
	// JSONBody returns the raw JSON of the event's data payload.
	JSONBody() ([]byte, error)
}

// EventService is the pipeline parsed envelopes are forwarded to.
type EventService interface {
	HandleEnvelope(ctx context.Context, env models.Envelope) error
}

// Handler adapts push events to the shared envelope pipeline. Errors
// propagate to the caller; redelivery is the platform's policy, not ours.
type Handler struct {
	service EventService
	logger  *logging.Logger
}

// NewHandler constructs a push-trigger handler.
func NewHandler(service EventService, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle builds an envelope from the event's attributes (the platform has
// already parsed them, so there is no raw envelope to re-parse), decodes
// the data payload, and runs the pipeline.
func (h *Handler) Handle(ctx context.Context, ev Event) error {
	body, err := ev.JSONBody()
	if err != nil {
		metrics.TriggerEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("read event body: %w", err)
	}

	data := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			metrics.TriggerEventsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("decode event data: %w", err)
		}
	}

	env := models.Envelope{
		SpecVersion: models.DefaultSpecVersion,
		ID:          ev.ID(),
		Source:      ev.Source(),
		Type:        ev.Type(),
		Subject:     ev.Subject(),
		Time:        ev.Time(),
		Data:        data,
	}

	h.logger.InfoContext(ctx, "push event received",
		logging.EventID(env.ID),
		logging.EventType(env.Type),
		logging.Subject(env.Subject),
	)

	if err := h.service.HandleEnvelope(ctx, env); err != nil {
		metrics.TriggerEventsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.TriggerEventsTotal.WithLabelValues("ok").Inc()
	return nil
}
