package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridhook-systems/gridhook/internal/envelope"
	"github.com/gridhook-systems/gridhook/internal/httputil"
	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/metrics"
	"github.com/gridhook-systems/gridhook/internal/models"
	"github.com/gridhook-systems/gridhook/internal/ratelimit"
)

// Webhook validation handshake headers (CloudEvents HTTP webhook spec).
const (
	HeaderWebhookRequestOrigin = "WebHook-Request-Origin"
	HeaderWebhookAllowedOrigin = "WebHook-Allowed-Origin"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// EventService is the pipeline the handler forwards parsed envelopes to.
type EventService interface {
	HandleEnvelope(ctx context.Context, env models.Envelope) error
}

// CloudEventsHandler serves the webhook endpoint: the validation handshake
// on OPTIONS and event delivery on POST.
type CloudEventsHandler struct {
	service     EventService
	limiter     ratelimit.RateLimiter
	logger      *logging.Logger
	maxBodySize int64
}

// NewCloudEventsHandler constructs the handler. A nil limiter disables
// rate limiting.
func NewCloudEventsHandler(service EventService, limiter ratelimit.RateLimiter, logger *logging.Logger, maxBodySize int64) *CloudEventsHandler {
	if limiter == nil {
		limiter = &ratelimit.NoOpRateLimiter{}
	}
	return &CloudEventsHandler{
		service:     service,
		limiter:     limiter,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// HandleCloudEvents dispatches on HTTP method: OPTIONS runs the
// subscription validation handshake, POST accepts an event delivery,
// anything else is rejected with 405.
func (h *CloudEventsHandler) HandleCloudEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		h.handleValidation(w, r)
	case http.MethodPost:
		h.handleDelivery(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleValidation answers the handshake by echoing the origin header back
// in the allow header. A missing origin is a bad request.
func (h *CloudEventsHandler) handleValidation(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get(HeaderWebhookRequestOrigin)
	if origin == "" {
		metrics.HandshakeTotal.WithLabelValues("rejected").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.logger.InfoContext(r.Context(), "webhook validation handshake",
		logging.IP(httputil.GetClientIP(r)),
		slog.String("origin", origin),
	)

	metrics.HandshakeTotal.WithLabelValues("accepted").Inc()
	w.Header().Set(HeaderWebhookAllowedOrigin, origin)
	w.WriteHeader(http.StatusOK)
}

func (h *CloudEventsHandler) handleDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientIP := httputil.GetClientIP(r)

	allowed, err := h.limiter.Allow(ctx, clientIP)
	if err != nil {
		// Fail open: a broken limiter must not drop deliveries.
		h.logger.WarnContext(ctx, "rate limit check failed", logging.Error(err))
	} else if !allowed {
		metrics.EventsTotal.WithLabelValues("cloudevents", "rate_limited").Inc()
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.EventsTotal.WithLabelValues("cloudevents", "invalid").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		metrics.EventsTotal.WithLabelValues("cloudevents", "invalid").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.logger.WarnContext(ctx, "rejecting non-JSON event delivery",
			logging.IP(clientIP),
			logging.Error(err),
		)
		metrics.EventsTotal.WithLabelValues("cloudevents", "invalid").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	metrics.EventBytesTotal.Add(float64(len(body)))

	env := envelope.Parse(raw)
	if err := h.service.HandleEnvelope(ctx, env); err != nil {
		h.logger.ErrorContext(ctx, "event processing failed",
			logging.EventID(env.ID),
			logging.EventType(env.Type),
			logging.Error(err),
		)
		metrics.EventsTotal.WithLabelValues("cloudevents", "error").Inc()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	metrics.EventsTotal.WithLabelValues("cloudevents", "ok").Inc()
	w.WriteHeader(http.StatusOK)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Health reports liveness with a fixed-shape JSON body.
func (h *CloudEventsHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

// Ready reports readiness. The service is stateless, so ready follows
// alive.
func (h *CloudEventsHandler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
