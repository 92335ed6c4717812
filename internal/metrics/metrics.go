package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook delivery metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridhook_events_total",
			Help: "Total number of event deliveries received",
		},
		[]string{"endpoint", "status"},
	)

	EventBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridhook_event_bytes_total",
			Help: "Total bytes of event payload data received",
		},
	)

	HandshakeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridhook_handshake_total",
			Help: "Total number of webhook validation handshakes",
		},
		[]string{"result"},
	)

	// Dispatch metrics
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridhook_dispatch_total",
			Help: "Total number of events dispatched, by processor",
		},
		[]string{"processor"},
	)

	UnknownEventTypeTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridhook_unknown_event_type_total",
			Help: "Total number of events acknowledged without processing",
		},
	)

	// Push trigger metrics
	TriggerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridhook_trigger_events_total",
			Help: "Total number of push-trigger events handled",
		},
		[]string{"status"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridhook_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"key"},
	)
)
