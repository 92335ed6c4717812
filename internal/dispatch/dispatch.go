// Package dispatch routes blob-created events to content-type-specific
// processors.
package dispatch

import (
	"context"

	"github.com/gridhook-systems/gridhook/internal/metrics"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// Processor handles blobs of a particular content-type family. This is the
// extension point of the service: a real deployment swaps the stub
// implementations for ones that do actual work, without touching the
// routing logic. Process must not fail for well-formed input.
type Processor interface {
	// Name identifies the processor in logs and metrics.
	Name() string
	// Supports reports whether this processor handles the content type.
	// Comparison is case-sensitive.
	Supports(contentType string) bool
	// Process is invoked with the blob metadata and the envelope it
	// arrived in.
	Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error
}

// Router selects the first registered processor that supports an event's
// content type. First match wins; registration order matters.
type Router struct {
	processors []Processor
}

// NewRouter constructs a router with the given processors, tried in order.
func NewRouter(processors ...Processor) *Router {
	return &Router{processors: processors}
}

// Dispatch routes the blob to the first supporting processor. Events whose
// content type no processor claims fall through silently; the standard
// setup avoids this by registering a catch-all generic processor last.
func (r *Router) Dispatch(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	p := r.route(info.ContentType)
	if p == nil {
		return nil
	}
	metrics.DispatchTotal.WithLabelValues(p.Name()).Inc()
	return p.Process(ctx, info, env)
}

func (r *Router) route(contentType string) Processor {
	for _, p := range r.processors {
		if p.Supports(contentType) {
			return p
		}
	}
	return nil
}
