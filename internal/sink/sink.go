// Package sink implements gbn.ApplicationSink as an in-memory collector
// of delivered application payloads, standing in for the application
// layer above the transport.
package sink

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/katalix/go-gbn/gbn"
	"github.com/katalix/go-gbn/metrics"
)

// Sink records every message delivered to it, in delivery order, for an
// entity named Entity. Safe only for single-threaded use, matching the
// rest of this simulator's concurrency model.
type Sink struct {
	logger    log.Logger
	entity    string
	delivered []gbn.Message
}

// New creates a Sink labelled entity, used for logging and metrics.
func New(logger log.Logger, entity string) *Sink {
	return &Sink{
		logger: log.With(logger, "component", "sink", "entity", entity),
		entity: entity,
	}
}

// Deliver implements gbn.ApplicationSink.
func (s *Sink) Deliver(msg gbn.Message) {
	s.delivered = append(s.delivered, msg)
	metrics.MessagesDelivered.WithLabelValues(s.entity).Inc()
	level.Debug(s.logger).Log("message", "application message delivered", "count", len(s.delivered))
}

// Delivered returns every message delivered so far, in order. The
// returned slice must not be mutated by the caller.
func (s *Sink) Delivered() []gbn.Message {
	return s.delivered
}
