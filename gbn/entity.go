package gbn

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/katalix/go-gbn/metrics"
)

// Channel is the medium collaborator consumed by Entity. Send hands a
// packet to the medium; it may be lost, delayed or corrupted before
// (or instead of) arriving at the peer. Send must be non-blocking; the
// entity's caller is free to reuse its own copy of any packet it built
// once Send returns, so implementations that retain the packet beyond
// the call must copy it.
type Channel interface {
	Send(pkt *Packet) error
}

// Timer is the retransmission-timer collaborator consumed by Entity. At
// most one timer may be pending per entity: Start while a timer is
// already running is a caller error, and Stop while none is pending is a
// caller error, mirroring the external scheduler's warning-not-failure
// policy for these conditions.
type Timer interface {
	Start()
	Stop()
}

// ApplicationSink is the upward collaborator consumed by Entity.
// Deliver hands received, in-order application data to the layer above
// the transport.
type ApplicationSink interface {
	Deliver(msg Message)
}

// Entity is one peer's Go-Back-N transport state: the sender's send
// buffer and window bookkeeping, and the receiver's expected-sequence
// bookkeeping, sharing one retransmission timer. Construct with
// NewEntity and call Init before any other method.
//
// Every method runs to completion synchronously; Entity has no internal
// concurrency and performs no locking. It is written for a
// single-threaded, cooperative event loop in which one event is
// processed to completion before the next is dispatched.
type Entity struct {
	logger  log.Logger
	cfg     Config
	channel Channel
	timer   Timer
	sink    ApplicationSink

	buf         *sendBuffer
	expectedSeq int32
	timerActive bool
}

// NewEntity creates a transport entity for one peer. channel, timer and
// sink are the entity's only points of contact with the outside world;
// passing them in at construction (rather than reaching for globals)
// keeps Entity testable against fakes.
func NewEntity(logger log.Logger, cfg Config, channel Channel, timer Timer, sink ApplicationSink) *Entity {
	SanitiseConfig(&cfg)
	return &Entity{
		logger:  log.With(logger, "component", "gbn entity", "entity", cfg.Name),
		cfg:     cfg,
		channel: channel,
		timer:   timer,
		sink:    sink,
		buf:     newSendBuffer(cfg),
	}
}

// Init (re)initialises the entity's state: send buffer, base, next
// index, and expected sequence number all reset to zero. Must be called
// once before any other Entity method, and is otherwise idempotent.
func (e *Entity) Init() {
	e.buf = newSendBuffer(e.cfg)
	e.expectedSeq = 0
	e.timerActive = false
}

// OnPacket dispatches an inbound packet to the sender's ACK handling or
// the receiver's DATA handling, per the SeqNum == -1 discriminator. This
// is the only place that discriminator is tested: AckNum's own -1
// sentinel never influences dispatch.
func (e *Entity) OnPacket(pkt *Packet) {
	if pkt.IsAck() {
		e.onAck(pkt)
	} else {
		e.onData(pkt)
	}
}

// OnTimeout handles expiry of the retransmission timer: the entire
// outstanding window is retransmitted and the timer restarted. Unlike
// onAck's corrupt-ACK path, this does not call stopTimer first: the
// timer that just fired has already been dequeued by the scheduler
// before this handler runs, so cancelling it here would only produce a
// spurious "timer wasn't running" warning for routine retransmission.
func (e *Entity) OnTimeout() {
	level.Info(e.logger).Log("message", "timer expired, retransmitting window",
		"base", e.buf.base, "window_end", e.buf.windowEnd())
	e.timerActive = false
	for seq := e.buf.base; seq < e.buf.windowEnd(); seq++ {
		e.transmit(seq, "timeout")
	}
	e.startTimerIfWindowOpen()
}

func (e *Entity) startTimer() {
	if e.timerActive {
		return
	}
	e.timer.Start()
	e.timerActive = true
}

func (e *Entity) stopTimer() {
	if !e.timerActive {
		return
	}
	e.timer.Stop()
	e.timerActive = false
}

// startTimerIfWindowOpen starts the timer iff there is at least one
// outstanding (unacknowledged) packet. A running timer with nothing to
// retransmit would only fire pointlessly.
func (e *Entity) startTimerIfWindowOpen() {
	if e.buf.outstanding() > 0 {
		e.startTimer()
	}
}

// Outstanding returns the number of packets this entity has transmitted
// (or buffered) but not yet had acknowledged. Exposed for callers that
// want to sample window occupancy, e.g. for metrics.
func (e *Entity) Outstanding() int {
	return e.buf.outstanding()
}

// transmit sends the buffered packet at seq to the channel and marks it
// transmitted. seq must already be buffered. cause labels why this send
// happened: "" for a packet's first transmission, or the retransmission
// trigger ("timeout", "corrupt_ack") otherwise; only the latter counts
// against PacketsRetransmitted.
func (e *Entity) transmit(seq int, cause string) {
	entry := e.buf.at(seq)
	if entry == nil {
		return
	}
	entry.transmitted = true
	if cause != "" {
		metrics.PacketsRetransmitted.WithLabelValues(e.cfg.Name, cause).Inc()
	}
	if err := e.channel.Send(entry.pkt.clone()); err != nil {
		level.Error(e.logger).Log("message", "channel send failed", "seqnum", seq, "error", err)
	}
}
