package netem

import (
	"math/rand"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/katalix/go-gbn/gbn"
	"github.com/katalix/go-gbn/internal/scheduler"
	"github.com/katalix/go-gbn/metrics"
)

// corruptSentinel is the out-of-range value stamped into a sequence or
// ack number chosen for corruption. Obviously bogus on inspection, which
// helps when reading packet traces from a lossy run.
const corruptSentinel = 999999

// Channel is one direction of the simulated medium: it delivers packets
// sent by a local entity to a remote entity after independently rolling
// loss and corruption, and after enforcing a non-reordering arrival
// time. Implements gbn.Channel.
type Channel struct {
	logger      log.Logger
	sched       *scheduler.Scheduler
	rng         *rand.Rand
	lossProb    float64
	corruptProb float64

	localEntity  string
	remoteEntity string

	lastArrival float64
}

// New creates a Channel that delivers packets from localEntity to
// remoteEntity on sched, using rng for its loss/corruption/delay rolls.
// rng is not safe for concurrent use; since the scheduler's Run loop is
// single-threaded this is never a problem, but callers must not share
// rng across goroutines.
func New(logger log.Logger, sched *scheduler.Scheduler, rng *rand.Rand, lossProb, corruptProb float64, localEntity, remoteEntity string) *Channel {
	return &Channel{
		logger:       log.With(logger, "component", "netem channel", "from", localEntity, "to", remoteEntity),
		sched:        sched,
		rng:          rng,
		lossProb:     lossProb,
		corruptProb:  corruptProb,
		localEntity:  localEntity,
		remoteEntity: remoteEntity,
	}
}

// Send rolls loss and corruption for pkt and, if not lost, schedules its
// arrival at the remote entity. Always returns nil: in this simulator
// there is no transport-level failure to report, only loss, which is
// itself part of the medium being modelled.
func (c *Channel) Send(pkt *gbn.Packet) error {
	kind := "data"
	if pkt.IsAck() {
		kind = "ack"
	}
	metrics.PacketsSent.WithLabelValues(c.localEntity, kind).Inc()

	if c.rng.Float64() < c.lossProb {
		metrics.PacketsLost.WithLabelValues(c.localEntity).Inc()
		level.Info(c.logger).Log("message", "packet lost in transit", "seqnum", pkt.SeqNum, "acknum", pkt.AckNum)
		return nil
	}

	cp := *pkt

	now := c.sched.Now()
	base := now
	if c.lastArrival > base {
		base = c.lastArrival
	}
	arrival := base + 1 + 9*c.rng.Float64()
	c.lastArrival = arrival

	if c.rng.Float64() < c.corruptProb {
		metrics.PacketsCorrupted.WithLabelValues(c.localEntity).Inc()
		switch x := c.rng.Float64(); {
		case x < 0.75:
			cp.Payload[0] = 'Z'
		case x < 0.875:
			cp.SeqNum = corruptSentinel
		default:
			cp.AckNum = corruptSentinel
		}
		level.Info(c.logger).Log("message", "packet corrupted in transit", "seqnum", pkt.SeqNum, "acknum", pkt.AckNum)
	}

	c.sched.Schedule(arrival-now, scheduler.PacketArrival, c.remoteEntity, &cp)
	return nil
}
