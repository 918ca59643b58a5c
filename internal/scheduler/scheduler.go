package scheduler

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/btree"
)

// EventType identifies what kind of simulated event occurred.
type EventType int

const (
	// MessageArrival is a new application message arriving for
	// submission at an entity.
	MessageArrival EventType = iota
	// PacketArrival is a transport packet arriving at an entity from the
	// channel.
	PacketArrival
	// TimerInterrupt is an entity's retransmission timer expiring.
	TimerInterrupt
)

// Event is one scheduled occurrence: something happens to Entity at
// Time. Packet carries the payload for PacketArrival events and is nil
// otherwise.
type Event struct {
	Time   float64
	Type   EventType
	Entity string
	Packet interface{}

	seq uint64
}

// Less orders events by time, breaking ties by insertion order so that
// same-instant events are processed FIFO.
func (e *Event) Less(than btree.Item) bool {
	o := than.(*Event)
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	return e.seq < o.seq
}

// Scheduler is a single-threaded, time-ordered event queue. It owns the
// simulated clock: Now only advances as events are drained by Run.
type Scheduler struct {
	logger log.Logger
	tree   *btree.BTree
	now    float64
	seq    uint64
}

// New creates an empty scheduler with its clock at zero.
func New(logger log.Logger) *Scheduler {
	return &Scheduler{
		logger: log.With(logger, "component", "scheduler"),
		tree:   btree.New(32),
	}
}

// Now returns the current simulated time: the time of the most recently
// drained event, or zero before Run starts.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Schedule queues an event of the given type for entity, delay time
// units from now.
func (s *Scheduler) Schedule(delay float64, typ EventType, entity string, pkt interface{}) {
	s.seq++
	s.tree.ReplaceOrInsert(&Event{
		Time:   s.now + delay,
		Type:   typ,
		Entity: entity,
		Packet: pkt,
		seq:    s.seq,
	})
}

// HasPendingTimer reports whether a TimerInterrupt event is queued for
// entity.
func (s *Scheduler) HasPendingTimer(entity string) bool {
	pending := false
	s.tree.Ascend(func(item btree.Item) bool {
		ev := item.(*Event)
		if ev.Type == TimerInterrupt && ev.Entity == entity {
			pending = true
			return false
		}
		return true
	})
	return pending
}

// StartTimer schedules a TimerInterrupt for entity, increment time units
// from now. Starting a timer that is already pending is a caller error;
// rather than panic, it is logged and the existing timer is left alone.
func (s *Scheduler) StartTimer(entity string, increment float64) {
	if s.HasPendingTimer(entity) {
		level.Warn(s.logger).Log("message", "attempt to start a timer that is already running", "entity", entity)
		return
	}
	s.Schedule(increment, TimerInterrupt, entity, nil)
}

// CancelTimer removes the pending TimerInterrupt event for entity, if
// any. Cancelling a timer that isn't running is logged, not fatal.
func (s *Scheduler) CancelTimer(entity string) {
	var found *Event
	s.tree.Ascend(func(item btree.Item) bool {
		ev := item.(*Event)
		if ev.Type == TimerInterrupt && ev.Entity == entity {
			found = ev
			return false
		}
		return true
	})
	if found == nil {
		level.Warn(s.logger).Log("message", "unable to cancel timer, it wasn't running", "entity", entity)
		return
	}
	s.tree.Delete(found)
}

// Run drains the event queue in time order, invoking handle for each
// event, until the queue is empty or handle returns false. handle
// returning false lets the caller halt the simulation early (for
// instance once nsimmax messages have been generated) without losing
// already-scheduled in-flight packets; to drain those too, call Run
// again with a handle that always returns true.
func (s *Scheduler) Run(handle func(Event) bool) {
	for {
		item := s.tree.DeleteMin()
		if item == nil {
			return
		}
		ev := item.(*Event)
		s.now = ev.Time
		if !handle(*ev) {
			return
		}
	}
}

// PeerTimer adapts a Scheduler to the gbn.Timer interface for one named
// entity, so gbn.Entity can drive the scheduler's timer without either
// package importing the other.
type PeerTimer struct {
	sched     *Scheduler
	entity    string
	increment float64
}

// NewPeerTimer returns a Timer that starts/cancels TimerInterrupt events
// for entity on sched.
func NewPeerTimer(sched *Scheduler, entity string, increment float64) *PeerTimer {
	return &PeerTimer{sched: sched, entity: entity, increment: increment}
}

func (t *PeerTimer) Start() { t.sched.StartTimer(t.entity, t.increment) }
func (t *PeerTimer) Stop()  { t.sched.CancelTimer(t.entity) }
