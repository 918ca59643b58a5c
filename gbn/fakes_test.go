package gbn

import (
	"github.com/go-kit/kit/log"
)

// fakeChannel records every packet handed to Send and optionally
// forwards it to a peer entity, modelling the in-process, order-
// preserving medium the protocol assumes.
type fakeChannel struct {
	sent    []*Packet
	forward func(pkt *Packet)
}

func (c *fakeChannel) Send(pkt *Packet) error {
	c.sent = append(c.sent, pkt)
	if c.forward != nil {
		c.forward(pkt)
	}
	return nil
}

func (c *fakeChannel) last() *Packet {
	if len(c.sent) == 0 {
		return nil
	}
	return c.sent[len(c.sent)-1]
}

// fakeTimer records Start/Stop calls and whether a timer is currently
// pending, so tests can assert timer-singleton discipline without any
// real scheduler.
type fakeTimer struct {
	starts, stops int
	pending       bool
}

func (tm *fakeTimer) Start() {
	tm.starts++
	tm.pending = true
}

func (tm *fakeTimer) Stop() {
	tm.stops++
	tm.pending = false
}

// fakeSink records every delivered message in order.
type fakeSink struct {
	delivered []Message
}

func (s *fakeSink) Deliver(msg Message) {
	s.delivered = append(s.delivered, msg)
}

func testLogger() log.Logger {
	return log.NewNopLogger()
}

func testMessage(b byte) Message {
	var m Message
	for i := range m {
		m[i] = b
	}
	return m
}
