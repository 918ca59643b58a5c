package gbn

import "testing"

// linkEntities wires two entities together with an in-process, fully
// synchronous channel in each direction, optionally dropping or
// corrupting specific packets to model a lossy, corrupting medium.
// Since there is no concurrency in this package, forwarding a packet
// just calls the peer's OnPacket directly.
func linkEntities(a, b *Entity, drop func(pkt *Packet) bool, corrupt func(pkt *Packet) bool) {
	deliver := func(to *Entity) func(pkt *Packet) {
		return func(pkt *Packet) {
			cp := pkt.clone()
			if drop != nil && drop(cp) {
				return
			}
			if corrupt != nil && corrupt(cp) {
				cp.Checksum ^= 0x1
			}
			to.OnPacket(cp)
		}
	}
	aToB := a.channel.(*fakeChannel)
	bToA := b.channel.(*fakeChannel)
	aToB.forward = deliver(b)
	bToA.forward = deliver(a)
}

func newLinkedPair(cfg Config) (a, b *Entity, chA, chB *fakeChannel, tmA, tmB *fakeTimer, sinkA, sinkB *fakeSink) {
	a, chA, tmA, sinkA = newTestEntity(cfg)
	b, chB, tmB, sinkB = newTestEntity(cfg)
	linkEntities(a, b, nil, nil)
	return
}

// TestHappyPathNoLoss: 10 messages submitted at A with no loss or
// corruption arrive at B in order, and A's window fully closes.
func TestHappyPathNoLoss(t *testing.T) {
	a, b, _, _, _, _, _, sinkB := newLinkedPair(Config{Window: 8})
	_ = b

	want := make([]Message, 10)
	for i := 0; i < 10; i++ {
		want[i] = testMessage(byte('a' + i))
		a.Submit(want[i])
	}

	if len(sinkB.delivered) != 10 {
		t.Fatalf("expected 10 messages delivered to B, got %d", len(sinkB.delivered))
	}
	for i, msg := range want {
		if sinkB.delivered[i] != msg {
			t.Errorf("delivered[%d] = %v, want %v (delivery must preserve submission order)", i, sinkB.delivered[i], msg)
		}
	}
	if a.buf.base != 10 {
		t.Fatalf("A's base = %d, want 10 after all messages acked", a.buf.base)
	}
}

// TestSingleDataLossRecoversViaTimeout: the packet for seq 3 is
// dropped; once A's timer fires it retransmits the window and every
// message is eventually delivered exactly once, in order.
func TestSingleDataLossRecoversViaTimeout(t *testing.T) {
	a, chA, tmA, _ := newTestEntity(Config{Window: 8})
	b, _, _, sinkB := newTestEntity(Config{Window: 8})

	droppedOnce := false
	linkEntities(a, b, func(pkt *Packet) bool {
		if !pkt.IsAck() && pkt.SeqNum == 3 && !droppedOnce {
			droppedOnce = true
			return true
		}
		return false
	}, nil)
	_ = chA

	want := make([]Message, 5)
	for i := 0; i < 5; i++ {
		want[i] = testMessage(byte('a' + i))
		a.Submit(want[i])
	}

	if len(sinkB.delivered) != 3 {
		t.Fatalf("B should have delivered only seqs 0-2 before recovery, got %d", len(sinkB.delivered))
	}
	if !tmA.pending {
		t.Fatalf("A's timer should be running while awaiting the lost packet's ack")
	}

	// Simulate the retransmission timer firing.
	a.OnTimeout()

	if len(sinkB.delivered) != 5 {
		t.Fatalf("expected all 5 messages delivered after retransmission, got %d", len(sinkB.delivered))
	}
	for i, msg := range want {
		if sinkB.delivered[i] != msg {
			t.Errorf("delivered[%d] = %v, want %v", i, sinkB.delivered[i], msg)
		}
	}
	if a.buf.base != 5 {
		t.Fatalf("A's base = %d, want 5 once everything is acked", a.buf.base)
	}
}

// TestSingleAckCorruptionRecovers: A sends seqs 0..4, B
// acks each, but the ack for seq 2 is corrupted in transit. A treats the
// corrupt ack as a timeout and retransmits its window; B re-acks the
// last good sequence for the resulting duplicates; A eventually advances
// on the next valid ack, and all 5 messages are delivered exactly once.
func TestSingleAckCorruptionRecovers(t *testing.T) {
	a, _, _, _ := newTestEntity(Config{Window: 8})
	b, _, _, sinkB := newTestEntity(Config{Window: 8})

	corruptedOnce := false
	linkEntities(a, b, nil, func(pkt *Packet) bool {
		if pkt.IsAck() && pkt.AckNum == 2 && !corruptedOnce {
			corruptedOnce = true
			return true
		}
		return false
	})

	want := make([]Message, 5)
	for i := 0; i < 5; i++ {
		want[i] = testMessage(byte('a' + i))
		a.Submit(want[i])
	}

	if len(sinkB.delivered) != 5 {
		t.Fatalf("expected all 5 messages delivered exactly once, got %d", len(sinkB.delivered))
	}
	for i, msg := range want {
		if sinkB.delivered[i] != msg {
			t.Errorf("delivered[%d] = %v, want %v", i, sinkB.delivered[i], msg)
		}
	}
	if a.buf.base != 5 {
		t.Fatalf("A's base = %d, want 5", a.buf.base)
	}
}

// TestWindowBoundInvariant: the number of un-acked transmitted packets
// never exceeds Window.
func TestWindowBoundInvariant(t *testing.T) {
	e, ch, _, _ := newTestEntity(Config{Window: 8})
	for i := 0; i < 30; i++ {
		e.Submit(testMessage(byte(i)))
		if outstanding := e.buf.outstanding(); outstanding > 8 {
			// outstanding counts buffered-but-unacked, not just
			// transmitted; transmitted-in-flight is bounded by window
			// directly via windowEnd()-base.
			if e.buf.windowEnd()-e.buf.base > 8 {
				t.Fatalf("in-flight window exceeded 8 at submission %d", i)
			}
		}
	}
	_ = ch
}

// TestTimerSingletonInvariant: at most one timer pending per entity at
// any time.
func TestTimerSingletonInvariant(t *testing.T) {
	e, _, tm, _ := newTestEntity(Config{Window: 8})
	e.Submit(testMessage('a'))
	if tm.starts-tm.stops != 1 {
		t.Fatalf("expected exactly one pending timer, starts-stops=%d", tm.starts-tm.stops)
	}
	e.Submit(testMessage('b'))
	if tm.starts-tm.stops != 1 {
		t.Fatalf("a second in-window submission must not start a second timer, starts-stops=%d", tm.starts-tm.stops)
	}
}
