package gbn

import (
	"github.com/go-kit/kit/log/level"
)

// Submit accepts one application message for transmission. If the send
// buffer is full the message is dropped and logged; otherwise it is
// buffered and, if it falls within the current window, transmitted
// immediately.
func (e *Entity) Submit(msg Message) {
	if e.buf.full() {
		level.Info(e.logger).Log("message", "send buffer full, dropping submission",
			"outstanding", e.buf.outstanding())
		return
	}

	pkt := &Packet{SeqNum: int32(e.buf.nextIndex), AckNum: 0, Payload: msg}
	setDataChecksum(pkt)
	seq := e.buf.append(pkt)

	if !e.buf.inWindow(seq) {
		level.Debug(e.logger).Log("message", "window full, buffering submission", "seqnum", seq)
		return
	}

	wasEmpty := seq == e.buf.base
	e.transmit(seq, "")
	if wasEmpty {
		e.startTimer()
	}
}

// onAck handles an inbound packet identified as an ACK (SeqNum == -1).
// A corrupt ACK is treated as an implicit timeout: the current window is
// retransmitted. A valid ACK that advances the window (AckNum >= base)
// slides the window and transmits exactly the newly-eligible,
// not-yet-transmitted packets. A stale ACK (AckNum < base) is ignored.
func (e *Entity) onAck(pkt *Packet) {
	if !verifyAckChecksum(pkt) {
		level.Info(e.logger).Log("message", "corrupt ack received, retransmitting window")
		e.stopTimer()
		for seq := e.buf.base; seq < e.buf.windowEnd(); seq++ {
			e.transmit(seq, "corrupt_ack")
		}
		e.startTimerIfWindowOpen()
		return
	}

	ack := int(pkt.AckNum)
	if ack < e.buf.base {
		level.Debug(e.logger).Log("message", "stale ack ignored", "acknum", ack, "base", e.buf.base)
		return
	}

	e.stopTimer()
	oldBase := e.buf.base
	newBase := ack + 1
	e.buf.advanceBase(newBase)

	lo := oldBase + e.buf.window
	hi := newBase + e.buf.window
	if hi > e.buf.nextIndex {
		hi = e.buf.nextIndex
	}
	for seq := lo; seq < hi; seq++ {
		if entry := e.buf.at(seq); entry != nil && !entry.transmitted {
			e.transmit(seq, "")
		}
	}

	e.startTimerIfWindowOpen()
}
