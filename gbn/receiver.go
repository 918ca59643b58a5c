package gbn

import (
	"github.com/go-kit/kit/log/level"
)

// onData handles an inbound packet identified as DATA (SeqNum != -1). A
// corrupt packet is dropped silently; the sender will eventually time
// out and retransmit. An in-order packet is delivered to the
// application and acknowledged; anything else (duplicate or
// out-of-order) is re-acknowledged for the last successfully delivered
// sequence number without being delivered, which is pure Go-Back-N: the
// receiver never buffers out-of-order data.
func (e *Entity) onData(pkt *Packet) {
	if !verifyDataChecksum(pkt) {
		level.Debug(e.logger).Log("message", "corrupt data packet dropped", "seqnum", pkt.SeqNum)
		return
	}

	if pkt.SeqNum == e.expectedSeq {
		e.sink.Deliver(pkt.Payload)
		e.expectedSeq++
		e.sendAck(e.expectedSeq - 1)
		return
	}

	level.Debug(e.logger).Log("message", "out-of-order or duplicate data packet",
		"seqnum", pkt.SeqNum, "expected", e.expectedSeq)
	e.sendAck(e.expectedSeq - 1)
}

// sendAck emits a valid ACK for ackNum, which may legitimately be -1
// (noneAckedAckNum) before any packet has been delivered.
func (e *Entity) sendAck(ackNum int32) {
	ack := &Packet{SeqNum: ackSeqNum, AckNum: ackNum}
	setAckChecksum(ack)
	if err := e.channel.Send(ack); err != nil {
		level.Error(e.logger).Log("message", "channel send failed for ack", "acknum", ackNum, "error", err)
	}
}
