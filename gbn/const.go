package gbn

// PayloadSize is the fixed size in bytes of a Message and of a Packet's
// Payload field.
const PayloadSize = 20

// ackSeqNum is the sentinel SeqNum value identifying an ACK packet.
// Any non-negative SeqNum identifies a DATA packet.
const ackSeqNum = -1

// noneAckedAckNum is the AckNum an entity emits when nothing has yet
// been delivered. It collides numerically with ackSeqNum, but the
// DATA/ACK discriminator is always SeqNum, never AckNum, so the
// collision is benign.
const noneAckedAckNum = -1

const (
	// defaultWindow is the maximum number of unacknowledged packets a
	// sender may have in flight at once.
	defaultWindow = 8
	// defaultTimerIncrement is the simulated-time duration of the
	// retransmission timer, in the units understood by the Timer
	// collaborator.
	defaultTimerIncrement = 17
	// bufferCapacity is the minimum number of outstanding packets the
	// send buffer must be able to hold over the life of an entity.
	bufferCapacity = 51
)
