package gbn

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// packetWireLen is the on-the-wire length of a Packet: three int32
// fields plus the fixed payload.
const packetWireLen = 4 + 4 + 4 + PayloadSize

// Message is the application data unit exchanged between peers. It is
// treated opaquely by the transport.
type Message [PayloadSize]byte

// Packet is the transport wire unit. A Packet with SeqNum == -1 is an
// ACK packet; any other SeqNum identifies a DATA packet.
type Packet struct {
	SeqNum   int32
	AckNum   int32
	Checksum int32
	Payload  Message
}

// IsAck reports whether pkt is an ACK packet.
func (pkt *Packet) IsAck() bool {
	return pkt.SeqNum == ackSeqNum
}

// ToBytes renders pkt in its fixed big-endian wire format.
func (pkt *Packet) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(packetWireLen)
	for _, f := range []interface{}{pkt.SeqNum, pkt.AckNum, pkt.Checksum, &pkt.Payload} {
		if err := binary.Write(buf, binary.BigEndian, f); err != nil {
			return nil, fmt.Errorf("failed to encode packet: %v", err)
		}
	}
	return buf.Bytes(), nil
}

// PacketFromBytes parses a Packet from its fixed big-endian wire format.
func PacketFromBytes(b []byte) (*Packet, error) {
	if len(b) != packetWireLen {
		return nil, fmt.Errorf("packet must be %d bytes, got %d", packetWireLen, len(b))
	}
	pkt := &Packet{}
	r := bytes.NewReader(b)
	for _, f := range []interface{}{&pkt.SeqNum, &pkt.AckNum, &pkt.Checksum, &pkt.Payload} {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return nil, fmt.Errorf("failed to decode packet: %v", err)
		}
	}
	return pkt, nil
}

// clone returns a deep copy of pkt. Channels must copy packets crossing
// the Send boundary since the caller may reuse or mutate its own copy
// after Send returns (see Channel).
func (pkt *Packet) clone() *Packet {
	cp := *pkt
	return &cp
}
