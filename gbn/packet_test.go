package gbn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPacketWireRoundTrip(t *testing.T) {
	cases := []*Packet{
		{SeqNum: 0, AckNum: 0, Checksum: 42, Payload: Message{1, 2, 3}},
		{SeqNum: ackSeqNum, AckNum: 17, Checksum: -99},
		{SeqNum: -1, AckNum: -1, Checksum: -1},
	}

	for _, want := range cases {
		b, err := want.ToBytes()
		if err != nil {
			t.Fatalf("ToBytes(%+v) failed: %v", want, err)
		}
		if len(b) != packetWireLen {
			t.Fatalf("ToBytes(%+v) produced %d bytes, want %d", want, len(b), packetWireLen)
		}
		got, err := PacketFromBytes(b)
		if err != nil {
			t.Fatalf("PacketFromBytes failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("packet wire round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestPacketFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := PacketFromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatalf("PacketFromBytes should reject a short buffer")
	}
}

func TestPacketCloneIsIndependent(t *testing.T) {
	pkt := &Packet{SeqNum: 1, Payload: Message{9}}
	cp := pkt.clone()
	cp.SeqNum = 2
	cp.Payload[0] = 0

	if pkt.SeqNum != 1 || pkt.Payload[0] != 9 {
		t.Fatalf("mutating the clone affected the original: %+v", pkt)
	}
}

func TestIsAck(t *testing.T) {
	if (&Packet{SeqNum: 0}).IsAck() {
		t.Fatalf("seqnum 0 must not be an ack")
	}
	if !(&Packet{SeqNum: -1}).IsAck() {
		t.Fatalf("seqnum -1 must be an ack")
	}
}
