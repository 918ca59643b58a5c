/*
Package gbn implements the Go-Back-N (GBN) automatic repeat request
transport protocol between two peer entities exchanging fixed-size
messages over an unreliable, order-preserving channel.

GBN peers run a sliding-window sender and an in-order receiver over a
single shared retransmission timer. The sender transmits up to Window
packets ahead of the oldest unacknowledged sequence number; the receiver
accepts only the next packet in sequence, re-acknowledging the last
in-order packet for anything else. Loss is recovered by a single timer
per peer: on expiry, the entire outstanding window is retransmitted.

Usage

	sink := ... // implements ApplicationSink
	channel := ... // implements Channel, delivers to the peer
	timer := ... // implements Timer, driven by an external scheduler

	a := gbn.NewEntity(logger, gbn.DefaultConfig(), channel, timer, sink)
	a.Init()
	a.Submit(msg)

Collaborators

Package gbn does not drive simulated time, inject loss or corruption, or
schedule events itself: those concerns belong to the caller (see packages
internal/scheduler and internal/netem for a concrete discrete-event
implementation). The Channel, Timer and ApplicationSink interfaces are the
entity's only protocol-level collaborators, so Entity can be exercised in
tests against small fakes without any real scheduler. Logging (go-kit/log)
and the retransmission counter in package metrics are ambient concerns
threaded through directly rather than through a callback.

Wire compatibility

Packet checksums use an asymmetric convention: DATA packets store the
bitwise complement of the computed checksum, ACK packets store it
directly. This asymmetry must be preserved by any peer implementation for
wire compatibility; see the checksum helpers in checksum.go for details.
*/
package gbn
