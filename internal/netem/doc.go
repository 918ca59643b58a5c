// Package netem implements the lossy, corrupting, order-preserving
// medium between two simulated entities.
//
// Each Channel rolls independent loss and corruption probabilities,
// corrupts one of three sites when triggered (payload byte, sequence
// number, ack number), and floors a packet's arrival time at the latest
// scheduled arrival for its direction so packets already in flight can
// never be reordered, even though they can still be lost.
package netem
