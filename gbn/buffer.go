package gbn

// bufferEntry holds one buffered outbound packet plus a transmitted
// flag: a packet is only sent as "new" once, on first entry into the
// window, so an ACK that slides several sequence numbers at once never
// re-sends packets that are already in flight.
type bufferEntry struct {
	pkt         *Packet
	transmitted bool
}

// sendBuffer holds all not-yet-acknowledged outbound packets for one
// entity, indexed by absolute sequence number, and enforces the sender's
// window and capacity limits. Acknowledged entries are discarded as soon
// as the window advances past them, so the backing slice never grows
// past capacity even though sequence numbers themselves increase without
// bound over the life of an entity.
type sendBuffer struct {
	capacity  int
	window    int
	entries   []bufferEntry
	base      int
	nextIndex int
}

func newSendBuffer(cfg Config) *sendBuffer {
	return &sendBuffer{
		capacity: cfg.BufferCapacity,
		window:   int(cfg.Window),
		entries:  []bufferEntry{},
	}
}

// outstanding returns the number of packets assigned a sequence number
// but not yet acknowledged.
func (b *sendBuffer) outstanding() int {
	return b.nextIndex - b.base
}

// full reports whether the buffer has no room for another submission.
// Capacity bounds outstanding packets (nextIndex - base), not the total
// ever assigned, so a long-lived entity never runs out of room as long
// as its peer keeps acknowledging.
func (b *sendBuffer) full() bool {
	return b.outstanding() >= b.capacity
}

// append assigns pkt the next sequence number and stores it, returning
// the assigned sequence number. The caller is responsible for checking
// full() first.
func (b *sendBuffer) append(pkt *Packet) int {
	seq := b.nextIndex
	b.entries = append(b.entries, bufferEntry{pkt: pkt})
	b.nextIndex++
	return seq
}

// at returns the entry for sequence number seq, or nil if seq is not
// currently buffered.
func (b *sendBuffer) at(seq int) *bufferEntry {
	idx := seq - b.base
	if idx < 0 || idx >= len(b.entries) {
		return nil
	}
	return &b.entries[idx]
}

// windowEnd returns the exclusive upper bound of the current send
// window: min(base+window, nextIndex).
func (b *sendBuffer) windowEnd() int {
	end := b.base + b.window
	if end > b.nextIndex {
		end = b.nextIndex
	}
	return end
}

// inWindow reports whether seq currently lies within [base, windowEnd).
func (b *sendBuffer) inWindow(seq int) bool {
	return seq >= b.base && seq < b.windowEnd()
}

// advanceBase moves the window's left edge to newBase, discarding
// entries that fall before it. newBase must be >= the current base; a
// smaller value is a no-op.
func (b *sendBuffer) advanceBase(newBase int) {
	if newBase <= b.base {
		return
	}
	discard := newBase - b.base
	if discard > len(b.entries) {
		discard = len(b.entries)
	}
	b.entries = b.entries[discard:]
	b.base = newBase
}
