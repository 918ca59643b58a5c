package sink

import (
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/katalix/go-gbn/gbn"
)

func testMessage(b byte) gbn.Message {
	var m gbn.Message
	for i := range m {
		m[i] = b
	}
	return m
}

func TestDeliverAccumulatesInOrder(t *testing.T) {
	s := New(log.NewNopLogger(), "b")

	want := []gbn.Message{testMessage('a'), testMessage('b'), testMessage('c')}
	for _, msg := range want {
		s.Deliver(msg)
	}

	got := s.Delivered()
	if len(got) != len(want) {
		t.Fatalf("got %d delivered messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivered[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewSinkStartsEmpty(t *testing.T) {
	s := New(log.NewNopLogger(), "a")
	if len(s.Delivered()) != 0 {
		t.Fatalf("a freshly constructed sink must have nothing delivered")
	}
}
