package production

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/exm/internal/primitives"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan PublishedMacrostep, 10)
	p := NewChannelPublisher(ch)

	step := primitives.Macrostep{Event: &primitives.Event{Name: "timer"}}

	if err := p.Publish(context.Background(), "test-machine", step); err != nil {
		t.Errorf("Publish failed: %v", err)
	}

	select {
	case got := <-ch:
		if got.MachineID != "test-machine" {
			t.Errorf("MachineID = %q, want test-machine", got.MachineID)
		}
		if got.Macrostep.Event.Name != "timer" {
			t.Errorf("Macrostep.Event.Name = %q, want timer", got.Macrostep.Event.Name)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no macrostep delivered")
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan PublishedMacrostep, 1)
	p := NewChannelPublisher(ch)
	ch <- PublishedMacrostep{} // fill the buffer

	if err := p.Publish(context.Background(), "test", primitives.Macrostep{}); err != nil {
		t.Errorf("Publish on full channel failed: %v", err)
	}
	// the second step is dropped silently, not blocked or errored
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan PublishedMacrostep, 1)
	p := NewChannelPublisher(ch)

	if err := p.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, open := <-ch; open {
		t.Error("channel still open after Close")
	}
}

func TestChannelPublisher_ContextCancelled(t *testing.T) {
	ch := make(chan PublishedMacrostep) // unbuffered, no reader
	p := NewChannelPublisher(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Publish(ctx, "test", primitives.Macrostep{}); err != context.Canceled {
		t.Errorf("Publish with cancelled ctx err = %v, want context.Canceled", err)
	}
}
