// Package production provides the integrations a hosting process wires
// around the pure interpreter in internal/primitives: event publishing and
// statechart visualization. Neither concern is reachable from the core
// engine - both only ever observe a Machine from the outside.
package production

import (
	"context"

	"github.com/comalice/exm/internal/primitives"
)

// PublishedMacrostep bundles a completed Macrostep with the machine ID it
// came from, for consumers following more than one machine on one channel.
type PublishedMacrostep struct {
	MachineID string
	Macrostep primitives.Macrostep
}

// ChannelPublisher forwards completed Macrosteps to a Go channel.
// Publish never blocks: on backpressure it drops the step rather than
// stall the caller's dispatch loop.
type ChannelPublisher struct {
	ch chan<- PublishedMacrostep
}

// NewChannelPublisher creates a ChannelPublisher writing to ch.
func NewChannelPublisher(ch chan<- PublishedMacrostep) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish sends step for machineID without blocking. If ch is full it drops
// the step and returns nil; if ctx is done it returns ctx.Err(). When ctx is
// done and ch also has room, either of those two outcomes may occur.
func (p *ChannelPublisher) Publish(ctx context.Context, machineID string, step primitives.Macrostep) error {
	select {
	case p.ch <- PublishedMacrostep{MachineID: machineID, Macrostep: step}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Close closes the underlying channel. Callers must not Publish afterward.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
