// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// DefaultPollerCapacity is the event queue capacity used when NewPoller is
// passed zero. lfq rounds capacities up to the next power of two.
const DefaultPollerCapacity = 1024

// Event is one buffer-mutation notification delivered to a poller.
//
// Events are level-triggered hints, not readiness claims: on receipt the
// consumer re-evaluates Readiness of the endpoints it tracks on the named
// instance. A nil Instance is a rescan hint — the event queue overflowed
// and the consumer should re-evaluate everything it tracks.
type Event struct {
	Instance *Instance
}

// Poller fans buffer-mutation events from any number of subscribed
// instances into one bounded lock-free MPMC queue, so an external event
// loop can wait for readiness changes across many channels at once.
//
// A full event queue never loses a wake: the dropped event degrades into
// a rescan hint and the wake signal itself is latched.
type Poller struct {
	events   lfq.Queue[Event]
	overflow atomix.Uint32
	kick     chan struct{}
}

// NewPoller creates a poller with the given event queue capacity
// (0 selects DefaultPollerCapacity).
func NewPoller(capacity int) *Poller {
	if capacity == 0 {
		capacity = DefaultPollerCapacity
	}
	return &Poller{
		events: lfq.NewMPMC[Event](capacity),
		kick:   make(chan struct{}, 1),
	}
}

// post enqueues a mutation event and latches the wake signal. Called from
// buffer broadcast with the buffer lock held, so it must not block.
func (p *Poller) post(inst *Instance) {
	ev := Event{Instance: inst}
	if p.events.Enqueue(&ev) != nil {
		p.overflow.Store(1)
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Next returns the next pending event without blocking. After an event
// queue overflow it returns one rescan hint (zero Event). Returns
// iox.ErrWouldBlock when nothing is pending.
func (p *Poller) Next() (Event, error) {
	ev, err := p.events.Dequeue()
	if err == nil {
		return ev, nil
	}
	if !lfq.IsWouldBlock(err) {
		return Event{}, err
	}
	if p.overflow.Swap(0) != 0 {
		return Event{}, nil
	}
	return Event{}, iox.ErrWouldBlock
}

// Wait blocks until an event is pending and returns it. Returns
// ErrInterrupted if ctx is cancelled first.
func (p *Poller) Wait(ctx context.Context) (Event, error) {
	for {
		ev, err := p.Next()
		if err == nil {
			return ev, nil
		}
		select {
		case <-p.kick:
		case <-ctx.Done():
			return Event{}, ErrInterrupted
		}
	}
}

// subscribers is the per-instance registration set for pollers. Shared by
// both directional buffers of the instance; wake is called with a buffer
// lock held and never takes one.
type subscribers struct {
	mu      sync.Mutex
	pollers []*Poller
}

func (s *subscribers) wake(inst *Instance) {
	s.mu.Lock()
	for _, p := range s.pollers {
		p.post(inst)
	}
	s.mu.Unlock()
}

// Subscribe registers p to be woken on every buffer mutation of the
// instance. Duplicate subscriptions post duplicate events.
func (inst *Instance) Subscribe(p *Poller) {
	inst.subs.mu.Lock()
	inst.subs.pollers = append(inst.subs.pollers, p)
	inst.subs.mu.Unlock()
}

// Unsubscribe removes every registration of p from the instance.
func (inst *Instance) Unsubscribe(p *Poller) {
	inst.subs.mu.Lock()
	kept := inst.subs.pollers[:0]
	for _, q := range inst.subs.pollers {
		if q != p {
			kept = append(kept, q)
		}
	}
	inst.subs.pollers = kept
	inst.subs.mu.Unlock()
}
