// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "sync"

const (
	// DefaultBufferSize is the per-direction buffer capacity used when a
	// configuration passes zero. One slot is a sentinel, so the usable
	// capacity is one byte less.
	DefaultBufferSize = 4096

	// minBufferSize is the smallest admissible buffer: the sentinel slot
	// plus room for at least one byte.
	minBufferSize = 2
)

// Instance is one independent bidirectional channel. It owns the two
// directional buffers (lazily allocated on first connect) and the endpoint
// slot tracker. The instance lock serializes connect and disconnect
// bookkeeping only; it is never held across a blocking wait, and buffer
// cursor mutation is guarded per buffer.
type Instance struct {
	id       int
	capacity int
	mu       sync.Mutex
	ab       *cirBuf // RoleA writes, RoleB reads
	ba       *cirBuf // RoleB writes, RoleA reads
	slots    slotTracker
	subs     subscribers
}

// NewInstance creates a standalone channel instance with the given
// per-direction buffer capacity (0 selects DefaultBufferSize).
// Panics if the capacity cannot hold the sentinel slot plus one byte.
func NewInstance(bufferSize int) *Instance {
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}
	if bufferSize < minBufferSize {
		panic("duplex: buffer size must be at least 2")
	}
	return &Instance{id: -1, capacity: bufferSize}
}

// ID returns the instance identifier within its registry, or -1 for a
// standalone instance.
func (inst *Instance) ID() int {
	return inst.id
}

// Opens returns the number of endpoints currently attached (0, 1, or 2).
func (inst *Instance) Opens() int {
	return inst.slots.opens()
}

// BufferSize returns the configured per-direction capacity, including the
// sentinel slot.
func (inst *Instance) BufferSize() int {
	return inst.capacity
}

// Connect attaches a new endpoint to the instance and assigns it the first
// vacant role, A before B. Fails with ErrBusy once two endpoints are
// attached.
//
// The buffer the new role reads from has its read cursor reset to the
// current write position: a joining reader starts caught up and never sees
// bytes written before it connected. Connecting also clears the close mark
// in both directions and wakes all waiters, unblocking a peer that was
// stalled writing with no counterpart present.
func (inst *Instance) Connect(mode AccessMode) (*Endpoint, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.slots.opens() >= 2 {
		return nil, ErrBusy
	}
	inst.slots.nopen.Add(1)
	if inst.ab == nil {
		inst.ab = newCirBuf(inst.capacity, inst)
	}
	if inst.ba == nil {
		inst.ba = newCirBuf(inst.capacity, inst)
	}

	ep := &Endpoint{inst: inst, mode: mode, serial: nextSerial()}
	switch {
	case inst.slots.roleA == 0:
		ep.role = RoleA
		inst.slots.roleA = ep.serial
		inst.slots.modeA.Store(uint32(mode))
	case inst.slots.roleB == 0:
		ep.role = RoleB
		inst.slots.roleB = ep.serial
		inst.slots.modeB.Store(uint32(mode))
	default:
		panic("duplex: open count out of sync with role slots")
	}

	src := ep.readBuf()
	src.mu.Lock()
	src.ridx = src.widx // reader starts caught up
	src.reopen()
	src.broadcast()
	src.mu.Unlock()

	dst := ep.writeBuf()
	dst.mu.Lock()
	dst.reopen()
	dst.broadcast()
	dst.mu.Unlock()

	return ep, nil
}

// disconnect detaches ep: the role is vacated for reuse and the buffer the
// role writes into is close-marked at the current write position, telling
// the peer no more data will ever arrive beyond that point. Waiters on
// that buffer are woken so a blocked peer observes end-of-stream promptly.
//
// The role's recorded access mode is deliberately left in place.
// Panics if ep does not currently hold a role on the instance; that is a
// caller defect, not a recoverable condition.
func (inst *Instance) disconnect(ep *Endpoint) {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	var out *cirBuf
	switch {
	case ep.role == RoleA && inst.slots.roleA == ep.serial:
		inst.slots.roleA = 0
		out = inst.ab
	case ep.role == RoleB && inst.slots.roleB == ep.serial:
		inst.slots.roleB = 0
		out = inst.ba
	default:
		panic("duplex: endpoint holds no role on its instance")
	}
	inst.slots.nopen.Add(^uint32(0))

	out.mu.Lock()
	out.markClose()
	out.broadcast()
	out.mu.Unlock()
}

// Pair creates a standalone instance with the default buffer size and
// connects both endpoints read-write. The returned endpoints are RoleA and
// RoleB in that order.
func Pair() (*Endpoint, *Endpoint) {
	inst := NewInstance(DefaultBufferSize)
	a, err := inst.Connect(ReadWrite)
	if err != nil {
		panic("duplex: connect on fresh instance failed")
	}
	b, err := inst.Connect(ReadWrite)
	if err != nil {
		panic("duplex: connect on fresh instance failed")
	}
	return a, b
}
