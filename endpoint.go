// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

// Endpoint is one side of a channel instance: the handle returned by
// connect, carrying an explicit role tag resolved by value. RoleA writes
// the A→B buffer and reads the B→A buffer; RoleB mirrors that.
type Endpoint struct {
	inst   *Instance
	role   Role
	mode   AccessMode
	serial Serial
}

// Role returns the endpoint's assigned role slot.
func (ep *Endpoint) Role() Role {
	return ep.role
}

// Mode returns the access mode declared at connect time.
func (ep *Endpoint) Mode() AccessMode {
	return ep.mode
}

// Serial returns the serial number assigned to this endpoint at connect.
func (ep *Endpoint) Serial() Serial {
	return ep.serial
}

// Instance returns the channel instance this endpoint is attached to.
func (ep *Endpoint) Instance() *Instance {
	return ep.inst
}

// Close detaches the endpoint from its instance. The direction this
// endpoint was writing is close-marked so the peer's reads drain and then
// report end-of-stream. Always succeeds; closing an endpoint that no
// longer holds its role panics.
func (ep *Endpoint) Close() error {
	ep.inst.disconnect(ep)
	return nil
}

// Buffered returns the byte count currently readable by this endpoint.
// Diagnostic snapshot; the value may be stale by the time it is used.
func (ep *Endpoint) Buffered() int {
	b := ep.readBuf()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.available()
}

// Writable returns the byte count this endpoint could write without
// blocking. Diagnostic snapshot, zero while the peer is absent.
func (ep *Endpoint) Writable() int {
	if ep.inst.slots.opens() != 2 {
		return 0
	}
	b := ep.writeBuf()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.space()
}

// readBuf returns the buffer this endpoint reads from.
func (ep *Endpoint) readBuf() *cirBuf {
	if ep.role == RoleA {
		return ep.inst.ba
	}
	return ep.inst.ab
}

// writeBuf returns the buffer this endpoint writes into.
func (ep *Endpoint) writeBuf() *cirBuf {
	if ep.role == RoleA {
		return ep.inst.ab
	}
	return ep.inst.ba
}

// peerMode returns the last-known access mode of the other role.
// The value persists after the peer disconnects.
func (ep *Endpoint) peerMode() AccessMode {
	if ep.role == RoleA {
		return AccessMode(ep.inst.slots.modeB.Load())
	}
	return AccessMode(ep.inst.slots.modeA.Load())
}
