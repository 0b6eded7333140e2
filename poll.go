// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "context"

// Readiness is the poll result for one endpoint: whether a read and a
// write would currently proceed without suspending.
type Readiness struct {
	ReadReady  bool
	WriteReady bool
}

// Ready computes the endpoint's current readiness without blocking or side
// effects.
//
// Write-ready requires space in the target buffer, both endpoints
// attached, no half-close already signaled at the current write position,
// a peer whose recorded mode is not write-only, and an own mode that is
// not read-only.
//
// Read-ready requires unread data or end-of-stream (reaching the close
// mark is itself a readiness event), a peer whose recorded mode is not
// read-only, and an own mode that is not write-only. The peer's mode is
// the last one recorded for the other role and persists after that peer
// disconnects.
func (ep *Endpoint) Ready() Readiness {
	peer := ep.peerMode()
	var r Readiness

	wb := ep.writeBuf()
	wb.mu.Lock()
	writable := !wb.full() && wb.cidx != wb.widx
	wb.mu.Unlock()
	if writable && ep.inst.slots.opens() == 2 &&
		peer != WriteOnly && ep.mode != ReadOnly {
		r.WriteReady = true
	}

	rb := ep.readBuf()
	rb.mu.Lock()
	readable := rb.widx != rb.ridx || rb.atEOS()
	rb.mu.Unlock()
	if readable && peer != ReadOnly && ep.mode != WriteOnly {
		r.ReadReady = true
	}
	return r
}

// WaitReady suspends until the endpoint is read-ready or write-ready,
// re-evaluating after every mutation of either buffer, and returns the
// readiness that ended the wait. Returns ErrInterrupted if ctx is
// cancelled first.
func (ep *Endpoint) WaitReady(ctx context.Context) (Readiness, error) {
	rb, wb := ep.readBuf(), ep.writeBuf()
	for {
		rb.mu.Lock()
		rch := rb.waitCh()
		rb.mu.Unlock()
		wb.mu.Lock()
		wch := wb.waitCh()
		wb.mu.Unlock()

		if r := ep.Ready(); r.ReadReady || r.WriteReady {
			return r, nil
		}
		select {
		case <-rch:
		case <-wch:
		case <-ctx.Done():
			return Readiness{}, ErrInterrupted
		}
	}
}
