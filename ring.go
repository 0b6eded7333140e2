// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "sync"

// cirBuf is one direction of an instance: a fixed-capacity circular byte
// buffer with a close mark. One storage slot stays empty as a sentinel, so
// a buffer of size n holds at most n-1 bytes; widx == ridx means empty and
// (widx+1) mod n == ridx means full.
//
// A single waiter set serves both readers waiting for data and writers
// waiting for space or peer presence: wait is closed and replaced on every
// mutation, and suspended callers re-check their predicate in a loop.
type cirBuf struct {
	mu   sync.Mutex
	buf  []byte
	widx int
	ridx int
	cidx int // close mark; -1 while the writing side is open
	wait chan struct{}
	inst *Instance // owner; its subscribed pollers are kicked on mutation
}

func newCirBuf(capacity int, inst *Instance) *cirBuf {
	return &cirBuf{
		buf:  make([]byte, capacity),
		cidx: -1,
		wait: make(chan struct{}),
		inst: inst,
	}
}

// available returns the byte count between ridx and widx. Caller holds mu.
func (b *cirBuf) available() int {
	n := b.widx - b.ridx
	if n < 0 {
		n += len(b.buf)
	}
	return n
}

// space returns the writable byte count, reserving the sentinel slot.
// Caller holds mu.
func (b *cirBuf) space() int {
	return len(b.buf) - 1 - b.available()
}

// full reports whether a write of one byte would overrun the sentinel.
// Caller holds mu.
func (b *cirBuf) full() bool {
	return (b.widx+1)%len(b.buf) == b.ridx
}

// atEOS reports whether the read cursor has reached the close mark.
// Caller holds mu.
func (b *cirBuf) atEOS() bool {
	return b.ridx == b.cidx
}

// copyOut removes up to len(dst) bytes starting at ridx, splitting across
// the wrap boundary into at most two copies, and advances ridx.
// Returns the byte count moved. Caller holds mu.
func (b *cirBuf) copyOut(dst []byte) int {
	n := min(len(dst), b.available())
	if n == 0 {
		return 0
	}
	first := min(n, len(b.buf)-b.ridx)
	copy(dst[:first], b.buf[b.ridx:b.ridx+first])
	if n > first {
		copy(dst[first:n], b.buf[:n-first])
	}
	b.ridx = (b.ridx + n) % len(b.buf)
	return n
}

// copyIn inserts up to space() bytes starting at widx, splitting across
// the wrap boundary as needed, and advances widx. Returns the byte count
// written. Caller holds mu.
func (b *cirBuf) copyIn(src []byte) int {
	n := min(len(src), b.space())
	if n == 0 {
		return 0
	}
	first := min(n, len(b.buf)-b.widx)
	copy(b.buf[b.widx:b.widx+first], src[:first])
	if n > first {
		copy(b.buf[:n-first], src[first:n])
	}
	b.widx = (b.widx + n) % len(b.buf)
	return n
}

// markClose records end-of-stream at the current write position.
// Idempotent: re-signaling re-marks the current position. Caller holds mu.
func (b *cirBuf) markClose() {
	b.cidx = b.widx
}

// reopen clears the close mark when a writer connects to this direction.
// Caller holds mu.
func (b *cirBuf) reopen() {
	b.cidx = -1
}

// broadcast wakes every waiter on this buffer and kicks subscribed
// pollers. Called after every mutation, while mu is held; a missed wake
// can deadlock a peer forever, so there is no single-wake path.
func (b *cirBuf) broadcast() {
	close(b.wait)
	b.wait = make(chan struct{})
	b.inst.subs.wake(b.inst)
}

// waitCh returns the current broadcast channel. The channel must be
// captured before releasing mu and re-checking the predicate, otherwise a
// wake between check and suspend is lost.
func (b *cirBuf) waitCh() <-chan struct{} {
	return b.wait
}
