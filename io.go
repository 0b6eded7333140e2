// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"context"
	"io"

	"code.hybscloud.com/iox"
)

// TryRead is the non-blocking read. It moves up to len(p) bytes from the
// endpoint's source buffer and reports the count.
//
// Returns (0, io.EOF) once the read cursor has reached the close mark;
// buffered data written before the mark is always drained first.
// Returns iox.ErrWouldBlock when no data is buffered and the direction is
// still open — including for len(p) == 0, matching the blocking variant's
// suspension condition.
func (ep *Endpoint) TryRead(p []byte) (int, error) {
	b := ep.readBuf()
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.atEOS() {
		return 0, io.EOF
	}
	if b.available() == 0 {
		return 0, iox.ErrWouldBlock
	}
	n := b.copyOut(p)
	b.broadcast() // space may now be available for a blocked writer
	return n, nil
}

// Read is the blocking read. It suspends while the source buffer is empty
// and not half-closed, re-checking after every buffer mutation, and then
// moves up to len(p) bytes. A read that found data always reports a count
// greater than zero; (0, nil) occurs only for len(p) == 0.
//
// Returns (0, io.EOF) at end-of-stream and (0, ErrInterrupted) if ctx is
// cancelled while suspended.
func (ep *Endpoint) Read(ctx context.Context, p []byte) (int, error) {
	b := ep.readBuf()
	for {
		b.mu.Lock()
		if b.atEOS() {
			b.mu.Unlock()
			return 0, io.EOF
		}
		if b.available() > 0 {
			n := b.copyOut(p)
			b.broadcast()
			b.mu.Unlock()
			return n, nil
		}
		ch := b.waitCh()
		b.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return 0, ErrInterrupted
		}
	}
}

// TryWrite is the non-blocking write. It moves as many bytes of p as the
// target buffer has space for and reports the count, which may fall short
// of len(p); the caller owns the unwritten remainder.
//
// A zero-length p is the half-close signal: the close mark is set at the
// current write position and (0, nil) is returned. Returns
// iox.ErrWouldBlock while the peer is absent or the buffer is full — the
// peer-presence requirement applies to the half-close signal as well.
func (ep *Endpoint) TryWrite(p []byte) (int, error) {
	b := ep.writeBuf()
	b.mu.Lock()
	defer b.mu.Unlock()

	if ep.inst.slots.opens() != 2 || b.full() {
		return 0, iox.ErrWouldBlock
	}
	n := b.copyIn(p)
	if len(p) == 0 {
		b.markClose()
	}
	b.broadcast()
	return n, nil
}

// Write is the blocking write. It suspends while the peer is absent or the
// target buffer is full (intentional backpressure, not a fault), then
// moves as many bytes of p as fit and reports the count, which may fall
// short of len(p); the caller retries the remainder.
//
// A zero-length p half-closes this direction after the peer-presence wait.
// Returns (0, ErrInterrupted) if ctx is cancelled while suspended.
func (ep *Endpoint) Write(ctx context.Context, p []byte) (int, error) {
	b := ep.writeBuf()
	for {
		b.mu.Lock()
		if ep.inst.slots.opens() == 2 && !b.full() {
			n := b.copyIn(p)
			if len(p) == 0 {
				b.markClose()
			}
			b.broadcast()
			b.mu.Unlock()
			return n, nil
		}
		ch := b.waitCh()
		b.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return 0, ErrInterrupted
		}
	}
}

// ShutWrite half-closes the endpoint's write direction without
// disconnecting: the documented zero-length write. The peer's reads drain
// buffered data and then report io.EOF. The endpoint may keep reading, and
// a later write re-marks the stream end at the new position.
func (ep *Endpoint) ShutWrite(ctx context.Context) error {
	_, err := ep.Write(ctx, nil)
	return err
}
