// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// channelDispatcher is the structural interface for channel operations.
// DispatchChannel is non-blocking: it returns iox.ErrWouldBlock at the
// I/O boundary when the channel cannot make progress.
type channelDispatcher interface {
	DispatchChannel(ep *Endpoint) (kont.Resumed, error)
}

// channelHandler implements kont.Handler for channel effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch
// into blocking evaluation for Exec/ExecExpr.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type channelHandler[R any] struct {
	ep *Endpoint
}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (h channelHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(channelDispatcher)
	if !ok {
		panic("duplex: unhandled effect in channelHandler")
	}
	return dispatchWait(h.ep, cop), true
}

// dispatchWait blocks until DispatchChannel succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff (I/O readiness waiting).
func dispatchWait(ep *Endpoint, cop channelDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := cop.DispatchChannel(ep)
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Send is the effect operation for writing a byte payload.
// Perform(Send{Data: p}) resumes with the count written, which may fall
// short of len(p); the protocol owns the remainder.
type Send struct {
	kont.Phantom[int]
	Data []byte
}

// DispatchChannel handles Send on the endpoint.
// Non-blocking: returns iox.ErrWouldBlock while the peer is absent or the
// target buffer is full.
func (s Send) DispatchChannel(ep *Endpoint) (kont.Resumed, error) {
	n, err := ep.TryWrite(s.Data)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Recv is the effect operation for reading up to Max bytes.
// Perform(Recv{Max: n}) resumes with the bytes read; a zero-length result
// is end-of-stream for this direction.
type Recv struct {
	kont.Phantom[[]byte]
	Max int
}

// DispatchChannel handles Recv on the endpoint.
// Non-blocking: returns iox.ErrWouldBlock while the source buffer is
// empty and still open. End-of-stream resumes with an empty slice rather
// than an error, so protocols branch on length.
func (r Recv) DispatchChannel(ep *Endpoint) (kont.Resumed, error) {
	buf := make([]byte, r.Max)
	n, err := ep.TryRead(buf)
	if err == io.EOF {
		return []byte(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// HalfClose is the effect operation for the zero-length-write signal.
// Perform(HalfClose{}) marks end-of-stream at the current write position
// without disconnecting.
type HalfClose struct {
	kont.Phantom[struct{}]
}

// DispatchChannel handles HalfClose on the endpoint.
// Non-blocking: like any write, it returns iox.ErrWouldBlock while the
// peer is absent or the buffer is full.
func (HalfClose) DispatchChannel(ep *Endpoint) (kont.Resumed, error) {
	if _, err := ep.TryWrite(nil); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Hangup is the effect operation for disconnecting the endpoint.
// Perform(Hangup{}) vacates the role and close-marks the written
// direction. Never blocks.
type Hangup struct {
	kont.Phantom[struct{}]
}

// DispatchChannel handles Hangup on the endpoint.
func (Hangup) DispatchChannel(ep *Endpoint) (kont.Resumed, error) {
	_ = ep.Close()
	return struct{}{}, nil
}

// Await is the effect operation for readiness. Perform(Await{}) resumes
// with the endpoint's Readiness once a read or write would proceed.
type Await struct {
	kont.Phantom[Readiness]
}

// DispatchChannel handles Await on the endpoint.
// Non-blocking: returns iox.ErrWouldBlock while neither direction is
// ready.
func (Await) DispatchChannel(ep *Endpoint) (kont.Resumed, error) {
	r := ep.Ready()
	if !r.ReadReady && !r.WriteReady {
		return nil, iox.ErrWouldBlock
	}
	return r, nil
}
