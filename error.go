// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

var (
	// ErrBusy is returned by connect when an instance already has two
	// endpoints attached.
	ErrBusy = errors.New("duplex: instance busy")

	// ErrInterrupted is returned when a blocking read, write, or wait is
	// cancelled through its context before the operation could complete.
	// No data is transferred on an interrupted call.
	ErrInterrupted = errors.New("duplex: interrupted")

	// ErrNoInstance is returned by registry lookups with an identifier
	// outside the registry's fixed table.
	ErrNoInstance = errors.New("duplex: no such instance")

	// ErrRegistryClosed is returned by registry operations after Close.
	ErrRegistryClosed = errors.New("duplex: registry closed")
)

// IsWouldBlock reports whether err is the would-block boundary signal
// returned by non-blocking operations. Delegates to iox for ecosystem
// consistency.
func IsWouldBlock(err error) bool { return iox.IsWouldBlock(err) }

// IsBusy reports whether err indicates a third connect attempt.
func IsBusy(err error) bool { return errors.Is(err, ErrBusy) }

// IsInterrupted reports whether err indicates a cancelled blocking call.
func IsInterrupted(err error) bool { return errors.Is(err, ErrInterrupted) }

// channelErrorHandler handles both channel and error effects.
// Channel ops wait on ErrWouldBlock via iox.Backoff. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type channelErrorHandler[E, A any] struct {
	ep     *Endpoint
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Channel+Error handler.
// Dispatch order: Channel → Error.
func (h channelErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if cop, ok := op.(channelDispatcher); ok {
		return dispatchWait(h.ep, cop), true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("duplex: unhandled effect in channelErrorHandler")
}

// ExecError runs a channel protocol with error handling on a connected endpoint.
// Returns Either[E, R] — Right on success, Left on Throw.
// Blocks on iox.ErrWouldBlock via adaptive backoff, without spawning goroutines
// or creating channels.
func ExecError[E, R any](ep *Endpoint, protocol kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := channelErrorHandler[E, R]{ep: ep, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecErrorExpr runs an Expr channel protocol with error handling on a
// connected endpoint. Returns Either[E, R] — Right on success, Left on Throw.
// Blocks on iox.ErrWouldBlock via adaptive backoff, without spawning goroutines
// or creating channels.
func ExecErrorExpr[E, R any](ep *Endpoint, protocol kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := channelErrorHandler[E, R]{ep: ep, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// RunError connects a fresh endpoint pair, runs both Cont-world protocols
// with error handling, and returns both results as Either values.
// Interleaves execution on the calling goroutine using adaptive backoff
// (iox.Backoff). Does not spawn goroutines.
func RunError[E, A, B any](a kont.Eff[A], b kont.Eff[B]) (kont.Either[E, A], kont.Either[E, B]) {
	return RunErrorExpr[E](Reify(a), Reify(b))
}

// RunErrorExpr connects a fresh endpoint pair, runs both Expr-world
// protocols with error handling, and returns both results as Either
// values. Interleaves execution on the calling goroutine using adaptive
// backoff (iox.Backoff). Does not spawn goroutines.
func RunErrorExpr[E, A, B any](a kont.Expr[A], b kont.Expr[B]) (kont.Either[E, A], kont.Either[E, B]) {
	epA, epB := Pair()
	resultA, suspA := StepError[E, A](a)
	resultB, suspB := StepError[E, B](b)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = AdvanceError[E](epA, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = AdvanceError[E](epB, suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}

// StepError evaluates a channel protocol with error support until the first
// effect suspension. Returns (Either[E, R], nil) on completion or error,
// or (zero, suspension) if pending.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceError dispatches the suspended operation on the endpoint.
// Channel ops are non-blocking (ErrWouldBlock). Error ops are eager:
// Throw discards the suspension and returns Left.
func AdvanceError[E, R any](ep *Endpoint, susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	// Channel ops: non-blocking dispatch
	if cop, ok := susp.Op().(channelDispatcher); ok {
		v, err := cop.DispatchChannel(ep)
		if err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	// Error ops: eager dispatch
	if eop, ok := susp.Op().(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		var ctx kont.ErrorContext[E]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("duplex: unhandled effect in AdvanceError")
}
