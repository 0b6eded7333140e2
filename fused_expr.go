// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprHalfClose   kont.Erased = HalfClose{}
	exprHangup      kont.Erased = Hangup{}
	exprAwait       kont.Erased = Await{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprSendThen writes a payload and then continues with next.
// Fuses ExprPerform(Send{Data: p}) + ExprThen.
func ExprSendThen[B any](p []byte, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Send{Data: p}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func recvBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func([]byte) kont.Expr[B])
	result := f(current.([]byte))
	return kont.Erased(result.Value), result.Frame
}

// ExprRecvBind reads up to max bytes and passes them to f.
// Fuses ExprPerform(Recv{Max: max}) + ExprBind.
func ExprRecvBind[B any](max int, f func([]byte) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = recvBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Recv{Max: max}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprHalfCloseThen signals end-of-stream and continues with next.
// Fuses ExprPerform(HalfClose{}) + ExprThen.
func ExprHalfCloseThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprHalfClose
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprHangupDone disconnects the endpoint and returns a.
// Fuses ExprPerform(Hangup{}) + ExprThen + ExprReturn.
func ExprHangupDone[A any](a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprHangup
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}

func awaitBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Readiness) kont.Expr[B])
	result := f(current.(Readiness))
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind waits until a direction is ready and passes the readiness to f.
// Fuses ExprPerform(Await{}) + ExprBind.
func ExprAwaitBind[B any](f func(Readiness) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = awaitBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprAwait
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}
