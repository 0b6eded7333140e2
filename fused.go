// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// SendThen writes a payload and then continues with next.
// Fuses Perform(Send{Data: p}) + Then; the count written is discarded,
// use kont.Bind on [Send] directly when the protocol needs it.
func SendThen[B any](p []byte, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send{Data: p}), next)
}

// RecvBind reads up to max bytes and passes them to f.
// Fuses Perform(Recv{Max: max}) + Bind. f receives an empty slice at
// end-of-stream.
func RecvBind[B any](max int, f func([]byte) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv{Max: max}), f)
}

// HalfCloseThen signals end-of-stream and continues with next.
// Fuses Perform(HalfClose{}) + Then.
func HalfCloseThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(HalfClose{}), next)
}

// HangupDone disconnects the endpoint and returns a.
// Fuses Perform(Hangup{}) + Then + Pure.
func HangupDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Hangup{}), kont.Pure(a))
}

// AwaitBind waits until a direction is ready and passes the readiness to f.
// Fuses Perform(Await{}) + Bind.
func AwaitBind[B any](f func(Readiness) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await{}), f)
}
