// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run connects a fresh endpoint pair, runs both Cont-world protocols, and
// returns both results. Interleaves execution of both sides on the
// calling goroutine using adaptive backoff (iox.Backoff) when neither
// side can make progress. Does not spawn goroutines.
func Run[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	return RunExpr(Reify(a), Reify(b))
}

// RunExpr connects a fresh endpoint pair, runs both Expr-world protocols,
// and returns both results. Interleaves execution of both sides on the
// calling goroutine using adaptive backoff (iox.Backoff) when neither
// side can make progress. Does not spawn goroutines.
func RunExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	epA, epB := Pair()
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff

	var copA channelDispatcher
	if suspA != nil {
		copA = suspA.Op().(channelDispatcher)
	}
	var copB channelDispatcher
	if suspB != nil {
		copB = suspB.Op().(channelDispatcher)
	}

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			v, err := copA.DispatchChannel(epA)
			if err == nil {
				resultA, suspA = suspA.Resume(v)
				if suspA != nil {
					copA = suspA.Op().(channelDispatcher)
				}
				progress = true
			}
		}
		if suspB != nil {
			v, err := copB.DispatchChannel(epB)
			if err == nil {
				resultB, suspB = suspB.Resume(v)
				if suspB != nil {
					copB = suspB.Op().(channelDispatcher)
				}
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
