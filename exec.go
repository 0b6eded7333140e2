// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world channel protocol on a connected endpoint.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func Exec[R any](ep *Endpoint, protocol kont.Eff[R]) R {
	h := channelHandler[R]{ep: ep}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world channel protocol on a connected endpoint.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func ExecExpr[R any](ep *Endpoint, protocol kont.Expr[R]) R {
	h := channelHandler[R]{ep: ep}
	return kont.HandleExpr(protocol, h)
}
