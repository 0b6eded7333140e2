// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex_test

import (
	"testing"
	"time"

	"code.hybscloud.com/duplex"
	"code.hybscloud.com/kont"
)

func TestRunExprDeadlockCoverage(t *testing.T) {
	a := duplex.ExprRecvBind(8, func(p []byte) kont.Expr[struct{}] { return kont.ExprReturn(struct{}{}) })
	b := duplex.ExprRecvBind(8, func(p []byte) kont.Expr[struct{}] { return kont.ExprReturn(struct{}{}) })

	go func() {
		duplex.RunExpr[struct{}, struct{}](a, b)
	}()

	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
}

func TestRunErrorExprDeadlockCoverage(t *testing.T) {
	a := duplex.ExprRecvBind(8, func(p []byte) kont.Expr[struct{}] { return kont.ExprReturn(struct{}{}) })
	b := duplex.ExprRecvBind(8, func(p []byte) kont.Expr[struct{}] { return kont.ExprReturn(struct{}{}) })

	go func() {
		duplex.RunErrorExpr[string, struct{}, struct{}](a, b)
	}()

	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
}
