// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex_test

import (
	"context"
	"io"
	"testing"

	"code.hybscloud.com/duplex"
	"code.hybscloud.com/kont"
)

// execExpr drives a protocol to completion on ep via Step+Advance loop.
// Retries on iox.ErrWouldBlock (peer not ready yet).
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](ep *duplex.Endpoint, protocol kont.Expr[R]) R {
	result, susp := duplex.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = duplex.Advance(ep, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// writeAll blocks until every byte of p has been written to ep.
func writeAll(tb testing.TB, ep *duplex.Endpoint, p []byte) {
	tb.Helper()
	for len(p) > 0 {
		n, err := ep.Write(context.Background(), p)
		if err != nil {
			tb.Fatalf("write: %v", err)
		}
		p = p[n:]
	}
}

// readAll blocks until ep reports end-of-stream and returns everything read.
func readAll(tb testing.TB, ep *duplex.Endpoint) []byte {
	tb.Helper()
	var out []byte
	buf := make([]byte, 64)
	for {
		n, err := ep.Read(context.Background(), buf)
		if err == io.EOF {
			return out
		}
		if err != nil {
			tb.Fatalf("read: %v", err)
		}
		out = append(out, buf[:n]...)
	}
}
