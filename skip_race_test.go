// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package duplex_test

import "testing"

// skipRace skips tests that exercise the lfq-backed poller event queue or
// the backoff-spinning protocol runners. The race detector tracks
// per-variable happens-before and cannot see the queue's cross-variable
// memory ordering (store-release on data, load-acquire on index),
// producing false positives, and it slows busy-wait loops pathologically.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: lfq ordering and busy-wait loops confuse the race detector")
}
