// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package duplex provides bounded bidirectional byte channels connecting
// exactly two endpoints, with blocking and non-blocking I/O and poll-style
// readiness evaluation.
//
// Each [Instance] carries two independent circular byte buffers, one per
// direction, so the channel is genuinely bidirectional rather than a pipe.
// The first connector is assigned [RoleA], the second [RoleB]; a third
// connect attempt fails with [ErrBusy]. A writer blocks while the peer is
// absent or its target buffer is full; a reader blocks while its source
// buffer is empty and not half-closed.
//
// # Architecture
//
//   - Transport: Two sentinel-slot circular byte buffers per instance, each
//     with a single broadcast waiter set shared by readers and writers.
//   - Non-blocking: [Endpoint.TryRead] and [Endpoint.TryWrite] return
//     [code.hybscloud.com/iox.ErrWouldBlock] on backpressure; blocking
//     variants accept a context and return [ErrInterrupted] on cancellation.
//   - Half-close: A zero-length write records the close mark; the peer's
//     reads drain buffered data and then report io.EOF, exactly once the
//     read cursor reaches the mark.
//   - Readiness: [Endpoint.Ready] computes read/write readiness without
//     blocking; [Poller] fans buffer-mutation events from any number of
//     instances into one lock-free queue via [code.hybscloud.com/lfq] for
//     external event loops.
//   - Execution: A dual-world protocol API on [code.hybscloud.com/kont]
//     expresses channel I/O as effect operations evaluated by [Exec], [Run],
//     or stepped with [Step] and [Advance].
//
// # API Topologies
//
//   - Direct I/O: [Instance.Connect], [Endpoint.Read], [Endpoint.Write],
//     [Endpoint.ShutWrite], [Endpoint.Close], [Endpoint.Ready].
//   - Operations: [Send], [Recv], [HalfClose], [Hangup], [Await].
//   - Cont-world: [SendThen], [RecvBind], [HalfCloseThen], [HangupDone], [AwaitBind].
//   - Expr-world: Zero-allocation variants like [ExprSendThen], [ExprRecvBind], etc. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] for trampoline-based streaming protocols.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] (or [StepError]/[AdvanceError]) evaluate protocol computations one effect at a time for proactor loops.
//   - Blocking: [Exec], [Run] (and Error variants) wait past would-block boundaries using adaptive backoff.
//   - Lifecycle: [Registry] holds a fixed table of instances addressed by a small integer identifier, mirroring a minor-device table.
//
// # Example
//
//	a, b := duplex.Pair()
//	go func() {
//		a.Write(context.Background(), []byte("ping"))
//		a.ShutWrite(context.Background())
//	}()
//	buf := make([]byte, 16)
//	for {
//		n, err := b.Read(context.Background(), buf)
//		if err == io.EOF {
//			break
//		}
//		process(buf[:n])
//	}
package duplex
