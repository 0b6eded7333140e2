// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/duplex"
)

func TestReadinessIdle(t *testing.T) {
	a, b := duplex.Pair()
	for _, ep := range []*duplex.Endpoint{a, b} {
		r := ep.Ready()
		if r.ReadReady {
			t.Fatalf("%v read-ready with empty buffer", ep.Role())
		}
		if !r.WriteReady {
			t.Fatalf("%v not write-ready with empty buffer and peer attached", ep.Role())
		}
	}
}

func TestReadinessWithoutPeer(t *testing.T) {
	inst := duplex.NewInstance(0)
	a, _ := inst.Connect(duplex.ReadWrite)
	if r := a.Ready(); r.WriteReady {
		t.Fatal("write-ready with no peer attached")
	}
}

func TestReadinessData(t *testing.T) {
	a, b := duplex.Pair()
	writeAll(t, a, []byte("x"))
	if r := b.Ready(); !r.ReadReady {
		t.Fatal("not read-ready with buffered data")
	}
	if r := a.Ready(); r.ReadReady {
		t.Fatal("writer read-ready on its own data")
	}
}

// Reaching the close mark is itself a readiness event: a poll must report
// the pending end-of-stream as readable.
func TestReadinessEOS(t *testing.T) {
	a, b := duplex.Pair()
	if err := a.ShutWrite(context.Background()); err != nil {
		t.Fatalf("shut write: %v", err)
	}
	if r := b.Ready(); !r.ReadReady {
		t.Fatal("not read-ready at end-of-stream")
	}
}

// After half-closing its own direction the writer is no longer
// write-ready, until a further write moves the cursor past the mark.
func TestReadinessAfterOwnHalfClose(t *testing.T) {
	a, _ := duplex.Pair()
	if err := a.ShutWrite(context.Background()); err != nil {
		t.Fatalf("shut write: %v", err)
	}
	if r := a.Ready(); r.WriteReady {
		t.Fatal("write-ready after signaling end-of-stream")
	}
}

func TestReadinessFullBuffer(t *testing.T) {
	inst := duplex.NewInstance(8)
	a, _ := inst.Connect(duplex.ReadWrite)
	inst.Connect(duplex.ReadWrite)
	if n, _ := a.TryWrite([]byte("1234567")); n != 7 {
		t.Fatalf("fill wrote %d", n)
	}
	if r := a.Ready(); r.WriteReady {
		t.Fatal("write-ready with a full buffer")
	}
}

// Access modes shape readiness only. A read-only peer means this side's
// reads can never be satisfied; a write-only own mode masks read
// readiness the same way.
func TestReadinessAccessModes(t *testing.T) {
	inst := duplex.NewInstance(0)
	a, _ := inst.Connect(duplex.ReadOnly)
	b, _ := inst.Connect(duplex.ReadWrite)

	if r := b.Ready(); r.ReadReady {
		t.Fatal("read-ready against a read-only peer")
	}
	if r := b.Ready(); !r.WriteReady {
		t.Fatal("not write-ready against a read-only peer")
	}
	if r := a.Ready(); r.WriteReady {
		t.Fatal("read-only endpoint reported write-ready")
	}

	inst2 := duplex.NewInstance(0)
	c, _ := inst2.Connect(duplex.ReadWrite)
	d, _ := inst2.Connect(duplex.WriteOnly)
	writeAll(t, d, []byte("x"))
	if r := c.Ready(); !r.ReadReady {
		t.Fatal("not read-ready with data from a write-only peer")
	}
	if r := c.Ready(); r.WriteReady {
		t.Fatal("write-ready toward a write-only peer")
	}
	if r := d.Ready(); r.ReadReady {
		t.Fatal("write-only endpoint reported read-ready")
	}
}

// The recorded access mode of a role outlives its occupant: after a
// read-only peer disconnects, the survivor still evaluates readiness
// against read-only until a new connector overwrites the slot. Intended
// behavior, inherited from the reference semantics.
func TestReadinessPersistsDepartedPeerMode(t *testing.T) {
	inst := duplex.NewInstance(0)
	a, _ := inst.Connect(duplex.ReadOnly)
	b, _ := inst.Connect(duplex.ReadWrite)
	a.Close()

	// End-of-stream is pending for b, yet the departed peer's read-only
	// mode still masks read readiness.
	if r := b.Ready(); r.ReadReady {
		t.Fatal("read-ready masked mode must persist after peer disconnect")
	}

	// A fresh read-write connector on the vacated role lifts the mask.
	inst.Connect(duplex.ReadWrite)
	if r := b.Ready(); r.ReadReady {
		t.Fatal("reconnect cleared the close mark; nothing to read yet")
	}
}

func TestWaitReadyUnblocksOnWrite(t *testing.T) {
	a, b := duplex.Pair()
	// Saturate b's write direction so only read readiness can fire.
	for {
		if _, err := b.TryWrite([]byte("pad pad pad pad ")); duplex.IsWouldBlock(err) {
			break
		}
	}

	done := make(chan duplex.Readiness)
	go func() {
		r, err := b.WaitReady(context.Background())
		if err != nil {
			t.Errorf("wait ready: %v", err)
		}
		done <- r
	}()

	select {
	case r := <-done:
		t.Fatalf("ready %+v before any mutation", r)
	case <-time.After(20 * time.Millisecond):
	}

	writeAll(t, a, []byte("wake"))
	select {
	case r := <-done:
		if !r.ReadReady {
			t.Fatalf("readiness = %+v, want read-ready", r)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitReady missed the buffer mutation")
	}
}

func TestWaitReadyInterrupted(t *testing.T) {
	inst := duplex.NewInstance(0)
	a, _ := inst.Connect(duplex.ReadWrite)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		_, err := a.WaitReady(ctx)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	if err := <-done; !duplex.IsInterrupted(err) {
		t.Fatalf("cancelled wait: err = %v, want ErrInterrupted", err)
	}
}
