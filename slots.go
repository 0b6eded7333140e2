// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "code.hybscloud.com/atomix"

// slotTracker tracks which of the two roles is occupied, the open count,
// and each role's last-known access mode.
//
// Role occupancy is guarded by the owning instance's lock. The open count
// and modes are written only under that lock but are shared-read without
// it: the write predicate loads nopen from the I/O path, and the readiness
// evaluator loads the peer's mode; both are atomics for that reason.
//
// modeA and modeB are not cleared on disconnect. The recorded mode of a
// departed peer keeps shaping the remaining endpoint's readiness until a
// new connector overwrites the slot.
type slotTracker struct {
	nopen atomix.Uint32
	roleA Serial // occupant serial; 0 = vacant
	roleB Serial
	modeA atomix.Uint32 // last-known AccessMode of the role-A occupant
	modeB atomix.Uint32
}

// opens returns the current open count (0, 1, or 2).
func (s *slotTracker) opens() int {
	return int(s.nopen.Load())
}
