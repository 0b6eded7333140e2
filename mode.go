// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

// Role identifies one of the two admissible endpoint slots of an instance.
// The first connector is assigned RoleA, the second RoleB; a role vacated
// by disconnect is reused by the next connector.
type Role uint8

const (
	RoleA Role = iota
	RoleB
)

func (r Role) String() string {
	if r == RoleA {
		return "A"
	}
	return "B"
}

// AccessMode is the access mode an endpoint declares at connect time.
// Modes do not gate reads or writes; they only shape readiness evaluation,
// and the last-known mode of a role persists after that role disconnects
// so that readiness for the remaining peer can still be computed.
type AccessMode uint8

const (
	ReadWrite AccessMode = iota
	ReadOnly
	WriteOnly
)

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "ro"
	case WriteOnly:
		return "wo"
	default:
		return "rw"
	}
}
