// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing endpoint identifier.
// Each successful connect assigns the next serial value; role slots track
// their occupant by serial, so role resolution is by value rather than by
// handle identity.
type Serial = uint32

// counter is the global monotonic counter for endpoint serials.
// Starts at 1; serial 0 marks a vacant role slot.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
