// SPDX-License-Identifier: Unlicense OR MIT

package app

import "sync/atomic"

// lastID is the last id issued in the process, across all targets.
var lastID atomic.Uint64

func generateID() uint64 {
	return lastID.Add(1)
}
