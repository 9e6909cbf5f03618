package nonce

import (
	"time"

	"github.com/nonceforge/nonce/cipher"
)

// Bit widths of a nonce, named by the number of bits in the emitted
// byte string.
const (
	Width64  = 64
	Width96  = 96
	Width128 = 128
)

// TimestampBits is the number of leading bits every nonce width spends
// on its millisecond timestamp (up to ~139 years past the epoch).
const TimestampBits = 42

// MachineIDBits is the number of bits spent on the node identifier,
// giving a 512-node fleet.
const MachineIDBits = 9

// MaxMachineID is the largest machine id a factory may be initialized with.
const MaxMachineID = (1 << MachineIDBits) - 1

// sortableCounterBits is the width of the in-millisecond counter field
// packed alongside the timestamp in the sortable-nonce atomic slot.
// It is wider than the 13-bit counter field of a 64-bit nonce so the
// top 9 bits act as a saturation buffer (see sortable.go).
const sortableCounterBits = 22

// DefaultEpoch is the reference instant against which every 42-bit
// timestamp is counted unless a factory overrides it.
var DefaultEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultPBKDF2Iterations is the released default iteration count for
// deriving per-width cipher keys from a base key. Earlier deployments
// used 1_000; a factory must keep whichever count it was initialized
// with, so this default only applies when no override is supplied.
const DefaultPBKDF2Iterations = cipher.DefaultPBKDF2Iterations

// counterBits returns the width of the counter/payload field for a
// nonce width.
func counterBits(width int) (int, bool) {
	switch width {
	case Width64:
		return 13, true
	case Width96:
		return 45, true
	case Width128:
		return 64, true
	default:
		return 0, false
	}
}

func byteLenForWidth(width int) (int, bool) {
	switch width {
	case Width64:
		return 8, true
	case Width96:
		return 12, true
	case Width128:
		return 16, true
	default:
		return 0, false
	}
}

func widthForByteLen(n int) (int, bool) {
	switch n {
	case 8:
		return Width64, true
	case 12:
		return Width96, true
	case 16:
		return Width128, true
	default:
		return 0, false
	}
}
