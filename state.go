package nonce

import (
	"sync/atomic"
	"time"

	"github.com/nonceforge/nonce/cipher"
)

// State is the immutable-after-init record backing one named factory.
// Everything here is either set once at Init and never mutated again,
// or one of the two atomic counter slots that generation advances
// without ever taking a lock.
type State struct {
	name string

	machineID uint16

	// initInstant anchors the monotonic clock reading taken at Init;
	// initAtMs is the epoch-relative millisecond value at that same
	// instant. nowMs() advances initAtMs by the monotonic elapsed time
	// since initInstant, so wall-clock jumps (NTP step, DST, operator
	// date -s) never move a nonce's timestamp backwards.
	initInstant time.Time
	initAtMs    uint64
	epochMs     int64

	pbkdf2Iterations int

	// counter backs Nonce(width 64/96/128); initialized to 2^64-1 so
	// the first Add(1) yields 0.
	counter atomic.Uint64

	// tsCounter backs SortableNonce; packed as (ts:42 | count:22).
	tsCounter atomic.Uint64

	cipher64, cipher96, cipher128 *cipher.Cipher
}

func (s *State) nowMs() uint64 {
	elapsed := time.Since(s.initInstant)
	return s.initAtMs + uint64(elapsed.Milliseconds())
}

func (s *State) cipherFor(width int) *cipher.Cipher {
	switch width {
	case Width64:
		return s.cipher64
	case Width96:
		return s.cipher96
	case Width128:
		return s.cipher128
	default:
		return nil
	}
}

// Info is a read-only snapshot of a factory's identity, exposed by
// Lookup for introspection. It never exposes cipher material.
type Info struct {
	Name      string
	MachineID uint16
	EpochMs   int64
	InitAtMs  uint64
}

func (s *State) info() Info {
	return Info{
		Name:      s.name,
		MachineID: s.machineID,
		EpochMs:   s.epochMs,
		InitAtMs:  s.initAtMs,
	}
}

// FactoryStats is an operational snapshot of a factory's raw atomic
// words, returned by Stats. Taking a snapshot never blocks or perturbs
// a concurrent generator call — it is a single relaxed-enough Load per
// slot.
type FactoryStats struct {
	Name string
	// Counter is the raw value of the counter-nonce atomic slot.
	Counter uint64
	// SortableTimestampMs and SortableCount decompose the sortable
	// atomic slot's packed (ts, count) word.
	SortableTimestampMs uint64
	SortableCount       uint64
}

func (s *State) stats() FactoryStats {
	packed := s.tsCounter.Load()
	return FactoryStats{
		Name:                 s.name,
		Counter:              s.counter.Load(),
		SortableTimestampMs:  packed >> sortableCounterBits,
		SortableCount:        packed & ((1 << sortableCounterBits) - 1),
	}
}
