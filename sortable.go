package nonce

// SortableNonce returns the next sortable-variant nonce for the named
// factory. Nonces produced by repeated calls, even across goroutines,
// sort in call order at millisecond granularity: the embedded
// timestamp only ever advances, and the in-millisecond counter resets
// to zero whenever the millisecond does.
func SortableNonce(name string, width int) ([]byte, error) {
	s, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return s.sortableNonce(width)
}

func (s *State) sortableNonce(width int) ([]byte, error) {
	fieldBits, ok := counterBits(width)
	if !ok {
		return nil, ErrInvalidWidth
	}
	// The tracking word always reserves sortableCounterBits (22) for
	// the in-ms count regardless of the output width; widths whose
	// output counter field is narrower (only width 64, at 13 bits) spin
	// until the millisecond advances instead of wrapping or duplicating,
	// per the CAS loop below.
	fieldMax := uint64(1)<<uint(fieldBits) - 1

	for {
		old := s.tsCounter.Load()
		oldTs := old >> sortableCounterBits
		oldCount := old & (1<<sortableCounterBits - 1)

		now := s.nowMs()

		if now <= oldTs && oldCount >= fieldMax {
			// Saturated for this millisecond at the output width's
			// counter capacity; spin until the clock millisecond
			// actually advances rather than emitting a duplicate or
			// wrapping the counter back into the timestamp field.
			continue
		}

		var newTs, newCount uint64
		if now > oldTs {
			newTs, newCount = now, 0
		} else {
			newTs, newCount = oldTs, oldCount+1
		}

		packed := newTs<<sortableCounterBits | newCount
		if s.tsCounter.CompareAndSwap(old, packed) {
			return encodeNonce(width, newTs, s.machineID, newCount)
		}
	}
}
