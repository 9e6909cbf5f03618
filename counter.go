package nonce

import "time"

// Nonce returns the next counter-variant nonce for the named factory:
// a 42-bit timestamp, the factory's 9-bit machine ID, and a counter
// field that simply increments on every call (13/45/64 bits wide for
// width 64/96/128). The timestamp is derived from the counter itself
// (init_at_ms plus however many times the counter field has wrapped),
// never from the wall clock — that is the sortable variant's job. It
// never blocks except for the 64-bit width's throttle, which sleeps
// just long enough to keep the derived timestamp from running ahead of
// wall-clock time once the 13-bit counter field would otherwise wrap
// inside a single millisecond.
func Nonce(name string, width int) ([]byte, error) {
	s, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return s.nonce(width)
}

func (s *State) nonce(width int) ([]byte, error) {
	cbits, ok := counterBits(width)
	if !ok {
		return nil, ErrInvalidWidth
	}

	count := s.counter.Add(1)
	counterMax := uint64(1)<<uint(cbits) - 1

	switch width {
	case Width64:
		// The 13-bit counter field wraps every 8192 calls; once a
		// caller is issuing nonces faster than one millisecond can
		// absorb 8192 of them, throttle so the timestamp field (and
		// therefore global uniqueness) keeps pace with the counter.
		cycle := count / (counterMax + 1)
		tsMs := s.initAtMs + cycle
		now := s.nowMs()
		if tsMs > now {
			time.Sleep(time.Duration(tsMs-now) * time.Millisecond)
		}
		return encodeNonce(width, tsMs, s.machineID, count&counterMax)

	case Width96:
		// The 45-bit counter field is wide enough that no realistic
		// call rate ever wraps it within a process lifetime, so the
		// timestamp simply tracks the cycle count without throttling.
		cycle := count / (counterMax + 1)
		tsMs := s.initAtMs + cycle
		return encodeNonce(width, tsMs, s.machineID, count&counterMax)

	default: // Width128
		// The 64-bit counter field spans the entirety of count, so the
		// timestamp never advances past the factory's birth time; the
		// counter itself holds call order instead.
		return encodeNonce(width, s.initAtMs, s.machineID, count)
	}
}
