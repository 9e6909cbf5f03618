package nonce

import "time"

// Inspection is the decomposed form of a counter or sortable nonce,
// returned by Inspect. It does not apply to encrypted nonces — cipher
// output carries no recoverable structure without first calling
// Decrypt.
type Inspection struct {
	Timestamp time.Time
	MachineID uint16
	Counter   uint64
}

// Inspect decomposes a width-bit counter or sortable nonce back into
// its timestamp, machine ID, and counter value, relative to the named
// factory's epoch.
func Inspect(name string, width int, b []byte) (Inspection, error) {
	s, err := lookup(name)
	if err != nil {
		return Inspection{}, err
	}
	return s.inspect(width, b)
}

func (s *State) inspect(width int, b []byte) (Inspection, error) {
	f, err := decodeNonce(width, b)
	if err != nil {
		return Inspection{}, err
	}
	return Inspection{
		Timestamp: time.UnixMilli(s.epochMs + int64(f.TimestampMs)).UTC(),
		MachineID: f.MachineID,
		Counter:   f.Counter,
	}, nil
}

// GetDatetime returns just the timestamp embedded in a width-bit
// counter or sortable nonce, relative to the named factory's epoch.
func GetDatetime(name string, width int, b []byte) (time.Time, error) {
	info, err := Inspect(name, width, b)
	if err != nil {
		return time.Time{}, err
	}
	return info.Timestamp, nil
}
