package nonce

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// NullNonce wraps a nonce byte string for use with database/sql, the
// way a nullable column needs. A nonce is stored and read back as hex
// text; the underlying width is not encoded alongside it, so callers
// scanning an unfamiliar NullNonce infer width from its byte length.
type NullNonce struct {
	Nonce []byte
	Valid bool
}

var (
	_ driver.Valuer            = NullNonce{}
	_ sql.Scanner              = (*NullNonce)(nil)
	_ json.Marshaler           = NullNonce{}
	_ json.Unmarshaler         = (*NullNonce)(nil)
	_ encoding.TextMarshaler   = NullNonce{}
	_ encoding.TextUnmarshaler = (*NullNonce)(nil)
)

// Value implements driver.Valuer.
func (n NullNonce) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return hex.EncodeToString(n.Nonce), nil
}

// Scan implements sql.Scanner.
func (n *NullNonce) Scan(src interface{}) error {
	if src == nil {
		n.Nonce, n.Valid = nil, false
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return n.UnmarshalText(v)
	case string:
		return n.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("nonce: cannot scan %T into NullNonce", src)
	}
}

var nullJSON = []byte("null")

// MarshalJSON marshals NullNonce as null or a hex string.
func (n NullNonce) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullJSON, nil
	}
	return json.Marshal(hex.EncodeToString(n.Nonce))
}

// UnmarshalJSON unmarshals a NullNonce.
func (n *NullNonce) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.Nonce, n.Valid = nil, false
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (n NullNonce) MarshalText() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return []byte(hex.EncodeToString(n.Nonce)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NullNonce) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		n.Nonce, n.Valid = nil, false
		return nil
	}
	decoded := make([]byte, hex.DecodedLen(len(b)))
	if _, err := hex.Decode(decoded, b); err != nil {
		return fmt.Errorf("nonce: invalid hex: %w", err)
	}
	if _, ok := widthForByteLen(len(decoded)); !ok {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidWidth, len(decoded))
	}
	n.Nonce, n.Valid = decoded, true
	return nil
}
