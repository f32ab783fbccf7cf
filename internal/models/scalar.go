package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID is used to seamlessly convert between the backend's numeric identifiers
// and client-generated string tokens. Server-assigned ids arrive as JSON
// numbers; guest cart line ids are locally generated strings.
//
//nolint:recvcheck // pointer receiver needed for json.Unmarshaler
type ID string

func (id ID) String() string {
	return string(id)
}

// IsNumeric reports whether the id looks like a server-assigned identifier.
func (id ID) IsNumeric() bool {
	if id == "" {
		return false
	}
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return []byte(strconv.Quote(string(id))), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("unmarshal id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	*id = ID(data)
	return nil
}

// Money is a monetary amount in the store currency. The backend serializes
// decimal fields as JSON strings, so both "12.99" and 12.99 must decode.
//
//nolint:recvcheck // pointer receiver needed for json.Unmarshaler
type Money float64

func (m Money) Float64() float64 {
	return float64(m)
}

// Format renders the amount rounded to cents, for display only. Internal
// values stay full precision.
func (m Money) Format() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("unmarshal money: %w", err)
		}
		if s == "" {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("unmarshal money: %w", err)
		}
		*m = Money(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("unmarshal money: %w", err)
	}
	*m = Money(v)
	return nil
}
