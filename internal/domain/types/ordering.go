package types

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Ordering is the result of a three-way comparison. Its integer value is the
// storage and wire encoding.
type Ordering int8

// Orderings.
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Encode returns the wire code: -1, 0 or 1.
func (o Ordering) Encode() int8 { return int8(o) }

// DecodeOrdering parses a wire code. Anything outside {-1, 0, 1} fails with
// ErrInvalidOrderingCode.
func DecodeOrdering(code int8) (Ordering, error) {
	switch Ordering(code) {
	case Less, Equal, Greater:
		return Ordering(code), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidOrderingCode, code)
	}
}

// Valid reports whether o is one of the three orderings.
func (o Ordering) Valid() bool {
	_, err := DecodeOrdering(int8(o))
	return err == nil
}

// Inverse swaps Less and Greater.
func (o Ordering) Inverse() Ordering { return -o }

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Ordering(%d)", int8(o))
	}
}

// MarshalJSON encodes the ordering as its integer code.
func (o Ordering) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrderingCode, int8(o))
	}
	return json.Marshal(o.Encode())
}

// UnmarshalJSON decodes an integer code. Values outside the int8 range are
// rejected along with everything outside {-1, 0, 1}.
func (o *Ordering) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return fmt.Errorf("%w: null", ErrInvalidOrderingCode)
	}
	var code int64
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrderingCode, err)
	}
	if code < -1 || code > 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOrderingCode, code)
	}
	v, err := DecodeOrdering(int8(code))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
