// Package types contains the value types shared by the comparison domain:
// the NaN-free Number and the three-way Ordering.
package types

import (
	"bytes"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Number is a float64 that is never NaN, which makes it totally ordered.
// The zero value is 0.
type Number struct {
	v float64
}

// NewNumber wraps raw. Only NaN is rejected; both infinities are accepted.
func NewNumber(raw float64) (Number, error) {
	if math.IsNaN(raw) {
		return Number{}, ErrInvalidNumber
	}
	return Number{v: raw}, nil
}

// MustNumber is NewNumber for constants; it panics on NaN.
func MustNumber(raw float64) Number {
	n, err := NewNumber(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// Float64 returns the wrapped value.
func (n Number) Float64() float64 { return n.v }

// Equal reports value equality. -0 and +0 are equal.
func (n Number) Equal(other Number) bool { return n.v == other.v }

func (n Number) String() string { return fmt.Sprintf("%g", n.v) }

// Compare returns the ordering of a relative to b using exact IEEE-754
// comparison.
func Compare(a, b Number) Ordering {
	switch {
	case a.v < b.v:
		return Less
	case a.v > b.v:
		return Greater
	default:
		return Equal
	}
}

// MarshalJSON encodes the number as a JSON number. Infinities have no JSON
// representation and fail to marshal.
func (n Number) MarshalJSON() ([]byte, error) {
	if math.IsInf(n.v, 0) {
		return nil, fmt.Errorf("%w: %v is not representable in JSON", ErrInvalidNumber, n.v)
	}
	return json.Marshal(n.v)
}

// UnmarshalJSON decodes a JSON number. null is not a number.
func (n *Number) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return fmt.Errorf("%w: null", ErrInvalidNumber)
	}
	var raw float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	v, err := NewNumber(raw)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
