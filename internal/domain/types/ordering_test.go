package types_test

import (
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	types "github.com/okian/blindcmp/internal/domain/types"
)

func TestOrderingCodec(t *testing.T) {
	Convey("Given the three orderings", t, func() {
		all := []types.Ordering{types.Less, types.Equal, types.Greater}

		Convey("Then they encode to -1, 0, 1", func() {
			So(types.Less.Encode(), ShouldEqual, int8(-1))
			So(types.Equal.Encode(), ShouldEqual, int8(0))
			So(types.Greater.Encode(), ShouldEqual, int8(1))
		})

		Convey("Then decode(encode(x)) == x", func() {
			for _, o := range all {
				got, err := types.DecodeOrdering(o.Encode())
				So(err, ShouldBeNil)
				So(got, ShouldEqual, o)
			}
		})

		Convey("Then every other code fails to decode", func() {
			for code := math.MinInt8; code <= math.MaxInt8; code++ {
				if code >= -1 && code <= 1 {
					continue
				}
				_, err := types.DecodeOrdering(int8(code))
				So(errors.Is(err, types.ErrInvalidOrderingCode), ShouldBeTrue)
			}
		})

		Convey("Then Inverse swaps Less and Greater", func() {
			So(types.Less.Inverse(), ShouldEqual, types.Greater)
			So(types.Greater.Inverse(), ShouldEqual, types.Less)
			So(types.Equal.Inverse(), ShouldEqual, types.Equal)
		})

		Convey("Then String names each ordering", func() {
			So(types.Less.String(), ShouldEqual, "less")
			So(types.Equal.String(), ShouldEqual, "equal")
			So(types.Greater.String(), ShouldEqual, "greater")
			So(types.Ordering(9).String(), ShouldEqual, "Ordering(9)")
		})
	})
}

func TestOrderingJSON(t *testing.T) {
	Convey("Given orderings on the wire", t, func() {
		Convey("When encoding", func() {
			b, err := json.Marshal(struct {
				Result types.Ordering `json:"result"`
			}{types.Less})
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"result":-1}`)
		})

		Convey("When encoding an invalid value", func() {
			_, err := json.Marshal(types.Ordering(3))
			So(errors.Is(err, types.ErrInvalidOrderingCode), ShouldBeTrue)
		})

		Convey("When decoding valid codes", func() {
			var o types.Ordering
			So(json.Unmarshal([]byte(`1`), &o), ShouldBeNil)
			So(o, ShouldEqual, types.Greater)
		})

		Convey("When decoding null", func() {
			o := types.Greater
			err := o.UnmarshalJSON([]byte(` null `))
			So(errors.Is(err, types.ErrInvalidOrderingCode), ShouldBeTrue)
			So(o, ShouldEqual, types.Greater)
		})

		Convey("When decoding out-of-range codes", func() {
			for _, raw := range []string{`2`, `-2`, `300`, `1.5`, `"1"`} {
				var o types.Ordering
				err := json.Unmarshal([]byte(raw), &o)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, types.ErrInvalidOrderingCode), ShouldBeTrue)
			}
		})
	})
}
