package types_test

import (
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	types "github.com/okian/blindcmp/internal/domain/types"
)

func TestNewNumber(t *testing.T) {
	Convey("Given raw float values", t, func() {
		Convey("When the value is NaN", func() {
			_, err := types.NewNumber(math.NaN())

			Convey("Then construction fails with ErrInvalidNumber", func() {
				So(errors.Is(err, types.ErrInvalidNumber), ShouldBeTrue)
			})
		})

		Convey("When the value is finite or infinite", func() {
			for _, raw := range []float64{0, -0.0, 3.5, -1e308, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1)} {
				n, err := types.NewNumber(raw)
				So(err, ShouldBeNil)
				So(n.Float64(), ShouldEqual, raw)
			}
		})

		Convey("When MustNumber receives NaN", func() {
			So(func() { types.MustNumber(math.NaN()) }, ShouldPanic)
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given pairs of numbers", t, func() {
		values := []float64{math.Inf(-1), -7, -0.0, 0, 1e-300, 2, 3.5, 7, math.Inf(1)}

		Convey("Then Compare agrees with numeric ordering and is antisymmetric", func() {
			for _, a := range values {
				for _, b := range values {
					na, nb := types.MustNumber(a), types.MustNumber(b)
					got := types.Compare(na, nb)
					switch {
					case a < b:
						So(got, ShouldEqual, types.Less)
					case a > b:
						So(got, ShouldEqual, types.Greater)
					default:
						So(got, ShouldEqual, types.Equal)
						So(na.Equal(nb), ShouldBeTrue)
					}
					So(types.Compare(nb, na), ShouldEqual, got.Inverse())
				}
			}
		})

		Convey("Then there is no epsilon tolerance", func() {
			a := types.MustNumber(1.0)
			b := types.MustNumber(math.Nextafter(1.0, 2.0))
			So(types.Compare(a, b), ShouldEqual, types.Less)
		})
	})
}

func TestNumberJSON(t *testing.T) {
	Convey("Given a Number in JSON", t, func() {
		Convey("When decoding a JSON number", func() {
			var n types.Number
			err := json.Unmarshal([]byte(`2.25`), &n)

			Convey("Then the value is preserved", func() {
				So(err, ShouldBeNil)
				So(n.Float64(), ShouldEqual, 2.25)
			})
		})

		Convey("When decoding a non-number", func() {
			var n types.Number
			err := json.Unmarshal([]byte(`"NaN"`), &n)

			Convey("Then it fails with ErrInvalidNumber", func() {
				So(errors.Is(err, types.ErrInvalidNumber), ShouldBeTrue)
			})
		})

		Convey("When decoding null", func() {
			n := types.MustNumber(5)
			err := n.UnmarshalJSON([]byte(`null`))

			Convey("Then it fails and leaves the value alone", func() {
				So(errors.Is(err, types.ErrInvalidNumber), ShouldBeTrue)
				So(n.Float64(), ShouldEqual, 5)
			})
		})

		Convey("When encoding an infinity", func() {
			_, err := json.Marshal(types.MustNumber(math.Inf(1)))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When encoding a finite value", func() {
			b, err := json.Marshal(types.MustNumber(-4))
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "-4")
		})
	})
}
