package repository

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/okian/blindcmp/internal/domain/model"
	"github.com/okian/blindcmp/internal/domain/types"
)

func TestCodec_RoundTrip(t *testing.T) {
	p := model.NewPending("race", types.MustNumber(math.Inf(-1)), created)
	records := []model.Comparison{
		p,
		model.NewPending("zero", types.MustNumber(0), created),
		finalize(t, p, 0),
	}
	for _, in := range records {
		data, err := encodeRecord(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		out, err := decodeRecord(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if out.Tag() != in.Tag() || out.Name != in.Name || !out.CreatedAt.Equal(in.CreatedAt) {
			t.Errorf("round trip changed record: %+v -> %+v", in, out)
		}
		switch s := in.State.(type) {
		case model.Pending:
			if got := out.State.(model.Pending).Value; !got.Equal(s.Value) {
				t.Errorf("value %v, want %v", got, s.Value)
			}
		case model.Finalized:
			if got := out.State.(model.Finalized).Result; got != s.Result {
				t.Errorf("result %v, want %v", got, s.Result)
			}
		}
	}
}

func TestCodec_FinalizedDropsValue(t *testing.T) {
	data, err := encodeRecord(finalize(t, model.NewPending("a", types.MustNumber(42.125), created), 1))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "value") || strings.Contains(string(data), "42.125") {
		t.Errorf("finalized document leaks the pending value: %s", data)
	}
}

func TestCodec_CorruptDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"unknown state":     `{"name":"a","state":"open","value":1}`,
		"pending no value":  `{"name":"a","state":"pending"}`,
		"finalized no code": `{"name":"a","state":"finalized"}`,
		"both fields":       `{"name":"a","state":"finalized","value":1,"result":0}`,
		"bad code":          `{"name":"a","state":"finalized","result":2}`,
		"nan":               `{"name":"a","state":"pending","value":"NaN"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeRecord([]byte(doc)); !errors.Is(err, ErrCorruptRecord) {
				t.Errorf("expected ErrCorruptRecord, got %v", err)
			}
		})
	}
}
