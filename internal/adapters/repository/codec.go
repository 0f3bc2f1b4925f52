package repository

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/blindcmp/internal/domain/model"
	"github.com/okian/blindcmp/internal/domain/types"
)

// document is the stored form of a comparison. Exactly one of Value and
// Result is set, matching State.
type document struct {
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	State     model.Tag   `json:"state"`
	Value     *storedReal `json:"value,omitempty"`
	Result    *int8       `json:"result,omitempty"`
}

// storedReal is a float64 that survives JSON even when infinite: finite
// values are numbers, infinities are the strings "+Inf" and "-Inf".
type storedReal float64

func (r storedReal) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return json.Marshal(f)
}

func (r *storedReal) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*r = storedReal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = storedReal(f)
	return nil
}

func encodeRecord(c model.Comparison) ([]byte, error) {
	doc := document{
		Name:      c.Name,
		CreatedAt: c.CreatedAt.UTC(),
	}
	switch s := c.State.(type) {
	case model.Pending:
		v := storedReal(s.Value.Float64())
		doc.State = model.TagPending
		doc.Value = &v
	case model.Finalized:
		code := s.Result.Encode()
		doc.State = model.TagFinalized
		doc.Result = &code
	case nil:
		return nil, model.ErrNoState
	default:
		panic("repository: unknown comparison state")
	}
	return json.Marshal(doc)
}

func decodeRecord(data []byte) (model.Comparison, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Comparison{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	c := model.Comparison{Name: doc.Name, CreatedAt: doc.CreatedAt}
	switch doc.State {
	case model.TagPending:
		if doc.Value == nil || doc.Result != nil {
			return model.Comparison{}, fmt.Errorf("%w: pending record must carry only a value", ErrCorruptRecord)
		}
		n, err := types.NewNumber(float64(*doc.Value))
		if err != nil {
			return model.Comparison{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		c.State = model.Pending{Value: n}
	case model.TagFinalized:
		if doc.Result == nil || doc.Value != nil {
			return model.Comparison{}, fmt.Errorf("%w: finalized record must carry only a result", ErrCorruptRecord)
		}
		o, err := types.DecodeOrdering(*doc.Result)
		if err != nil {
			return model.Comparison{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		c.State = model.Finalized{Result: o}
	default:
		return model.Comparison{}, fmt.Errorf("%w: unknown state %q", ErrCorruptRecord, doc.State)
	}
	return c, nil
}
