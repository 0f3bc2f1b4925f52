// Package model contains the comparison record and its state machine.
package model

import (
	"context"
	"time"

	"github.com/okian/blindcmp/internal/domain/types"
)

// Tag names a comparison state. It is also the state name in the lifecycle
// table and the discriminator in stored documents.
type Tag string

// State tags.
const (
	TagPending   Tag = "pending"
	TagFinalized Tag = "finalized"
)

// State is the sum of Pending and Finalized. It is sealed: no other package
// can add a variant, so type switches over it are exhaustive.
type State interface {
	Tag() Tag
	sealed()
}

// Pending holds the initiator's committed value.
type Pending struct {
	Value types.Number
}

// Finalized holds the comparison result. The initiator's value is gone.
type Finalized struct {
	Result types.Ordering
}

func (Pending) Tag() Tag   { return TagPending }
func (Finalized) Tag() Tag { return TagFinalized }
func (Pending) sealed()    {}
func (Finalized) sealed()  {}

// Comparison is the persisted record. Name and CreatedAt never change after
// creation.
type Comparison struct {
	Name      string
	CreatedAt time.Time
	State     State
}

// NewPending builds a freshly created record.
func NewPending(name string, value types.Number, now time.Time) Comparison {
	return Comparison{
		Name:      name,
		CreatedAt: now,
		State:     Pending{Value: value},
	}
}

// Tag returns the tag of the current state, or "" for a zero record.
func (c Comparison) Tag() Tag {
	if c.State == nil {
		return ""
	}
	return c.State.Tag()
}

// Finalize compares the pending value with responder and returns the
// finalized record. The receiver is not modified.
func (c Comparison) Finalize(ctx context.Context, responder types.Number) (Comparison, error) {
	if c.State == nil {
		return Comparison{}, ErrNoState
	}
	if err := checkTransition(ctx, c.State.Tag(), EventCompare); err != nil {
		return Comparison{}, err
	}

	switch s := c.State.(type) {
	case Pending:
		return Comparison{
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			State:     Finalized{Result: types.Compare(s.Value, responder)},
		}, nil
	case Finalized:
		return Comparison{}, ErrAlreadyFinalized
	default:
		panic("model: unknown comparison state")
	}
}

// Result returns the ordering if the comparison is finalized.
func (c Comparison) Result() (types.Ordering, bool) {
	switch s := c.State.(type) {
	case Finalized:
		return s.Result, true
	case Pending, nil:
		return 0, false
	default:
		panic("model: unknown comparison state")
	}
}

// IsFinalized reports whether the comparison has a result.
func (c Comparison) IsFinalized() bool {
	_, ok := c.Result()
	return ok
}
