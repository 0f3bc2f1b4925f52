package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// EventCompare is the single lifecycle event: the responder's value arrives.
const EventCompare = "compare"

var transitions = fsm.Events{
	{Name: EventCompare, Src: []string{string(TagPending)}, Dst: string(TagFinalized)},
}

// newLifecycle returns a machine positioned at the given state.
func newLifecycle(current Tag) *fsm.FSM {
	return fsm.NewFSM(string(current), transitions, fsm.Callbacks{})
}

// checkTransition runs event against the lifecycle table.
func checkTransition(ctx context.Context, from Tag, event string) error {
	err := newLifecycle(from).Event(ctx, event)
	if err == nil {
		return nil
	}
	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) && from == TagFinalized {
		return ErrAlreadyFinalized
	}
	return fmt.Errorf("%w: %s from %s: %v", ErrInvalidTransition, event, from, err)
}
