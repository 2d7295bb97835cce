// internal/spark/errors.go
//
// Typed failures of the daily selector.
//
// Context
// -------
// An empty eligible bucket means the pool data is misconfigured for the
// requested slot and target.  The selector refuses to paper over that
// with an empty string; callers decide whether to surface an error page
// or fall back to another bucket.  Likewise, an unusable date must never
// silently default to "today", because that would let two consumers of
// the same calendar day disagree.

package spark

import (
	"errors"
	"fmt"

	"github.com/luvora/luvora/internal/pool"
)

// ErrInvalidDate is returned when the selector is handed a zero date.
var ErrInvalidDate = errors.New("spark: invalid date")

// ErrUnknownTarget is returned for a target outside the published enum.
var ErrUnknownTarget = errors.New("spark: unknown target")

// EmptyPoolError reports that no eligible candidate exists for a slot.
type EmptyPoolError struct {
	Slot   Slot
	Target pool.Target
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("spark: no eligible %s message for target %q", e.Slot, e.Target)
}
