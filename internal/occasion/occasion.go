// internal/occasion/occasion.go
//
// Yearly-recurrence date math for anniversaries, birthdays, and fixed
// holidays.
//
// Context
// -------
// The countdown widgets and the special-occasion bucket both need "days
// until the next occurrence of month/day".  The math is calendar-only:
// all computation happens at UTC day granularity, so the wall-clock
// component of inputs never changes an answer.
//
// Feb-29 policy
// -------------
// An occasion anchored on Feb 29 is observed on **Feb 28** in non-leap
// years.  Feb 28 matches how people treat a Feb-29 birthday, and keeps
// the observance inside February.

package occasion

import (
	"fmt"
	"sort"
	"time"

	"github.com/luvora/luvora/internal/pool"
)

// Fixed calendar anchors for pool occasions that are not user-specific.
// Anniversary and birthday have per-user anchors and are resolved by the
// caller through DaysUntil directly.
var fixedDates = map[string]struct {
	Month time.Month
	Day   int
}{
	"valentines": {time.February, 14},
	"holiday":    {time.December, 25},
}

// DaysUntil returns the number of whole days from ref to the next
// occurrence of month/day, where the occurrence on ref itself counts as
// zero.  The result is always in [0, 365].
func DaysUntil(month time.Month, day int, ref time.Time) int {
	u := ref.UTC()
	today := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	next := observed(u.Year(), month, day)
	if next.Before(today) {
		next = observed(u.Year()+1, month, day)
	}
	return int(next.Sub(today).Hours() / 24)
}

// observed maps an anchor to its observed date in a given year, applying
// the Feb-29 policy.
func observed(year int, month time.Month, day int) time.Time {
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Upcoming is one fixed occasion with its countdown.
type Upcoming struct {
	Name string `json:"name"`
	In   int    `json:"days_until"`
}

// Next returns the fixed occasions that have messages in the pool,
// nearest first.  Per-user anchors (anniversary, birthday) are not
// included; those live in the external user store.
func Next(p *pool.Pool, ref time.Time) []Upcoming {
	var out []Upcoming
	for name, anchor := range fixedDates {
		if len(p.Messages.SpecialOccasions[name]) == 0 {
			continue
		}
		out = append(out, Upcoming{Name: name, In: DaysUntil(anchor.Month, anchor.Day, ref)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].In != out[j].In {
			return out[i].In < out[j].In
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Validate rejects anchors that can never occur.  Used by the handlers
// before trusting client-supplied month/day pairs.
func Validate(month time.Month, day int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("occasion: month %d out of range", month)
	}
	// Feb 29 is a legal anchor; the observed date handles non-leap years.
	max := time.Date(2000, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > max {
		return fmt.Errorf("occasion: day %d out of range for %s", day, month)
	}
	return nil
}
