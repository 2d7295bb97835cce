// internal/archive/archive.go
//
// Tier-windowed spark history.
//
// Context
// -------
// Luvora never stores past sparks.  Because selection is deterministic,
// the archive is recomputed on demand by replaying the selector over a
// rolling window whose depth is a subscription perk: 7 days on Free, 30
// on Hero, and 90 on Legend.  This keeps the history and the "today"
// view trivially consistent; there is no second copy to drift.

package archive

import (
	"time"

	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/spark"
	"github.com/luvora/luvora/internal/tier"
)

// Day is one archive row.
type Day struct {
	Date  string      `json:"date"` // ISO 8601, YYYY-MM-DD
	Spark spark.Daily `json:"spark"`
}

// Window returns the archive depth in days for a tier.
func Window(t tier.Tier) int {
	switch t {
	case tier.Legend:
		return 90
	case tier.Hero:
		return 30
	}
	return 7
}

// History replays the selector for the window ending at until, newest
// first.  until is normally "today" from the caller's clock; it is an
// explicit argument so history stays a pure function.
func History(p *pool.Pool, target pool.Target, t tier.Tier, until time.Time) ([]Day, error) {
	days := Window(t)
	out := make([]Day, 0, days)

	u := until.UTC()
	cursor := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		daily, err := spark.Select(p, cursor, target, t)
		if err != nil {
			return nil, err
		}
		out = append(out, Day{Date: cursor.Format("2006-01-02"), Spark: daily})
		cursor = cursor.AddDate(0, 0, -1)
	}
	return out, nil
}
