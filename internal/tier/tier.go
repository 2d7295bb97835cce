// internal/tier/tier.go
//
// Subscription tiers.
//
// Context
// -------
// Luvora gates premium message buckets and archive depth behind three
// subscription levels.  The numeric values are stored in the pool data
// (`tier` field on each message) and in the `tier_audit` table, so they
// must never be renumbered.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tier

import "fmt"

// Tier is a subscription level.  Zero value is Free, which is the correct
// default for anonymous traffic.
type Tier int

const (
	Free   Tier = 0
	Hero   Tier = 1
	Legend Tier = 2
)

// String returns the marketing name for the tier.
func (t Tier) String() string {
	switch t {
	case Free:
		return "free"
	case Hero:
		return "hero"
	case Legend:
		return "legend"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Valid reports whether t is one of the three known levels.
func (t Tier) Valid() bool { return t >= Free && t <= Legend }

// Parse maps a tier name or numeral to a Tier.  Unknown input returns
// Free and an error so callers can decide whether to reject or degrade.
func Parse(s string) (Tier, error) {
	switch s {
	case "", "0", "free":
		return Free, nil
	case "1", "hero":
		return Hero, nil
	case "2", "legend":
		return Legend, nil
	}
	return Free, fmt.Errorf("tier: unknown level %q", s)
}
