// internal/spark/selector.go
//
// Daily deterministic message selection.
//
// Context
// -------
// Select is the one real algorithm in Luvora.  Given a calendar day and a
// recipient target it picks one morning and one night message from the
// pool, and it must return the same pair on every call, in every process,
// forever: the archive view recomputes history instead of storing it, and
// pre-rendered category pages must agree with the live site.
//
// Determinism comes from three rules:
//
//  1. The date is reduced to a day number (UTC days since the Unix
//     epoch); any time-of-day component is discarded.
//  2. Each slot seeds its own splitmix64 stream from (day number XOR a
//     per-slot salt), so morning and night are independent draws rather
//     than one being a fixed function of the other.
//  3. Candidate order is the pool's deterministic flattening (sorted
//     bucket keys), never map iteration order.
//
// Select is pure: no clock, no I/O, no mutable state.  It is safe to call
// from any number of goroutines against a shared *pool.Pool.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package spark

import (
	"time"

	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/tier"
)

// Slot discriminates the two daily draws.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotNight   Slot = "night"
)

// Per-slot seed salts.  Arbitrary odd 64-bit constants; changing them
// changes every historical selection, so they are frozen.
const (
	saltMorning uint64 = 0xA076_1D64_78BD_642F
	saltNight   uint64 = 0xE703_7ED1_A0B4_28DB
)

// Pick is one selected message with the metadata the UI renders.  Tone
// and Rarity mirror the stored record; they are never recomputed.
type Pick struct {
	Content string      `json:"content"`
	Tone    pool.Tone   `json:"tone"`
	Rarity  pool.Rarity `json:"rarity"`
}

// Daily is the selector output for one (date, target) pair.
type Daily struct {
	Morning Pick `json:"morning"`
	Night   Pick `json:"night"`
}

// Select picks the morning and night messages for day.  The max tier
// gates premium-tagged records; anonymous traffic passes tier.Free.
//
// Errors: ErrInvalidDate for a zero day, ErrUnknownTarget for a target
// outside the enum, and *EmptyPoolError when a slot has no eligible
// candidate.  The last is a pool-data defect and intentionally loud.
func Select(p *pool.Pool, day time.Time, target pool.Target, max tier.Tier) (Daily, error) {
	if day.IsZero() {
		return Daily{}, ErrInvalidDate
	}
	if !validTarget(target) {
		return Daily{}, ErrUnknownTarget
	}

	dn := dayNumber(day)

	morning, err := selectSlot(pool.Flatten(p.Messages.Morning), SlotMorning, dn, target, max)
	if err != nil {
		return Daily{}, err
	}
	night, err := selectSlot(pool.Flatten(p.Messages.Night), SlotNight, dn, target, max)
	if err != nil {
		return Daily{}, err
	}
	return Daily{Morning: morning, Night: night}, nil
}

// selectSlot runs one deterministic draw over a flattened bucket.
func selectSlot(all []pool.Message, slot Slot, dn uint64, target pool.Target, max tier.Tier) (Pick, error) {
	eligible := make([]pool.Message, 0, len(all))
	for _, m := range all {
		if m.EligibleFor(target, max) {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return Pick{}, &EmptyPoolError{Slot: slot, Target: target}
	}

	rng := splitmix64{state: dn ^ slotSalt(slot)}

	// Weighted rarity class first, uniform within the class.  A rolled
	// class with no eligible members falls back through rarityOrder,
	// which favors common; the pool tooling keeps common populated, so
	// the fallback is a data-defect escape hatch rather than a path that
	// shapes the distribution.
	byRarity := make(map[pool.Rarity][]pool.Message, 4)
	for _, m := range eligible {
		byRarity[m.Rarity] = append(byRarity[m.Rarity], m)
	}

	class := byRarity[rollRarity(rng.intn(100))]
	if len(class) == 0 {
		for _, r := range rarityOrder {
			if len(byRarity[r]) > 0 {
				class = byRarity[r]
				break
			}
		}
	}

	chosen := class[rng.intn(len(class))]
	return Pick{Content: chosen.Content, Tone: chosen.Tone, Rarity: chosen.Rarity}, nil
}

// dayNumber reduces a time to whole UTC days since the Unix epoch.  Two
// instants on the same calendar day always map to the same number.
func dayNumber(t time.Time) uint64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return uint64(midnight.Unix() / 86400)
}

func slotSalt(s Slot) uint64 {
	if s == SlotNight {
		return saltNight
	}
	return saltMorning
}

func validTarget(t pool.Target) bool {
	for _, v := range pool.Targets {
		if t == v {
			return true
		}
	}
	return false
}
