// internal/spark/selector_test.go
//
// Unit-tests for the daily selector.
//
// Context
// -------
// The selector carries the only real algorithmic contract in Luvora, so
// the tests here pin down its load-bearing behaviours:
//
//   • Determinism        – same (date, target) ⇒ byte-identical output.
//   • Eligibility        – never a cross-target pick.
//   • Slot independence  – night is not a fixed function of morning.
//   • Rarity shaping     – observed mix tracks the 50/30/15/5 weights.
//   • Loud failures      – empty buckets and bad dates error, never
//     silently degrade.
//
// Run: go test ./internal/spark -v

package spark

import (
	"errors"
	"testing"
	"time"

	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/tier"
)

// testPool builds a pool with all four rarity classes in both slots so
// the weighted path is fully exercised.
func testPool(t *testing.T) *pool.Pool {
	t.Helper()
	p, err := pool.Parse([]byte(`{
		"version": 1,
		"messages": {
			"morning": {
				"poetic": [
					{"content": "m-c1", "target": "neutral", "tone": "poetic", "rarity": "common"},
					{"content": "m-c2", "target": "neutral", "tone": "poetic", "rarity": "common"},
					{"content": "m-r1", "target": "neutral", "tone": "poetic", "rarity": "rare"},
					{"content": "m-e1", "target": "neutral", "tone": "poetic", "rarity": "epic"},
					{"content": "m-l1", "target": "neutral", "tone": "poetic", "rarity": "legendary"},
					{"content": "m-f1", "target": "feminine", "tone": "poetic", "rarity": "common"},
					{"content": "m-m1", "target": "masculine", "tone": "poetic", "rarity": "common"}
				],
				"sweet": [
					{"content": "m-c3", "target": "neutral", "tone": "sweet", "rarity": "common"},
					{"content": "m-r2", "target": "neutral", "tone": "sweet", "rarity": "rare"}
				]
			},
			"night": {
				"romantic": [
					{"content": "n-c1", "target": "neutral", "tone": "romantic", "rarity": "common"},
					{"content": "n-c2", "target": "neutral", "tone": "romantic", "rarity": "common"},
					{"content": "n-r1", "target": "neutral", "tone": "romantic", "rarity": "rare"},
					{"content": "n-e1", "target": "neutral", "tone": "romantic", "rarity": "epic"},
					{"content": "n-l1", "target": "neutral", "tone": "romantic", "rarity": "legendary"},
					{"content": "n-m1", "target": "masculine", "tone": "romantic", "rarity": "common"}
				]
			}
		}
	}`))
	if err != nil {
		t.Fatalf("test pool: %v", err)
	}
	return p
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSelectDeterministic(t *testing.T) {
	p := testPool(t)

	for _, target := range pool.Targets {
		first, err := Select(p, day("2025-06-01"), target, tier.Free)
		if err != nil {
			t.Fatalf("Select(%s): %v", target, err)
		}
		for i := 0; i < 50; i++ {
			again, err := Select(p, day("2025-06-01"), target, tier.Free)
			if err != nil {
				t.Fatalf("repeat Select(%s): %v", target, err)
			}
			if again != first {
				t.Fatalf("non-deterministic result for %s: %+v vs %+v", target, first, again)
			}
		}
	}
}

func TestSelectIgnoresTimeOfDay(t *testing.T) {
	p := testPool(t)

	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	noon := time.Date(2025, time.June, 1, 12, 34, 56, 789, time.UTC)
	late := time.Date(2025, time.June, 1, 23, 59, 59, 0, time.UTC)

	want, err := Select(p, base, pool.TargetNeutral, tier.Free)
	if err != nil {
		t.Fatal(err)
	}
	for _, at := range []time.Time{noon, late} {
		got, err := Select(p, at, pool.TargetNeutral, tier.Free)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("same calendar day diverged: %+v vs %+v", want, got)
		}
	}
}

func TestSelectEligibility(t *testing.T) {
	p := testPool(t)

	// The masculine-only records must never surface for feminine, and
	// vice versa, across a long run of dates.
	start := day("2024-01-01")
	for i := 0; i < 730; i++ {
		d := start.AddDate(0, 0, i)

		fem, err := Select(p, d, pool.TargetFeminine, tier.Free)
		if err != nil {
			t.Fatalf("feminine %s: %v", d.Format("2006-01-02"), err)
		}
		if fem.Morning.Content == "m-m1" || fem.Night.Content == "n-m1" {
			t.Fatalf("masculine-only record served to feminine on %s", d.Format("2006-01-02"))
		}

		mas, err := Select(p, d, pool.TargetMasculine, tier.Free)
		if err != nil {
			t.Fatalf("masculine %s: %v", d.Format("2006-01-02"), err)
		}
		if mas.Morning.Content == "m-f1" {
			t.Fatalf("feminine-only record served to masculine on %s", d.Format("2006-01-02"))
		}
	}
}

func TestSelectSlotsAreIndependent(t *testing.T) {
	p := testPool(t)

	// If night were a fixed function of morning, every date that picks a
	// given morning message would pick the same night message.  Sample a
	// long run and require at least one morning value to map to two
	// distinct nights.
	nightsByMorning := map[string]map[string]bool{}
	start := day("2023-01-01")
	for i := 0; i < 1500; i++ {
		daily, err := Select(p, start.AddDate(0, 0, i), pool.TargetNeutral, tier.Free)
		if err != nil {
			t.Fatal(err)
		}
		set := nightsByMorning[daily.Morning.Content]
		if set == nil {
			set = map[string]bool{}
			nightsByMorning[daily.Morning.Content] = set
		}
		set[daily.Night.Content] = true
	}

	for _, nights := range nightsByMorning {
		if len(nights) > 1 {
			return // independence observed
		}
	}
	t.Fatal("night selection appears to be a fixed function of morning selection")
}

func TestSelectRarityDistribution(t *testing.T) {
	p := testPool(t)

	counts := map[pool.Rarity]int{}
	start := day("2020-01-01")
	const days = 4000
	for i := 0; i < days; i++ {
		daily, err := Select(p, start.AddDate(0, 0, i), pool.TargetNeutral, tier.Free)
		if err != nil {
			t.Fatal(err)
		}
		counts[daily.Morning.Rarity]++
		counts[daily.Night.Rarity]++
	}

	total := float64(days * 2)
	want := map[pool.Rarity]float64{
		pool.RarityCommon:    50,
		pool.RarityRare:      30,
		pool.RarityEpic:      15,
		pool.RarityLegendary: 5,
	}
	const tolerance = 4.0 // percentage points; generous for n=8000
	for r, wantPct := range want {
		gotPct := 100 * float64(counts[r]) / total
		if gotPct < wantPct-tolerance || gotPct > wantPct+tolerance {
			t.Errorf("rarity %s: got %.1f%%, want %.0f%%±%.0f", r, gotPct, wantPct, tolerance)
		}
	}
}

func TestSelectTierGate(t *testing.T) {
	p, err := pool.Parse([]byte(`{
		"messages": {
			"morning": {
				"poetic": [
					{"content": "free", "target": "neutral", "tone": "poetic"},
					{"content": "hero-only", "target": "neutral", "tone": "poetic", "tier": 1}
				]
			},
			"night": {
				"romantic": [{"content": "n", "target": "neutral", "tone": "romantic"}]
			}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	start := day("2024-06-01")
	for i := 0; i < 365; i++ {
		daily, err := Select(p, start.AddDate(0, 0, i), pool.TargetNeutral, tier.Free)
		if err != nil {
			t.Fatal(err)
		}
		if daily.Morning.Content == "hero-only" {
			t.Fatalf("tier-1 record served to a Free caller")
		}
	}
}

func TestSelectEmptyPoolFailsLoudly(t *testing.T) {
	// Morning holds only masculine-targeted records; a feminine request
	// has no eligible candidate and must error, not return "".
	p, err := pool.Parse([]byte(`{
		"messages": {
			"morning": {
				"poetic": [{"content": "m", "target": "masculine", "tone": "poetic"}]
			},
			"night": {
				"romantic": [{"content": "n", "target": "neutral", "tone": "romantic"}]
			}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = Select(p, day("2025-06-01"), pool.TargetFeminine, tier.Free)
	var empty *EmptyPoolError
	if !errors.As(err, &empty) {
		t.Fatalf("want *EmptyPoolError, got %v", err)
	}
	if empty.Slot != SlotMorning || empty.Target != pool.TargetFeminine {
		t.Fatalf("error misidentifies slot/target: %+v", empty)
	}
}

func TestSelectInputValidation(t *testing.T) {
	p := testPool(t)

	if _, err := Select(p, time.Time{}, pool.TargetNeutral, tier.Free); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("zero date: want ErrInvalidDate, got %v", err)
	}
	if _, err := Select(p, day("2025-06-01"), pool.Target("robot"), tier.Free); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("bad target: want ErrUnknownTarget, got %v", err)
	}
}

func TestSelectExampleScenario(t *testing.T) {
	// The documented two-message scenario: the feminine request must
	// always resolve to the same one of {A, B}, and never to a
	// masculine-only record.
	p, err := pool.Parse([]byte(`{
		"messages": {
			"morning": {
				"poetic": [
					{"content": "A", "target": "neutral", "tone": "poetic"},
					{"content": "B", "target": "feminine", "tone": "poetic"},
					{"content": "C", "target": "masculine", "tone": "poetic"}
				]
			},
			"night": {
				"romantic": [{"content": "n", "target": "neutral", "tone": "romantic"}]
			}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	first, err := Select(p, day("2025-06-01"), pool.TargetFeminine, tier.Free)
	if err != nil {
		t.Fatal(err)
	}
	if first.Morning.Content != "A" && first.Morning.Content != "B" {
		t.Fatalf("morning pick %q is outside the eligible set", first.Morning.Content)
	}
	for i := 0; i < 25; i++ {
		again, err := Select(p, day("2025-06-01"), pool.TargetFeminine, tier.Free)
		if err != nil {
			t.Fatal(err)
		}
		if again.Morning.Content != first.Morning.Content {
			t.Fatalf("pick flapped between calls: %q vs %q",
				first.Morning.Content, again.Morning.Content)
		}
	}
}

func TestRarityInfoTotal(t *testing.T) {
	cases := []struct {
		in   pool.Rarity
		want string
	}{
		{pool.RarityCommon, "Common"},
		{pool.RarityRare, "Rare"},
		{pool.RarityEpic, "Epic"},
		{pool.RarityLegendary, "Legendary"},
		{pool.Rarity(""), "Common"},       // empty defaults
		{pool.Rarity("mythic"), "Common"}, // unknown defaults
	}
	for _, c := range cases {
		if got := RarityInfo(c.in); got.Label != c.want {
			t.Errorf("RarityInfo(%q).Label = %q, want %q", c.in, got.Label, c.want)
		}
		if got := RarityInfo(c.in); got.Color == "" {
			t.Errorf("RarityInfo(%q) has empty color", c.in)
		}
	}
}
