// internal/seo/pages.go
//
// Build-time category page materialization.
//
// Context
// -------
// The marketing site pre-renders one category page per recipient target,
// each carrying that day's spark pair plus a handful of sample messages
// per tone.  Because the selector is deterministic, pages materialized
// at build time and the live per-user view always agree; this package
// just shapes the payloads.
//
// Sample order within a tone is pool order, which is stable by the pool
// immutability invariant.

package seo

import (
	"fmt"
	"sort"
	"time"

	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/spark"
	"github.com/luvora/luvora/internal/tier"
)

// samplesPerTone caps how much free content a category page leaks.
const samplesPerTone = 3

// ToneSection is one tone block on a category page.
type ToneSection struct {
	Tone    pool.Tone `json:"tone"`
	Samples []string  `json:"samples"`
}

// Page is the payload for one pre-rendered category page.
type Page struct {
	Slug   string        `json:"slug"` // e.g. "romantic-messages-for-her"
	Target pool.Target   `json:"target"`
	Date   string        `json:"date"` // YYYY-MM-DD
	Daily  spark.Daily   `json:"daily"`
	Tones  []ToneSection `json:"tones"`
}

// slugs are fixed marketing URLs; changing one breaks indexed links.
var slugs = map[pool.Target]string{
	pool.TargetNeutral:   "romantic-messages",
	pool.TargetFeminine:  "romantic-messages-for-her",
	pool.TargetMasculine: "romantic-messages-for-him",
}

// Materialize builds the page for one target and day.  Only tier-0
// content appears; the pages are public.
func Materialize(p *pool.Pool, day time.Time, target pool.Target) (*Page, error) {
	daily, err := spark.Select(p, day, target, tier.Free)
	if err != nil {
		return nil, fmt.Errorf("seo: materialize %s: %w", target, err)
	}

	page := &Page{
		Slug:   slugs[target],
		Target: target,
		Date:   day.UTC().Format("2006-01-02"),
		Daily:  daily,
	}

	tones := make([]string, 0, len(p.Messages.Morning))
	for t := range p.Messages.Morning {
		tones = append(tones, t)
	}
	sort.Strings(tones)

	for _, t := range tones {
		sec := ToneSection{Tone: pool.Tone(t)}
		for _, m := range p.Messages.Morning[t] {
			if !m.EligibleFor(target, tier.Free) {
				continue
			}
			sec.Samples = append(sec.Samples, m.Content)
			if len(sec.Samples) == samplesPerTone {
				break
			}
		}
		if len(sec.Samples) > 0 {
			page.Tones = append(page.Tones, sec)
		}
	}
	return page, nil
}

// MaterializeAll builds every target's page for one day.
func MaterializeAll(p *pool.Pool, day time.Time) ([]*Page, error) {
	out := make([]*Page, 0, len(pool.Targets))
	for _, t := range pool.Targets {
		page, err := Materialize(p, day, t)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, nil
}
