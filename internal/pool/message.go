// internal/pool/message.go
//
// Message record and its categorical tags.
//
// Context
// -------
// Every candidate message in the pool carries a small set of enum-like
// string tags.  The selector filters on Target and the tier gate, and
// mirrors Tone and Rarity onto its output verbatim.  Records are
// immutable once published; nothing at request time ever writes to them.
//
// Notes
// -----
// • Validation tags are enforced once, at pool load, by validator/v10.
// • Oxford commas, two spaces after periods.

package pool

import "github.com/luvora/luvora/internal/tier"

// Target is the recipient gender framing of a message.  Neutral messages
// are eligible for every requested target.
type Target string

const (
	TargetNeutral   Target = "neutral"
	TargetFeminine  Target = "feminine"
	TargetMasculine Target = "masculine"
)

// Targets lists every valid target in a fixed order.
var Targets = []Target{TargetNeutral, TargetFeminine, TargetMasculine}

// Tone is the categorical style tag on a message.  Time-of-day buckets use
// a subset of these values.
type Tone string

const (
	TonePoetic     Tone = "poetic"
	TonePlayful    Tone = "playful"
	ToneRomantic   Tone = "romantic"
	TonePassionate Tone = "passionate"
	ToneSweet      Tone = "sweet"
	ToneSupportive Tone = "supportive"
)

// Rarity is the cosmetic weighting tag.  It is unrelated to subscription
// tier; a legendary message may well be tier 0.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Message is one entry in the static pool.  The JSON field names are the
// published pool schema and must not change.
type Message struct {
	Content      string    `json:"content"       validate:"required"`
	Target       Target    `json:"target"        validate:"omitempty,oneof=neutral feminine masculine"`
	Tone         Tone      `json:"tone"          validate:"omitempty,oneof=poetic playful romantic passionate sweet supportive"`
	Rarity       Rarity    `json:"rarity"        validate:"omitempty,oneof=common rare epic legendary"`
	Tier         tier.Tier `json:"tier"          validate:"gte=0,lte=2"`
	LoveLanguage string    `json:"love_language" validate:"omitempty,oneof=words_of_affirmation acts_of_service receiving_gifts quality_time physical_touch"`
	Occasion     string    `json:"occasion"      validate:"omitempty,oneof=daily anniversary birthday valentines holiday"`
}

// normalize fills the documented defaults for optional tags so the rest
// of the code never has to special-case empty strings.
func (m *Message) normalize() {
	if m.Target == "" {
		m.Target = TargetNeutral
	}
	if m.Rarity == "" {
		m.Rarity = RarityCommon
	}
}

// EligibleFor reports whether the message may be shown for the requested
// target and tier.
func (m *Message) EligibleFor(target Target, max tier.Tier) bool {
	if m.Tier > max {
		return false
	}
	return m.Target == TargetNeutral || m.Target == target
}
