// internal/pool/pool.go
//
// Static message-pool schema and loader.
//
// Context
// -------
// The pool is a versioned JSON document, hand-authored offline and read
// exactly once per process.  After Load returns, the structure is treated
// as immutable: the selector and every other consumer hold a shared
// *Pool and only ever read from it, which makes concurrent use safe
// without locking.
//
// Load fails fast.  A pool with a malformed record, an unknown tone key,
// or an empty required bucket is a deploy-time mistake, and the sooner
// the process refuses to start the sooner somebody notices.
//
// Notes
// -----
// • Struct tags use `json:"…"`; this is the published pool schema.
// • Oxford commas, two spaces after periods.

package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Buckets groups every message category in the published schema.  Map keys
// are tone names for the time-of-day buckets, occasion names for
// special_occasions, love-language names for love_language_specific, and
// free-form type names for midday and quick_replies.
type Buckets struct {
	Morning          map[string][]Message `json:"morning"`
	Night            map[string][]Message `json:"night"`
	Midday           map[string][]Message `json:"midday"`
	Premium          []Message            `json:"premium"`
	SpecialOccasions map[string][]Message `json:"special_occasions"`
	LoveLanguage     map[string][]Message `json:"love_language_specific"`
	QuickReplies     map[string][]Message `json:"quick_replies"`
}

// Pool is the root document.  Version is bumped by the offline migration
// tooling whenever content changes; it is surfaced in logs and /metrics so
// operators can confirm which corpus a process is serving.
type Pool struct {
	Version   int      `json:"version"`
	Nicknames []string `json:"nicknames"`
	Messages  Buckets  `json:"messages"`
}

var validate = validator.New()

// Load reads, parses, and validates the pool document at path.  Any
// invalid record aborts the load with an error naming the bucket and
// index, so pool authors can find the offending entry.
func Load(path string) (*Pool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pool: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a Pool from raw JSON.  Split out from Load so tests and
// the sparkctl validate command can feed in-memory documents.
func Parse(raw []byte) (*Pool, error) {
	var p Pool
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("pool: parse: %w", err)
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// check normalizes defaults and validates every record.  The morning and
// night buckets must be non-empty; everything else may be absent.
func (p *Pool) check() error {
	groups := []struct {
		name     string
		m        map[string][]Message
		required bool
	}{
		{"morning", p.Messages.Morning, true},
		{"night", p.Messages.Night, true},
		{"midday", p.Messages.Midday, false},
		{"special_occasions", p.Messages.SpecialOccasions, false},
		{"love_language_specific", p.Messages.LoveLanguage, false},
		{"quick_replies", p.Messages.QuickReplies, false},
	}

	for _, g := range groups {
		if g.required && bucketLen(g.m) == 0 {
			return fmt.Errorf("pool: bucket %q is empty", g.name)
		}
		for key, msgs := range g.m {
			for i := range msgs {
				msgs[i].normalize()
				if err := validate.Struct(&msgs[i]); err != nil {
					return fmt.Errorf("pool: %s.%s[%d]: %w", g.name, key, i, err)
				}
			}
		}
	}

	for i := range p.Messages.Premium {
		p.Messages.Premium[i].normalize()
		if err := validate.Struct(&p.Messages.Premium[i]); err != nil {
			return fmt.Errorf("pool: premium[%d]: %w", i, err)
		}
	}
	return nil
}

// Flatten returns every message of a keyed bucket group in deterministic
// order: keys sorted lexically, record order preserved within each key.
// The selector depends on this ordering, so it must never follow Go's
// randomized map iteration.
func Flatten(m map[string][]Message) []Message {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Message
	for _, k := range keys {
		out = append(out, m[k]...)
	}
	return out
}

// bucketLen counts records across all keys of a bucket group.
func bucketLen(m map[string][]Message) int {
	n := 0
	for _, msgs := range m {
		n += len(msgs)
	}
	return n
}

// Counts summarizes record totals per bucket group for logs and tooling.
func (p *Pool) Counts() map[string]int {
	return map[string]int{
		"morning":                bucketLen(p.Messages.Morning),
		"night":                  bucketLen(p.Messages.Night),
		"midday":                 bucketLen(p.Messages.Midday),
		"premium":                len(p.Messages.Premium),
		"special_occasions":      bucketLen(p.Messages.SpecialOccasions),
		"love_language_specific": bucketLen(p.Messages.LoveLanguage),
		"quick_replies":          bucketLen(p.Messages.QuickReplies),
	}
}
