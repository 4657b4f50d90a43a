package models

import "time"

// ScrapingDateLayout is the timestamp format stamped on every envelope.
const ScrapingDateLayout = "2006-01-02 15:04:05"

// Envelope ties one target to its scrape outcome. Exactly one of Posts or
// Profile is set on success; both are nil when the target was abandoned
// (not found, invalid, or retries exhausted). The payload keys serialize as
// explicit nulls so consumers can distinguish "scraped nothing" from a
// failed target without schema knowledge.
type Envelope struct {
	Target       string          `json:"-"`
	ScrapingDate string          `json:"scraping_date"`
	Posts        map[string]Post `json:"posts"`
	Profile      *Profile        `json:"profile"`
	Truncated    bool            `json:"truncated,omitempty"`
}

// IsError reports whether the scrape produced no payload at all. A partial
// payload (missing fields, fewer posts) is not an error.
func (e Envelope) IsError() bool {
	return e.Posts == nil && e.Profile == nil
}

func NewEnvelope(target string, at time.Time) Envelope {
	return Envelope{Target: target, ScrapingDate: at.Format(ScrapingDateLayout)}
}

// ResultSet accumulates envelopes for one run, keyed by target. Insertion
// order is preserved for serialization.
type ResultSet struct {
	order     []string
	envelopes map[string]Envelope
}

func NewResultSet() *ResultSet {
	return &ResultSet{envelopes: map[string]Envelope{}}
}

// Add merges an envelope into the set. A repeated target key overwrites the
// earlier envelope (last write wins) and reports the collision so callers
// can surface it.
func (r *ResultSet) Add(env Envelope) (overwrote bool) {
	if _, ok := r.envelopes[env.Target]; ok {
		overwrote = true
	} else {
		r.order = append(r.order, env.Target)
	}
	r.envelopes[env.Target] = env
	return overwrote
}

func (r *ResultSet) Len() int {
	return len(r.order)
}

// Envelopes returns the accumulated envelopes in insertion order.
func (r *ResultSet) Envelopes() []Envelope {
	out := make([]Envelope, 0, len(r.order))
	for _, target := range r.order {
		out = append(out, r.envelopes[target])
	}
	return out
}

// Get returns the envelope for a target, if present.
func (r *ResultSet) Get(target string) (Envelope, bool) {
	env, ok := r.envelopes[target]
	return env, ok
}
