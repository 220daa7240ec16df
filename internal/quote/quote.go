// Package quote selects a contextual motivational message from the
// quote pool given the hour of day and today's logged activity.
package quote

import (
	"math/rand"

	"github.com/rezmoss/ritualcli/internal/models"
)

// NightReviewWarning is the fixed message shown late at night when the
// nightly review is still missing. It is not drawn from the pool.
var NightReviewWarning = models.Quote{
	ID:     "alert",
	Text:   "O dia ainda não acabou. Faça sua revisão.",
	Source: "O Rei",
	Tags:   []string{"warning"},
}

// Selector picks quotes from a pool.
type Selector struct {
	pool []models.Quote
	rand *rand.Rand
}

// New returns a Selector over pool using rng for the uniform pick.
func New(pool []models.Quote, rng *rand.Rand) *Selector {
	return &Selector{pool: pool, rand: rng}
}

// Select applies the time-of-day bucket rules:
//
//	hour < 10            -> "morning"
//	hour >= 21           -> "night"/"encouragement" once the journal
//	                        entry exists, otherwise the fixed warning
//	14 < hour < 21,      -> "warning"/"discipline"
//	no work entry yet
//	otherwise            -> "encouragement"/"discipline"
func (s *Selector) Select(hour int, todayLogs []models.LogEntry) models.Quote {
	if hour < 10 {
		return s.random("morning")
	}

	if hour >= 21 {
		if hasCategory(todayLogs, models.CategoryJournal) {
			return s.random("night", "encouragement")
		}
		return NightReviewWarning
	}

	if hour > 14 && !hasCategory(todayLogs, models.CategoryWork) {
		return s.random("warning", "discipline")
	}

	return s.random("encouragement", "discipline")
}

// random picks uniformly among pool quotes carrying any of tags. An
// empty filter result falls back to the whole pool so selection never
// fails.
func (s *Selector) random(tags ...string) models.Quote {
	var filtered []models.Quote
	for _, q := range s.pool {
		for _, t := range tags {
			if q.HasTag(t) {
				filtered = append(filtered, q)
				break
			}
		}
	}
	if len(filtered) == 0 {
		filtered = s.pool
	}
	return filtered[s.rand.Intn(len(filtered))]
}

func hasCategory(logs []models.LogEntry, cat models.Category) bool {
	for _, l := range logs {
		if l.Category == cat {
			return true
		}
	}
	return false
}
