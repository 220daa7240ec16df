// Package score derives the 0-100 daily consistency score.
package score

import (
	"github.com/rezmoss/ritualcli/internal/models"
)

// Category weights. Full engagement across all four sums to exactly 100.
const (
	spiritualPointsPerItem = 10
	spiritualCap           = 3
	physicalPoints         = 30
	workPoints             = 20
	journalPoints          = 20
	maxScore               = 100
)

// Compute folds one day's entries into the consistency score. Pure and
// order-invariant: the same entry set always yields the same score.
//
// Only completed entries count, for every category. Spiritual entries
// are counted by distinct subtype so a duplicated toggle row cannot
// inflate the sub-score.
func Compute(logs []models.LogEntry) int {
	spiritual := map[string]bool{}
	var physical, work, journal int

	for _, l := range logs {
		if !l.Completed {
			continue
		}
		switch l.Category {
		case models.CategorySpiritual:
			spiritual[l.Subtype] = true
		case models.CategoryPhysical:
			physical++
		case models.CategoryWork:
			work++
		case models.CategoryJournal:
			journal++
		}
	}

	score := 0
	if n := len(spiritual); n >= spiritualCap {
		score += spiritualCap * spiritualPointsPerItem
	} else {
		score += n * spiritualPointsPerItem
	}
	if physical > 0 {
		score += physicalPoints
	}
	if work > 0 {
		score += workPoints
	}
	if journal > 0 {
		score += journalPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
