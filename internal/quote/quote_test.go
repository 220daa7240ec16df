package quote

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezmoss/ritualcli/internal/models"
)

var testPool = []models.Quote{
	{ID: "m1", Text: "morning one", Tags: []string{"morning"}},
	{ID: "m2", Text: "morning two", Tags: []string{"morning", "discipline"}},
	{ID: "e1", Text: "push on", Tags: []string{"encouragement"}},
	{ID: "d1", Text: "stay sharp", Tags: []string{"discipline"}},
	{ID: "w1", Text: "the day slips", Tags: []string{"warning"}},
	{ID: "n1", Text: "rest now", Tags: []string{"night"}},
}

func newSelector(pool []models.Quote) *Selector {
	return New(pool, rand.New(rand.NewSource(42)))
}

func journalEntry() models.LogEntry {
	return models.LogEntry{Category: models.CategoryJournal, Completed: true}
}

func workEntry() models.LogEntry {
	return models.LogEntry{Category: models.CategoryWork, Subtype: "deep_work", Completed: true}
}

func TestSelectMorning(t *testing.T) {
	s := newSelector(testPool)
	for i := 0; i < 50; i++ {
		q := s.Select(8, nil)
		assert.True(t, q.HasTag("morning"), "hour 8 picked %q", q.ID)
	}
}

func TestSelectNightWithoutJournal(t *testing.T) {
	s := newSelector(testPool)
	q := s.Select(22, []models.LogEntry{workEntry()})
	assert.Equal(t, NightReviewWarning, q)
	assert.Equal(t, "O Rei", q.Source)
}

func TestSelectNightWithJournal(t *testing.T) {
	s := newSelector(testPool)
	logs := []models.LogEntry{journalEntry()}
	for i := 0; i < 50; i++ {
		q := s.Select(23, logs)
		assert.True(t, q.HasTag("night") || q.HasTag("encouragement"), "hour 23 picked %q", q.ID)
	}
}

func TestSelectAfternoonWithoutWork(t *testing.T) {
	s := newSelector(testPool)
	for i := 0; i < 50; i++ {
		q := s.Select(16, nil)
		assert.True(t, q.HasTag("warning") || q.HasTag("discipline"), "hour 16 picked %q", q.ID)
	}
}

func TestSelectAfternoonWithWork(t *testing.T) {
	s := newSelector(testPool)
	logs := []models.LogEntry{workEntry()}
	for i := 0; i < 50; i++ {
		q := s.Select(16, logs)
		assert.True(t, q.HasTag("encouragement") || q.HasTag("discipline"), "hour 16 picked %q", q.ID)
	}
}

func TestSelectMiddayDefaultBucket(t *testing.T) {
	s := newSelector(testPool)
	for i := 0; i < 50; i++ {
		q := s.Select(12, nil)
		assert.True(t, q.HasTag("encouragement") || q.HasTag("discipline"), "hour 12 picked %q", q.ID)
	}
}

func TestSelectEmptyFilterFallsBackToPool(t *testing.T) {
	pool := []models.Quote{{ID: "only", Text: "untagged"}}
	s := newSelector(pool)
	q := s.Select(8, nil)
	assert.Equal(t, "only", q.ID)
}

func TestSelectDefaultPoolCoversEveryBucket(t *testing.T) {
	s := newSelector(testPool)
	logs := []models.LogEntry{journalEntry(), workEntry()}
	for hour := 0; hour < 24; hour++ {
		q := s.Select(hour, logs)
		assert.NotEmpty(t, q.Text, "hour %d returned empty quote", hour)
	}
}
