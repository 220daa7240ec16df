package score

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezmoss/ritualcli/internal/models"
)

func entry(cat models.Category, subtype string, completed bool) models.LogEntry {
	return models.LogEntry{Date: "2026-08-28", Category: cat, Subtype: subtype, Completed: completed}
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, 0, Compute(nil))
	assert.Equal(t, 0, Compute([]models.LogEntry{}))
}

func TestComputeFullDay(t *testing.T) {
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "prayer", true),
		entry(models.CategorySpiritual, "meditation", true),
		entry(models.CategoryPhysical, "pushups", true),
		entry(models.CategoryWork, "deep_work", true),
		entry(models.CategoryJournal, "", true),
	}
	assert.Equal(t, 100, Compute(logs))
}

func TestComputeSpiritualOnly(t *testing.T) {
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "prayer", true),
	}
	assert.Equal(t, 20, Compute(logs))
}

func TestComputeSpiritualCap(t *testing.T) {
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "prayer", true),
		entry(models.CategorySpiritual, "meditation", true),
		entry(models.CategorySpiritual, "timer_session", true),
		entry(models.CategorySpiritual, "timer_session_partial", true),
	}
	assert.Equal(t, 30, Compute(logs))
}

func TestComputePhysicalVolumeIrrelevant(t *testing.T) {
	one := []models.LogEntry{entry(models.CategoryPhysical, "pushups", true)}
	many := []models.LogEntry{
		entry(models.CategoryPhysical, "pushups", true),
		entry(models.CategoryPhysical, "squats", true),
		entry(models.CategoryPhysical, "core", true),
	}
	assert.Equal(t, 30, Compute(one))
	assert.Equal(t, 30, Compute(many))
}

func TestComputeOrderInvariant(t *testing.T) {
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "prayer", true),
		entry(models.CategoryPhysical, "pushups", true),
		entry(models.CategoryWork, "deep_work", true),
		entry(models.CategoryJournal, "", true),
	}
	want := Compute(logs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.LogEntry, len(logs))
		copy(shuffled, logs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Compute(shuffled))
	}
}

func TestComputeDuplicateSpiritualRows(t *testing.T) {
	// Duplicate toggle rows (invariant violation, degraded state)
	// must not inflate the spiritual sub-score.
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "bible", true),
		entry(models.CategorySpiritual, "bible", true),
	}
	assert.Equal(t, 10, Compute(logs))
}

func TestComputeIgnoresUncompleted(t *testing.T) {
	logs := []models.LogEntry{
		entry(models.CategorySpiritual, "bible", false),
		entry(models.CategoryPhysical, "pushups", false),
		entry(models.CategoryWork, "deep_work", false),
		entry(models.CategoryJournal, "", false),
	}
	assert.Equal(t, 0, Compute(logs))
}
