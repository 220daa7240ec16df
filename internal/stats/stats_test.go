package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/ritualcli/internal/models"
)

type fakeSource struct {
	logs  []models.LogEntry
	calls int
}

func (f *fakeSource) AllLogs(context.Context) ([]models.LogEntry, error) {
	f.calls++
	return f.logs, nil
}

// fixedNow pins "today" to a Friday.
var fixedNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)

func newService(src *fakeSource) *Service {
	return New(src).WithNow(func() time.Time { return fixedNow })
}

func dayLog(date string, cat models.Category, subtype string) models.LogEntry {
	return models.LogEntry{Date: date, Category: cat, Subtype: subtype, Completed: true}
}

func TestToday(t *testing.T) {
	src := &fakeSource{logs: []models.LogEntry{
		dayLog("2026-08-28", models.CategorySpiritual, "bible"),
		dayLog("2026-08-28", models.CategoryJournal, ""),
		dayLog("2026-08-27", models.CategoryWork, "deep_work"),
	}}
	svc := newService(src)

	today, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", today.Date)
	assert.Equal(t, 30, today.Score) // 10 spiritual + 20 journal
	assert.Len(t, today.Logs, 2)
}

func TestTrailingWindowShape(t *testing.T) {
	svc := newService(&fakeSource{})

	window, err := svc.TrailingWindow(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, window, 7)

	// Oldest to newest, ending today.
	assert.Equal(t, "2026-08-22", window[0].FullDate)
	assert.Equal(t, "2026-08-28", window[6].FullDate)
	for i := 1; i < len(window); i++ {
		assert.Less(t, window[i-1].FullDate, window[i].FullDate)
	}

	// Aug 28 2026 is a Friday.
	assert.Equal(t, "Fri", window[6].Label)
	assert.Equal(t, 28, window[6].Day)
}

func TestTrailingWindowScores(t *testing.T) {
	src := &fakeSource{logs: []models.LogEntry{
		dayLog("2026-08-26", models.CategoryPhysical, "pushups"),
		dayLog("2026-08-28", models.CategoryWork, "deep_work"),
		// Outside the window; must not leak in.
		dayLog("2026-08-01", models.CategoryJournal, ""),
	}}
	svc := newService(src)

	window, err := svc.TrailingWindow(context.Background(), 7)
	require.NoError(t, err)

	byDate := map[string]int{}
	for _, day := range window {
		byDate[day.FullDate] = day.Score
	}
	assert.Equal(t, 30, byDate["2026-08-26"])
	assert.Equal(t, 20, byDate["2026-08-28"])
	assert.Equal(t, 0, byDate["2026-08-27"])
	_, inWindow := byDate["2026-08-01"]
	assert.False(t, inWindow)
}

func TestHistoryMap(t *testing.T) {
	src := &fakeSource{logs: []models.LogEntry{
		dayLog("2026-08-01", models.CategoryJournal, ""),
		dayLog("2026-08-01", models.CategoryWork, "deep_work"),
		dayLog("2026-08-02", models.CategoryPhysical, "pushups"),
	}}
	svc := newService(src)

	history, err := svc.HistoryMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"2026-08-01": 40,
		"2026-08-02": 30,
	}, history)
}

func TestCacheInvalidation(t *testing.T) {
	src := &fakeSource{}
	svc := newService(src)
	ctx := context.Background()

	_, err := svc.Today(ctx)
	require.NoError(t, err)
	_, err = svc.HistoryMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "reads between writes share one query")

	src.logs = []models.LogEntry{dayLog("2026-08-28", models.CategoryJournal, "")}
	svc.Invalidate("2026-08-28")

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, today.Score)
	assert.Equal(t, 2, src.calls)
}
