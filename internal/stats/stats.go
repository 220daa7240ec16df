// Package stats folds the log history into per-day scores and the
// trailing trend window.
package stats

import (
	"context"
	"time"

	"github.com/rezmoss/ritualcli/internal/models"
	"github.com/rezmoss/ritualcli/internal/score"
)

// LogSource is the slice of the store the reducer reads from.
type LogSource interface {
	AllLogs(ctx context.Context) ([]models.LogEntry, error)
}

// Service computes derived stats over the log history. It caches the
// day-grouped history and expects Invalidate to be wired to the
// store's change notification, so scores recompute only after a write.
// Not safe for concurrent use; it lives on the UI event loop.
type Service struct {
	src   LogSource
	now   func() time.Time
	byDay map[string][]models.LogEntry
}

// New returns a Service reading from src.
func New(src LogSource) *Service {
	return &Service{src: src, now: time.Now}
}

// WithNow overrides the clock. Tests pin "today" with it.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Invalidate drops the cached history. The date parameter matches the
// store's notification signature; any write invalidates everything
// since the full grouping is one query away.
func (s *Service) Invalidate(string) {
	s.byDay = nil
}

// Today returns the current day bucket with its logs and score.
func (s *Service) Today(ctx context.Context) (models.DailyStats, error) {
	byDay, err := s.grouped(ctx)
	if err != nil {
		return models.DailyStats{}, err
	}
	date := models.DayBucket(s.now())
	logs := byDay[date]
	return models.DailyStats{Date: date, Score: score.Compute(logs), Logs: logs}, nil
}

// TrailingWindow returns the last n days inclusive of today, ordered
// oldest to newest. Always exactly n entries; days without logs score
// zero.
func (s *Service) TrailingWindow(ctx context.Context, n int) ([]models.DayScore, error) {
	byDay, err := s.grouped(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]models.DayScore, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := models.DayBucket(d)
		out = append(out, models.DayScore{
			Label:    d.Weekday().String()[:3],
			Day:      d.Day(),
			Score:    score.Compute(byDay[date]),
			FullDate: date,
		})
	}
	return out, nil
}

// HistoryMap returns date -> score for every date present in the
// history, one aggregator call per distinct date.
func (s *Service) HistoryMap(ctx context.Context) (map[string]int, error) {
	byDay, err := s.grouped(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(byDay))
	for date, logs := range byDay {
		out[date] = score.Compute(logs)
	}
	return out, nil
}

func (s *Service) grouped(ctx context.Context) (map[string][]models.LogEntry, error) {
	if s.byDay != nil {
		return s.byDay, nil
	}
	all, err := s.src.AllLogs(ctx)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string][]models.LogEntry)
	for _, l := range all {
		byDay[l.Date] = append(byDay[l.Date], l)
	}
	s.byDay = byDay
	return byDay, nil
}
