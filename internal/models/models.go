package models

import (
	"strconv"
	"time"
)

// Category identifies one of the four ritual domains.
type Category string

const (
	CategorySpiritual Category = "spiritual"
	CategoryPhysical  Category = "physical"
	CategoryWork      Category = "work"
	CategoryJournal   Category = "journal"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategorySpiritual, CategoryPhysical, CategoryWork, CategoryJournal}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySpiritual, CategoryPhysical, CategoryWork, CategoryJournal:
		return true
	}
	return false
}

// ValueKind tags the payload carried by a log entry's value. The kind
// is decided at the write call site; readers switch on it instead of
// sniffing the string.
type ValueKind string

const (
	ValueCount           ValueKind = "count"
	ValueDurationMinutes ValueKind = "minutes"
	ValueText            ValueKind = "text"
	ValueSentinel        ValueKind = "sentinel"
)

// SentinelCompleted is the fixed payload for checklist-style entries.
const SentinelCompleted = "completed"

// LogEntry is one completed activity, immutable once written. Updates
// are modeled as delete + reinsert.
type LogEntry struct {
	ID        int64
	Date      string // day bucket, YYYY-MM-DD local time
	Category  Category
	Subtype   string // dedupe key and display label, may be empty
	Value     string
	ValueKind ValueKind
	Completed bool
	Timestamp int64 // epoch millis, ordering only
}

// LogDraft is a LogEntry before the store assigns it an id.
type LogDraft struct {
	Date      string
	Category  Category
	Subtype   string
	Value     string
	ValueKind ValueKind
	Completed bool
	Timestamp int64
}

// CountDraft builds a draft carrying an integer count (reps etc.).
func CountDraft(date string, cat Category, subtype string, n int, ts int64) LogDraft {
	return LogDraft{Date: date, Category: cat, Subtype: subtype, Value: strconv.Itoa(n), ValueKind: ValueCount, Completed: true, Timestamp: ts}
}

// MinutesDraft builds a draft carrying a duration in whole minutes.
func MinutesDraft(date string, cat Category, subtype string, mins int, ts int64) LogDraft {
	return LogDraft{Date: date, Category: cat, Subtype: subtype, Value: strconv.Itoa(mins), ValueKind: ValueDurationMinutes, Completed: true, Timestamp: ts}
}

// TextDraft builds a draft carrying free text (block names, journal JSON).
func TextDraft(date string, cat Category, subtype, text string, ts int64) LogDraft {
	return LogDraft{Date: date, Category: cat, Subtype: subtype, Value: text, ValueKind: ValueText, Completed: true, Timestamp: ts}
}

// CompletedDraft builds a toggle-style draft with the fixed sentinel value.
func CompletedDraft(date string, cat Category, subtype string, ts int64) LogDraft {
	return LogDraft{Date: date, Category: cat, Subtype: subtype, Value: SentinelCompleted, ValueKind: ValueSentinel, Completed: true, Timestamp: ts}
}

// DayFormat is the calendar day bucket layout.
const DayFormat = "2006-01-02"

// DayBucket returns the calendar day string for t in t's location.
// Every write and read path must bucket through here so writer and
// reader agree on the day boundary.
func DayBucket(t time.Time) string {
	return t.Format(DayFormat)
}

// Today returns the current local day bucket.
func Today() string {
	return DayBucket(time.Now())
}

// Quote is one entry of the motivational pool.
type Quote struct {
	ID     string   `yaml:"id"`
	Text   string   `yaml:"text"`
	Source string   `yaml:"source"`
	Tags   []string `yaml:"tags"`
}

// HasTag reports whether the quote carries tag.
func (q Quote) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TimerSnapshot is the minimal persisted state needed to reconstruct a
// countdown across a restart. Not part of the durable activity log.
type TimerSnapshot struct {
	RemainingSeconds int   `json:"remaining_seconds"`
	IsRunning        bool  `json:"is_running"`
	SavedAt          int64 `json:"saved_at"` // epoch millis
}

// DailyStats is one day's logs with the derived score.
type DailyStats struct {
	Date  string
	Score int
	Logs  []LogEntry
}

// DayScore is one point of the trailing trend window.
type DayScore struct {
	Label    string // abbreviated weekday name
	Day      int    // day of month
	Score    int
	FullDate string
}

