// Package storage provides the SQLite-backed local store for daily
// logs, the decree slot, timer snapshots and transient UI slots.
//
// The database runs in WAL mode. All queries order by timestamp then
// id so results are deterministic. There is no cross-process writer:
// the only caller is the single UI event loop, so no locking beyond
// SQLite's own transaction guarantees is needed.
package storage

import (
	"context"

	"github.com/rezmoss/ritualcli/internal/models"
)

// Store defines the operations of the local log store.
type Store interface {
	Close() error
	Migrate() error

	// Log operations. Entries are immutable once written; updates are
	// delete + reinsert.
	InsertLog(ctx context.Context, draft models.LogDraft) (int64, error)
	DeleteLog(ctx context.Context, id int64) error
	BulkDeleteLogs(ctx context.Context, ids []int64) error
	LogsByDate(ctx context.Context, date string, category *models.Category) ([]models.LogEntry, error)
	AllLogs(ctx context.Context) ([]models.LogEntry, error)

	// Toggle discipline: at most one row per (date, category, subtype)
	// for checklist-style entries. Toggle deletes any existing row and
	// inserts the draft in one transaction; Untoggle removes the row.
	Toggle(ctx context.Context, draft models.LogDraft) (int64, error)
	Untoggle(ctx context.Context, date string, category models.Category, subtype string) error

	// ReplaceDayCategory atomically replaces every entry for
	// (date, category) with drafts. A crash mid-operation leaves the
	// prior rows intact.
	ReplaceDayCategory(ctx context.Context, date string, category models.Category, drafts []models.LogDraft) error

	// Decree slot, one free-text intention per calendar day.
	SetDecree(ctx context.Context, date, text string) error
	GetDecree(ctx context.Context, date string) (string, error)

	// Timer snapshots, keyed by persistence id.
	SaveTimerSnapshot(ctx context.Context, id string, snap models.TimerSnapshot) error
	GetTimerSnapshot(ctx context.Context, id string) (*models.TimerSnapshot, error)
	DeleteTimerSnapshot(ctx context.Context, id string) error

	// Generic transient slots (pending demands, active work block).
	// Keys are namespaced by the caller and must not collide with the
	// decree-/timer- prefixes.
	SetSlot(ctx context.Context, key, value string) error
	GetSlot(ctx context.Context, key string) (string, error)
	DeleteSlot(ctx context.Context, key string) error

	// Subscribe registers fn to run after every successful log
	// mutation with the affected day bucket. Callbacks run on the
	// mutating caller's goroutine.
	Subscribe(fn func(date string))
}

// Slot key prefixes. Each kind of slot owns a distinct namespace.
const (
	DecreePrefix  = "decree-"
	TimerPrefix   = "timer-"
	DemandsPrefix = "demands-"
	WorkBlockKey  = "workblock"
)
