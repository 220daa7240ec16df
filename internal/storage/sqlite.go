package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/rezmoss/ritualcli/internal/errs"
	"github.com/rezmoss/ritualcli/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db          *sql.DB
	logger      zerolog.Logger
	migrations  []*Migration
	subscribers []func(date string)
}

// Open creates the database file (and its directory) if needed and
// returns a connected store.
func Open(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.New(errs.ErrCodeStorage, "failed to create database directory", err.Error())
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.New(errs.ErrCodeStorage, "failed to open database", err.Error())
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errs.New(errs.ErrCodeStorage, "failed to enable WAL mode", err.Error())
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, errs.New(errs.ErrCodeStorage, "failed to set busy timeout", err.Error())
	}

	s := &SQLiteStore{db: db, logger: logger, migrations: GetMigrations()}
	logger.Info().Str("path", path).Msg("database opened")
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Migrate runs all migrations.
func (s *SQLiteStore) Migrate() error {
	for _, m := range s.migrations {
		if _, err := s.db.Exec(m.SQL); err != nil {
			return errs.New(errs.ErrCodeStorage, fmt.Sprintf("migration %s failed", m.Version), err.Error())
		}
	}
	return nil
}

// Subscribe registers a change listener.
func (s *SQLiteStore) Subscribe(fn func(date string)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *SQLiteStore) notify(date string) {
	for _, fn := range s.subscribers {
		fn(date)
	}
}

// InsertLog inserts one entry and returns its store-assigned id.
func (s *SQLiteStore) InsertLog(ctx context.Context, draft models.LogDraft) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_logs (date, category, subtype, value, value_kind, completed, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		draft.Date, string(draft.Category), draft.Subtype, draft.Value, string(draft.ValueKind),
		boolToInt(draft.Completed), draft.Timestamp)
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to insert log", err.Error())
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to read inserted id", err.Error())
	}
	s.notify(draft.Date)
	return id, nil
}

// DeleteLog deletes one entry by id.
func (s *SQLiteStore) DeleteLog(ctx context.Context, id int64) error {
	date, err := s.dateOf(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE id = ?`, id); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to delete log", err.Error())
	}
	if date != "" {
		s.notify(date)
	}
	return nil
}

// BulkDeleteLogs deletes the given ids in one transaction.
func (s *SQLiteStore) BulkDeleteLogs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to begin transaction", err.Error())
	}
	defer tx.Rollback()

	dates := map[string]bool{}
	for _, id := range ids {
		var date string
		err := tx.QueryRowContext(ctx, `SELECT date FROM daily_logs WHERE id = ?`, id).Scan(&date)
		if err == nil {
			dates[date] = true
		} else if err != sql.ErrNoRows {
			return errs.New(errs.ErrCodeStorage, "failed to look up log", err.Error())
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_logs WHERE id = ?`, id); err != nil {
			return errs.New(errs.ErrCodeStorage, "failed to delete log", err.Error())
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to commit bulk delete", err.Error())
	}
	for date := range dates {
		s.notify(date)
	}
	return nil
}

// LogsByDate returns the entries for one day bucket, optionally
// filtered by category, ordered by timestamp then id.
func (s *SQLiteStore) LogsByDate(ctx context.Context, date string, category *models.Category) ([]models.LogEntry, error) {
	query := `SELECT id, date, category, subtype, value, value_kind, completed, timestamp
		FROM daily_logs WHERE date = ?`
	args := []interface{}{date}
	if category != nil {
		query += ` AND category = ?`
		args = append(args, string(*category))
	}
	query += ` ORDER BY timestamp ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.New(errs.ErrCodeStorage, "failed to query logs", err.Error())
	}
	defer rows.Close()
	return scanLogs(rows)
}

// AllLogs returns the entire log history ordered by timestamp then id.
func (s *SQLiteStore) AllLogs(ctx context.Context) ([]models.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, subtype, value, value_kind, completed, timestamp
		FROM daily_logs ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, errs.New(errs.ErrCodeStorage, "failed to query logs", err.Error())
	}
	defer rows.Close()
	return scanLogs(rows)
}

// Toggle deletes any existing row for the draft's (date, category,
// subtype) and inserts the draft, in one transaction. More than one
// existing row means a writer skipped the delete-then-insert
// discipline; the store logs it and last-write-wins.
func (s *SQLiteStore) Toggle(ctx context.Context, draft models.LogDraft) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to begin transaction", err.Error())
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM daily_logs WHERE date = ? AND category = ? AND subtype = ?`,
		draft.Date, string(draft.Category), draft.Subtype)
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to clear toggle entry", err.Error())
	}
	if n, _ := res.RowsAffected(); n > 1 {
		s.logger.Warn().Str("code", errs.ErrCodeInvariant).
			Str("date", draft.Date).Str("category", string(draft.Category)).Str("subtype", draft.Subtype).
			Int64("rows", n).Msg("duplicate toggle rows replaced")
	}

	ins, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (date, category, subtype, value, value_kind, completed, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		draft.Date, string(draft.Category), draft.Subtype, draft.Value, string(draft.ValueKind),
		boolToInt(draft.Completed), draft.Timestamp)
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to insert toggle entry", err.Error())
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to read inserted id", err.Error())
	}
	if err := tx.Commit(); err != nil {
		return 0, errs.New(errs.ErrCodeStorage, "failed to commit toggle", err.Error())
	}
	s.notify(draft.Date)
	return id, nil
}

// Untoggle removes the row for (date, category, subtype), if any.
func (s *SQLiteStore) Untoggle(ctx context.Context, date string, category models.Category, subtype string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE date = ? AND category = ? AND subtype = ?`,
		date, string(category), subtype); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to delete toggle entry", err.Error())
	}
	s.notify(date)
	return nil
}

// ReplaceDayCategory atomically swaps the entries for (date, category)
// with drafts. Commit-or-nothing: a failure leaves the prior rows.
func (s *SQLiteStore) ReplaceDayCategory(ctx context.Context, date string, category models.Category, drafts []models.LogDraft) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to begin transaction", err.Error())
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_logs WHERE date = ? AND category = ?`,
		date, string(category)); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to clear day entries", err.Error())
	}
	for _, draft := range drafts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO daily_logs (date, category, subtype, value, value_kind, completed, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			draft.Date, string(draft.Category), draft.Subtype, draft.Value, string(draft.ValueKind),
			boolToInt(draft.Completed), draft.Timestamp); err != nil {
			return errs.New(errs.ErrCodeStorage, "failed to insert replacement entry", err.Error())
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to commit replace", err.Error())
	}
	s.notify(date)
	return nil
}

// SetDecree stores the day's intention, overwriting any prior value.
func (s *SQLiteStore) SetDecree(ctx context.Context, date, text string) error {
	return s.SetSlot(ctx, DecreePrefix+date, text)
}

// GetDecree returns the day's intention, empty when unset.
func (s *SQLiteStore) GetDecree(ctx context.Context, date string) (string, error) {
	return s.GetSlot(ctx, DecreePrefix+date)
}

// SaveTimerSnapshot persists a countdown snapshot under its
// persistence id.
func (s *SQLiteStore) SaveTimerSnapshot(ctx context.Context, id string, snap models.TimerSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to encode timer snapshot", err.Error())
	}
	return s.SetSlot(ctx, TimerPrefix+id, string(data))
}

// GetTimerSnapshot returns the saved snapshot, or nil when absent.
// A snapshot that fails to parse counts as absent: the countdown
// degrades to a fresh start instead of crashing.
func (s *SQLiteStore) GetTimerSnapshot(ctx context.Context, id string) (*models.TimerSnapshot, error) {
	raw, err := s.GetSlot(ctx, TimerPrefix+id)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var snap models.TimerSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn().Str("code", errs.ErrCodeSnapshot).Str("id", id).Err(err).
			Msg("discarding malformed timer snapshot")
		return nil, nil
	}
	return &snap, nil
}

// DeleteTimerSnapshot removes the saved snapshot, if any.
func (s *SQLiteStore) DeleteTimerSnapshot(ctx context.Context, id string) error {
	return s.DeleteSlot(ctx, TimerPrefix+id)
}

// SetSlot upserts a key-value slot.
func (s *SQLiteStore) SetSlot(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli()); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to write slot", err.Error())
	}
	return nil
}

// GetSlot returns a slot value, empty when absent.
func (s *SQLiteStore) GetSlot(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errs.New(errs.ErrCodeStorage, "failed to read slot", err.Error())
	}
	return value, nil
}

// DeleteSlot removes a slot.
func (s *SQLiteStore) DeleteSlot(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return errs.New(errs.ErrCodeStorage, "failed to delete slot", err.Error())
	}
	return nil
}

func (s *SQLiteStore) dateOf(ctx context.Context, id int64) (string, error) {
	var date string
	err := s.db.QueryRowContext(ctx, `SELECT date FROM daily_logs WHERE id = ?`, id).Scan(&date)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errs.New(errs.ErrCodeStorage, "failed to look up log", err.Error())
	}
	return date, nil
}

func scanLogs(rows *sql.Rows) ([]models.LogEntry, error) {
	var out []models.LogEntry
	for rows.Next() {
		var (
			e         models.LogEntry
			cat, kind string
			completed int
		)
		if err := rows.Scan(&e.ID, &e.Date, &cat, &e.Subtype, &e.Value, &kind, &completed, &e.Timestamp); err != nil {
			return nil, errs.New(errs.ErrCodeStorage, "failed to scan log row", err.Error())
		}
		e.Category = models.Category(cat)
		e.ValueKind = models.ValueKind(kind)
		e.Completed = completed != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.New(errs.ErrCodeStorage, "failed to iterate log rows", err.Error())
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Store = (*SQLiteStore)(nil)
