package ui

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/ritualcli/internal/config"
	"github.com/rezmoss/ritualcli/internal/models"
	"github.com/rezmoss/ritualcli/internal/quote"
	"github.com/rezmoss/ritualcli/internal/stats"
	"github.com/rezmoss/ritualcli/internal/storage"
)

func newTestApp(t *testing.T) (*App, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	cfg := config.Default()
	statsSvc := stats.New(store)
	store.Subscribe(statsSvc.Invalidate)
	selector := quote.New(cfg.Quotes, rand.New(rand.NewSource(1)))
	return NewApp(store, statsSvc, selector, cfg, zerolog.Nop()), store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNightScreenEscReleasesKeyRouting(t *testing.T) {
	app, _ := newTestApp(t)
	app.Init()

	app.Update(keyRunes("5"))
	require.Equal(t, screenNight, app.screen)

	// With the form focused, screen keys type into the answer.
	app.Update(keyRunes("1"))
	assert.Equal(t, screenNight, app.screen)
	assert.Equal(t, "1", app.night.fields[0].String())

	// Esc drops focus; navigation and quit work again.
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := app.Update(keyRunes("1"))
	assert.Nil(t, cmd)
	assert.Equal(t, screenDashboard, app.screen)

	app.Update(keyRunes("5"))
	require.Equal(t, screenNight, app.screen)
	_, cmd = app.Update(keyRunes("q"))
	assert.NotNil(t, cmd, "q should quit once the form is unfocused")
}

func TestNightScreenResumeEditing(t *testing.T) {
	app, _ := newTestApp(t)
	app.Init()

	app.Update(keyRunes("5"))
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, app.night.editing)

	app.Update(keyRunes("e"))
	assert.True(t, app.night.editing)

	app.Update(keyRunes("x"))
	assert.Equal(t, "x", app.night.fields[0].String())
}

func TestWorkBlockExpiredWhileClosedLogsOnStartup(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	// A 60 m block was running two hours ago when the app closed.
	require.NoError(t, store.SetSlot(ctx, storage.WorkBlockKey, "Proposta"))
	require.NoError(t, store.SaveTimerSnapshot(ctx, "work-block-timer", models.TimerSnapshot{
		RemainingSeconds: 15 * 60,
		IsRunning:        true,
		SavedAt:          time.Now().Add(-2 * time.Hour).UnixMilli(),
	}))

	app.Init()

	cat := models.CategoryWork
	logs, err := store.LogsByDate(ctx, models.Today(), &cat)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	bySubtype := map[string]models.LogEntry{}
	for _, l := range logs {
		bySubtype[l.Subtype] = l
	}
	assert.Equal(t, "Proposta", bySubtype["deep_work"].Value)
	assert.Equal(t, "60", bySubtype["work_duration"].Value)

	// The block is fully torn down: no slot, no snapshot, no countdown.
	slot, err := store.GetSlot(ctx, storage.WorkBlockKey)
	require.NoError(t, err)
	assert.Empty(t, slot)
	snap, err := store.GetTimerSnapshot(ctx, "work-block-timer")
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Empty(t, app.work.block)
	assert.Nil(t, app.work.countdown)
}

func TestWorkBlockSurvivingRestartKeepsRunning(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, store.SetSlot(ctx, storage.WorkBlockKey, "Proposta"))
	require.NoError(t, store.SaveTimerSnapshot(ctx, "work-block-timer", models.TimerSnapshot{
		RemainingSeconds: 30 * 60,
		IsRunning:        true,
		SavedAt:          time.Now().Add(-time.Minute).UnixMilli(),
	}))

	app.Init()

	assert.Equal(t, "Proposta", app.work.block)
	require.NotNil(t, app.work.countdown)
	assert.True(t, app.work.countdown.IsRunning())

	cat := models.CategoryWork
	logs, err := store.LogsByDate(ctx, models.Today(), &cat)
	require.NoError(t, err)
	assert.Empty(t, logs, "a block still in progress logs nothing")
}
