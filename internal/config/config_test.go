package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/ritualcli/internal/errs"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.yaml")
	data := `
timers:
  work_block_minutes: 90
window_days: 14
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Timers.WorkBlockMinutes)
	assert.Equal(t, 14, cfg.WindowDays)

	// Everything the file omits keeps the default.
	def := Default()
	assert.Equal(t, def.Timers.SpiritualMinutes, cfg.Timers.SpiritualMinutes)
	assert.Equal(t, def.Timers.WorkoutMinutes, cfg.Timers.WorkoutMinutes)
	assert.Equal(t, def.Timers.FreeBlockMinutes, cfg.Timers.FreeBlockMinutes)
	assert.Equal(t, def.Checklist, cfg.Checklist)
	assert.Equal(t, def.Exercises, cfg.Exercises)
	assert.Equal(t, def.Quotes, cfg.Quotes)
}

func TestLoadFullOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.yaml")
	data := `
checklist:
  - id: reading
    label: Leitura
exercises:
  - id: run
    name: Corrida (min)
    step: 10
quotes:
  - id: q1
    text: Um passo de cada vez.
    source: Anônimo
    tags: [encouragement]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Checklist, 1)
	assert.Equal(t, "reading", cfg.Checklist[0].ID)
	require.Len(t, cfg.Exercises, 1)
	assert.Equal(t, 10, cfg.Exercises[0].Step)
	require.Len(t, cfg.Quotes, 1)
	assert.True(t, cfg.Quotes[0].HasTag("encouragement"))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checklist: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrCodeConfig))
}

func TestDefaultQuotePoolCoversBuckets(t *testing.T) {
	cfg := Default()
	for _, tag := range []string{"morning", "night", "encouragement", "discipline", "warning"} {
		found := false
		for _, q := range cfg.Quotes {
			if q.HasTag(tag) {
				found = true
				break
			}
		}
		assert.True(t, found, "default pool has no %q quote", tag)
	}
}
