// Package config loads the optional ritual.yaml describing the user's
// rituals. A missing file yields the built-in defaults.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rezmoss/ritualcli/internal/errs"
	"github.com/rezmoss/ritualcli/internal/models"
)

// ChecklistItem is one entry of the spiritual daily checklist.
type ChecklistItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Exercise is one rep-counted physical exercise.
type Exercise struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Step int    `yaml:"step"` // increment per keypress
}

// Timers holds the countdown durations, in minutes.
type Timers struct {
	SpiritualMinutes int `yaml:"spiritual_minutes"`
	WorkoutMinutes   int `yaml:"workout_minutes"`
	WorkBlockMinutes int `yaml:"work_block_minutes"`
	FreeBlockMinutes int `yaml:"free_block_minutes"`
}

// Config is the full ritual definition.
type Config struct {
	Checklist  []ChecklistItem `yaml:"checklist"`
	Exercises  []Exercise      `yaml:"exercises"`
	Timers     Timers          `yaml:"timers"`
	WindowDays int             `yaml:"window_days"`
	Quotes     []models.Quote  `yaml:"quotes"`
}

// Default returns the built-in ritual definition, matching the
// original product content.
func Default() *Config {
	return &Config{
		Checklist: []ChecklistItem{
			{ID: "bible", Label: "Leitura Bíblica"},
			{ID: "prayer", Label: "Oração (Agradecimento e Direção)"},
			{ID: "meditation", Label: "Silêncio Interno"},
		},
		Exercises: []Exercise{
			{ID: "pushups", Name: "Flexões", Step: 5},
			{ID: "squats", Name: "Agachamentos", Step: 5},
			{ID: "core", Name: "Core (min)", Step: 5},
		},
		Timers: Timers{
			SpiritualMinutes: 30,
			WorkoutMinutes:   45,
			WorkBlockMinutes: 60,
			FreeBlockMinutes: 30,
		},
		WindowDays: 7,
		Quotes: []models.Quote{
			{ID: "1", Text: "O preguiçoso deseja e nada tem, mas a alma dos diligentes prospera.", Source: "Provérbios 13:4", Tags: []string{"discipline", "warning"}},
			{ID: "2", Text: "Seja forte e corajoso. Não se apavore.", Source: "Josué 1:9", Tags: []string{"morning", "encouragement"}},
			{ID: "3", Text: "A disciplina é o caminho da liberdade.", Source: "Jocko Willink", Tags: []string{"discipline"}},
			{ID: "4", Text: "Não durma enquanto não tiver aprendido algo novo.", Source: "Sabedoria", Tags: []string{"night"}},
			{ID: "5", Text: "O descanso do trabalhador é doce.", Source: "Eclesiastes 5:12", Tags: []string{"night", "encouragement"}},
			{ID: "6", Text: "Todo trabalho árduo traz proveito, mas o só falar leva à pobreza.", Source: "Provérbios 14:23", Tags: []string{"discipline", "warning"}},
			{ID: "7", Text: "Governe a sua mente ou ela governará você.", Source: "Horácio", Tags: []string{"morning", "discipline"}},
		},
	}
}

// Load reads the config at path. A missing file is not an error: the
// defaults apply. Partial files are backfilled from the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errs.New(errs.ErrCodeConfig, "failed to read config", err.Error())
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errs.New(errs.ErrCodeConfig, "failed to parse config", err.Error())
	}
	merge(cfg, &file)
	return cfg, nil
}

func merge(dst, src *Config) {
	if len(src.Checklist) > 0 {
		dst.Checklist = src.Checklist
	}
	if len(src.Exercises) > 0 {
		dst.Exercises = src.Exercises
	}
	if src.Timers.SpiritualMinutes > 0 {
		dst.Timers.SpiritualMinutes = src.Timers.SpiritualMinutes
	}
	if src.Timers.WorkoutMinutes > 0 {
		dst.Timers.WorkoutMinutes = src.Timers.WorkoutMinutes
	}
	if src.Timers.WorkBlockMinutes > 0 {
		dst.Timers.WorkBlockMinutes = src.Timers.WorkBlockMinutes
	}
	if src.Timers.FreeBlockMinutes > 0 {
		dst.Timers.FreeBlockMinutes = src.Timers.FreeBlockMinutes
	}
	if src.WindowDays > 0 {
		dst.WindowDays = src.WindowDays
	}
	if len(src.Quotes) > 0 {
		dst.Quotes = src.Quotes
	}
}
