package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/ritualcli/internal/models"
	"github.com/rezmoss/ritualcli/internal/timer"
)

// physicalScreen tracks rep counts per exercise plus the workout
// countdown. Saving replaces today's physical entries wholesale so
// repeated saves never accumulate duplicates.
type physicalScreen struct {
	app *App

	reps      map[string]int
	cursor    int
	saved     bool
	countdown *timer.Countdown
}

func newPhysicalScreen(app *App) *physicalScreen {
	p := &physicalScreen{app: app, reps: map[string]int{}}
	p.countdown = timer.New(timer.Options{
		TotalSeconds:      app.cfg.Timers.WorkoutMinutes * 60,
		AllowManualFinish: true,
		OnComplete:        p.onWorkoutTimeout,
		OnManualFinish:    p.onWorkoutFinish,
	})
	return p
}

func (p *physicalScreen) refresh() {
	cat := models.CategoryPhysical
	logs, err := p.app.store.LogsByDate(context.Background(), models.Today(), &cat)
	if err != nil {
		p.app.fail("load workout", err)
		return
	}
	p.reps = map[string]int{}
	for _, l := range logs {
		if l.ValueKind != models.ValueCount {
			continue
		}
		if n, err := strconv.Atoi(l.Value); err == nil {
			p.reps[l.Subtype] = n
		}
	}
	p.saved = false
}

func (p *physicalScreen) timerRunning() bool { return p.countdown.IsRunning() }

func (p *physicalScreen) tick() {
	if err := p.countdown.Tick(); err != nil {
		p.app.fail("save timer", err)
	}
}

func (p *physicalScreen) onWorkoutTimeout() {
	p.app.flash("Tempo limite de treino atingido.")
}

func (p *physicalScreen) onWorkoutFinish(elapsedSeconds int) {
	mins := ceilMinutes(elapsedSeconds)
	draft := models.MinutesDraft(models.Today(), models.CategoryPhysical, "workout_duration",
		mins, time.Now().UnixMilli())
	if _, err := p.app.store.InsertLog(context.Background(), draft); err != nil {
		p.app.fail("save workout duration", err)
		return
	}
	p.app.flash(fmt.Sprintf("Duração salva: %d min.", mins))
}

func (p *physicalScreen) update(msg tea.KeyMsg) {
	exercises := p.app.cfg.Exercises
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(exercises)-1 {
			p.cursor++
		}
	case "right", "l", "+":
		ex := exercises[p.cursor]
		p.reps[ex.ID] += ex.Step
		p.saved = false
	case "left", "h", "-":
		ex := exercises[p.cursor]
		if p.reps[ex.ID] >= ex.Step {
			p.reps[ex.ID] -= ex.Step
		} else {
			p.reps[ex.ID] = 0
		}
		p.saved = false
	case "enter":
		p.save()
	case "s":
		if p.countdown.IsRunning() {
			if err := p.countdown.Pause(); err != nil {
				p.app.fail("save timer", err)
			}
		} else {
			if err := p.countdown.Start(); err != nil {
				p.app.fail("save timer", err)
			}
		}
	case "f":
		if err := p.countdown.ManualFinish(); err != nil {
			p.app.fail("save timer", err)
		}
	case "r":
		if err := p.countdown.Reset(); err != nil {
			p.app.fail("save timer", err)
		}
	}
}

// save bulk-replaces today's physical rep entries. Zero-rep exercises
// are omitted rather than written as zeros.
func (p *physicalScreen) save() {
	date := models.Today()
	ts := time.Now().UnixMilli()
	var drafts []models.LogDraft
	for _, ex := range p.app.cfg.Exercises {
		if n := p.reps[ex.ID]; n > 0 {
			drafts = append(drafts, models.CountDraft(date, models.CategoryPhysical, ex.ID, n, ts))
		}
	}
	if err := p.app.store.ReplaceDayCategory(context.Background(), date, models.CategoryPhysical, drafts); err != nil {
		p.app.fail("save workout", err)
		return
	}
	p.saved = true
	p.app.flash("Treino registrado.")
}

func (p *physicalScreen) view() string {
	width := p.app.width - 4
	if width < 40 {
		width = 40
	}

	timerBox := boxStyle.Width(width).Render(renderTimer(
		"DURAÇÃO DO TREINO", p.countdown, "s start/pause • f concluir • r reset"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("TREINO DO REI") + "\n\n")
	for i, ex := range p.app.cfg.Exercises {
		prefix := "  "
		if i == p.cursor {
			prefix = accentStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-28s %s\n", prefix, ex.Name,
			accentStyle.Render(fmt.Sprintf("%4d", p.reps[ex.ID]))))
	}
	saveHint := "←/→ adjust • enter registrar"
	if p.saved {
		saveHint = doneStyle.Render("✓ salvo")
	}
	b.WriteString("\n" + pendingStyle.Render(saveHint))
	repsBox := boxStyle.Width(width).Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, timerBox, repsBox)
}
