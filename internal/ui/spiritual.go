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

// spiritualScreen holds the daily checklist and the session countdown.
type spiritualScreen struct {
	app *App

	checked   map[string]bool
	cursor    int
	countdown *timer.Countdown
}

func newSpiritualScreen(app *App) *spiritualScreen {
	s := &spiritualScreen{app: app, checked: map[string]bool{}}
	s.countdown = timer.New(timer.Options{
		TotalSeconds:      app.cfg.Timers.SpiritualMinutes * 60,
		AllowManualFinish: true,
		OnComplete:        s.onSessionComplete,
		OnManualFinish:    s.onSessionPartial,
	})
	return s
}

func (s *spiritualScreen) refresh() {
	cat := models.CategorySpiritual
	logs, err := s.app.store.LogsByDate(context.Background(), models.Today(), &cat)
	if err != nil {
		s.app.fail("load checklist", err)
		return
	}
	s.checked = map[string]bool{}
	for _, l := range logs {
		if l.Completed {
			s.checked[l.Subtype] = true
		}
	}
}

func (s *spiritualScreen) timerRunning() bool { return s.countdown.IsRunning() }

func (s *spiritualScreen) tick() {
	if err := s.countdown.Tick(); err != nil {
		s.app.fail("save timer", err)
	}
}

func (s *spiritualScreen) onSessionComplete() {
	draft := models.MinutesDraft(models.Today(), models.CategorySpiritual, "timer_session",
		s.app.cfg.Timers.SpiritualMinutes, time.Now().UnixMilli())
	if _, err := s.app.store.InsertLog(context.Background(), draft); err != nil {
		s.app.fail("save session", err)
		return
	}
	s.app.flash("Tempo espiritual concluído. O espírito foi alimentado.")
}

func (s *spiritualScreen) onSessionPartial(elapsedSeconds int) {
	mins := ceilMinutes(elapsedSeconds)
	draft := models.MinutesDraft(models.Today(), models.CategorySpiritual, "timer_session_partial",
		mins, time.Now().UnixMilli())
	if _, err := s.app.store.InsertLog(context.Background(), draft); err != nil {
		s.app.fail("save session", err)
		return
	}
	s.app.flash(fmt.Sprintf("Sessão salva: %d minutos.", mins))
}

func (s *spiritualScreen) update(msg tea.KeyMsg) {
	items := s.app.cfg.Checklist
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(items)-1 {
			s.cursor++
		}
	case " ", "enter":
		s.toggle(items[s.cursor].ID)
	case "s":
		if s.countdown.IsRunning() {
			if err := s.countdown.Pause(); err != nil {
				s.app.fail("save timer", err)
			}
		} else {
			if err := s.countdown.Start(); err != nil {
				s.app.fail("save timer", err)
			}
		}
	case "f":
		if err := s.countdown.ManualFinish(); err != nil {
			s.app.fail("save timer", err)
		}
	case "r":
		if err := s.countdown.Reset(); err != nil {
			s.app.fail("save timer", err)
		}
	}
}

// toggle flips a checklist item, keeping at most one row per
// (date, category, subtype).
func (s *spiritualScreen) toggle(id string) {
	ctx := context.Background()
	date := models.Today()
	if s.checked[id] {
		if err := s.app.store.Untoggle(ctx, date, models.CategorySpiritual, id); err != nil {
			s.app.fail("uncheck item", err)
			return
		}
		delete(s.checked, id)
		return
	}
	draft := models.CompletedDraft(date, models.CategorySpiritual, id, time.Now().UnixMilli())
	if _, err := s.app.store.Toggle(ctx, draft); err != nil {
		s.app.fail("check item", err)
		return
	}
	s.checked[id] = true
}

func (s *spiritualScreen) view() string {
	width := s.app.width - 4
	if width < 40 {
		width = 40
	}

	timerBox := boxStyle.Width(width).Render(renderTimer(
		"ALIMENTO ESPIRITUAL", s.countdown, "s start/pause • f concluir • r reset"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("CHECKLIST DIÁRIO") + "\n\n")
	for i, item := range s.app.cfg.Checklist {
		mark := pendingStyle.Render("○")
		label := item.Label
		if s.checked[item.ID] {
			mark = doneStyle.Render("●")
			label = pendingStyle.Render(label)
		}
		prefix := "  "
		if i == s.cursor {
			prefix = accentStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, label))
	}
	b.WriteString("\n" + pendingStyle.Render("↑/↓ move • space toggle"))
	checklistBox := boxStyle.Width(width).Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, timerBox, checklistBox)
}

// renderTimer renders a countdown with its state line and key hints.
// An empty label drops the title line so the caller can embed the
// timer inside its own box.
func renderTimer(label string, c *timer.Countdown, hints string) string {
	var state string
	switch c.State() {
	case timer.StateRunning:
		state = doneStyle.Render("RUNNING")
	case timer.StatePaused:
		state = warnStyle.Render("PAUSED")
	case timer.StateFinished:
		state = accentStyle.Render("FINISHED")
	default:
		state = pendingStyle.Render("IDLE " + strconv.Itoa(c.Total()/60) + "m")
	}
	body := fmt.Sprintf("%s  %s\n\n%s",
		accentStyle.Render(formatClock(c.Remaining())),
		state,
		pendingStyle.Render(hints))
	if label == "" {
		return body
	}
	return titleStyle.Render(label) + "\n\n" + body
}
