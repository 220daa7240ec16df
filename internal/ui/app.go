// Package ui is the Bubble Tea presentation layer. Every screen talks
// to the core only through the store, the stats service, the quote
// selector and the countdown state machine.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rezmoss/ritualcli/internal/config"
	"github.com/rezmoss/ritualcli/internal/quote"
	"github.com/rezmoss/ritualcli/internal/stats"
	"github.com/rezmoss/ritualcli/internal/storage"
)

type screen int

const (
	screenDashboard screen = iota
	screenSpiritual
	screenPhysical
	screenWork
	screenNight
	screenStats
)

var screenNames = []string{"Dashboard", "Espírito", "Corpo", "Reino", "Noite", "Consistência"}

type tickMsg time.Time

// tickCmd schedules the shared one-second timer tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// App is the root model.
type App struct {
	store  storage.Store
	stats  *stats.Service
	quotes *quote.Selector
	cfg    *config.Config
	logger zerolog.Logger

	screen screen
	width  int
	height int
	notice string

	// ticking tracks whether a tick is already scheduled, so pausing
	// every timer stops the loop and a fresh start reschedules exactly
	// one pending tick.
	ticking bool

	dashboard *dashboardScreen
	spiritual *spiritualScreen
	physical  *physicalScreen
	work      *workScreen
	night     *nightScreen
	statsView *statsScreen
}

// NewApp wires the screens against the core services.
func NewApp(store storage.Store, statsSvc *stats.Service, quotes *quote.Selector, cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{store: store, stats: statsSvc, quotes: quotes, cfg: cfg, logger: logger}
	a.dashboard = newDashboardScreen(a)
	a.spiritual = newSpiritualScreen(a)
	a.physical = newPhysicalScreen(a)
	a.work = newWorkScreen(a)
	a.night = newNightScreen(a)
	a.statsView = newStatsScreen(a)
	return a
}

func (a *App) Init() tea.Cmd {
	a.dashboard.refresh()
	a.spiritual.refresh()
	a.physical.refresh()
	a.work.refresh()
	if a.anyTimerRunning() {
		a.ticking = true
		return tickCmd()
	}
	return nil
}

// fail records a storage failure as a visible notice. The attempted
// action is lost but prior state is untouched.
func (a *App) fail(action string, err error) {
	a.logger.Error().Err(err).Str("action", action).Msg("storage operation failed")
	a.notice = warnStyle.Render(fmt.Sprintf("could not %s: %v", action, err))
}

func (a *App) flash(text string) {
	a.notice = doneStyle.Render(text)
}

func (a *App) anyTimerRunning() bool {
	return a.spiritual.timerRunning() || a.physical.timerRunning() || a.work.timerRunning()
}

// ensureTicking schedules the next tick when a timer just started and
// no tick is pending.
func (a *App) ensureTicking() tea.Cmd {
	if a.ticking || !a.anyTimerRunning() {
		return nil
	}
	a.ticking = true
	return tickCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.ticking = false
		a.spiritual.tick()
		a.physical.tick()
		a.work.tick()
		return a, a.ensureTicking()

	case tea.KeyMsg:
		a.notice = ""
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// Screens with a focused text field see the key first.
		if a.currentEditing() {
			cmd := a.updateScreen(msg)
			return a, cmd
		}
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1":
			a.switchTo(screenDashboard)
			return a, nil
		case "2":
			a.switchTo(screenSpiritual)
			return a, nil
		case "3":
			a.switchTo(screenPhysical)
			return a, nil
		case "4":
			a.switchTo(screenWork)
			return a, nil
		case "5":
			a.switchTo(screenNight)
			return a, nil
		case "6":
			a.switchTo(screenStats)
			return a, nil
		case "tab":
			a.switchTo((a.screen + 1) % 6)
			return a, nil
		}
		return a, a.updateScreen(msg)
	}
	return a, nil
}

func (a *App) switchTo(s screen) {
	a.screen = s
	switch s {
	case screenDashboard:
		a.dashboard.refresh()
	case screenSpiritual:
		a.spiritual.refresh()
	case screenPhysical:
		a.physical.refresh()
	case screenWork:
		a.work.refresh()
	}
}

func (a *App) currentEditing() bool {
	switch a.screen {
	case screenDashboard:
		return a.dashboard.editing
	case screenWork:
		return a.work.editing()
	case screenNight:
		return a.night.editing
	}
	return false
}

func (a *App) updateScreen(msg tea.KeyMsg) tea.Cmd {
	switch a.screen {
	case screenDashboard:
		a.dashboard.update(msg)
	case screenSpiritual:
		a.spiritual.update(msg)
		return a.ensureTicking()
	case screenPhysical:
		a.physical.update(msg)
		return a.ensureTicking()
	case screenWork:
		a.work.update(msg)
		return a.ensureTicking()
	case screenNight:
		a.night.update(msg)
	}
	return nil
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	header := headerStyle.Width(a.width).Render(
		fmt.Sprintf("👑 Ritual do REI - %s", time.Now().Format("Jan 2, 2006 15:04")),
	)

	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if screen(i) == a.screen {
			tabs[i] = titleStyle.Render(label)
		} else {
			tabs[i] = pendingStyle.Render(label)
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpace(tabs)...)

	var body string
	switch a.screen {
	case screenDashboard:
		body = a.dashboard.view()
	case screenSpiritual:
		body = a.spiritual.view()
	case screenPhysical:
		body = a.physical.view()
	case screenWork:
		body = a.work.view()
	case screenNight:
		body = a.night.view()
	case screenStats:
		body = a.statsView.view()
	}

	footerText := "1-6 switch screen • tab next • q quit"
	if a.notice != "" {
		footerText = a.notice
	}
	footer := footerStyle.Width(a.width).Render(footerText)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, "", body, footer)
}

func joinWithSpace(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
