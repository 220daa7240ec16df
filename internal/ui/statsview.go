package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/ritualcli/internal/models"
)

// statsScreen shows today's score, the trailing trend window and the
// day's log breakdown.
type statsScreen struct {
	app *App
}

func newStatsScreen(app *App) *statsScreen {
	return &statsScreen{app: app}
}

func (s *statsScreen) view() string {
	width := s.app.width - 4
	if width < 40 {
		width = 40
	}
	ctx := context.Background()

	today, err := s.app.stats.Today(ctx)
	if err != nil {
		return boxStyle.Width(width).Render(warnStyle.Render(fmt.Sprintf("could not load stats: %v", err)))
	}
	window, err := s.app.stats.TrailingWindow(ctx, s.app.cfg.WindowDays)
	if err != nil {
		return boxStyle.Width(width).Render(warnStyle.Render(fmt.Sprintf("could not load stats: %v", err)))
	}

	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	scoreBox := boxStyle.Width(width).Render(fmt.Sprintf(
		"%s\n\n%s %s\n%s",
		titleStyle.Render("PONTOS HOJE"),
		accentStyle.Render(fmt.Sprintf("%3d", today.Score)),
		createProgressBar(today.Score, barWidth),
		pendingStyle.Render("Resultados vêm da frequência."),
	))

	var trend strings.Builder
	trend.WriteString(titleStyle.Render("ÚLTIMOS DIAS") + "\n\n")
	for _, day := range window {
		marker := "  "
		if day.FullDate == today.Date {
			marker = accentStyle.Render("> ")
		}
		trend.WriteString(fmt.Sprintf("%s%s %2d  %s %3d\n",
			marker, day.Label, day.Day, createProgressBar(day.Score, barWidth), day.Score))
	}
	trendBox := boxStyle.Width(width).Render(trend.String())

	var breakdown strings.Builder
	breakdown.WriteString(titleStyle.Render("REGISTRO DO DIA") + "\n\n")
	if len(today.Logs) == 0 {
		breakdown.WriteString(pendingStyle.Render("O livro da vida está em branco hoje.\nComece seu ritual.") + "\n")
	}
	for _, l := range today.Logs {
		breakdown.WriteString(fmt.Sprintf("%s %s\n",
			accentStyle.Render("•"), describeLog(l)))
	}
	breakdownBox := boxStyle.Width(width).Render(breakdown.String())

	return lipgloss.JoinVertical(lipgloss.Left, scoreBox, trendBox, breakdownBox)
}

// describeLog renders one entry for the breakdown list, switching on
// the value kind instead of sniffing the payload.
func describeLog(l models.LogEntry) string {
	name := categoryName(l.Category)
	switch l.ValueKind {
	case models.ValueDurationMinutes:
		if mins, err := strconv.Atoi(l.Value); err == nil {
			return fmt.Sprintf("%s — %s (%s)", name, humanDuration(mins), subtypeLabel(l.Subtype))
		}
		return fmt.Sprintf("%s — %s min (%s)", name, l.Value, subtypeLabel(l.Subtype))
	case models.ValueCount:
		return fmt.Sprintf("%s — %s × %s", name, l.Value, subtypeLabel(l.Subtype))
	case models.ValueSentinel:
		return fmt.Sprintf("%s — %s", name, subtypeLabel(l.Subtype))
	default:
		if l.Category == models.CategoryJournal {
			return fmt.Sprintf("%s — revisão entregue", name)
		}
		if l.Subtype != "" {
			return fmt.Sprintf("%s — %s (%s)", name, l.Value, subtypeLabel(l.Subtype))
		}
		return fmt.Sprintf("%s — %s", name, l.Value)
	}
}

func categoryName(cat models.Category) string {
	switch cat {
	case models.CategorySpiritual:
		return "Espírito"
	case models.CategoryPhysical:
		return "Corpo"
	case models.CategoryWork:
		return "Reino"
	case models.CategoryJournal:
		return "Noite"
	}
	return string(cat)
}

func subtypeLabel(subtype string) string {
	return strings.ReplaceAll(subtype, "_", " ")
}
