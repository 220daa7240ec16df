package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/ritualcli/internal/models"
)

// dashboardScreen shows the daily decree, the consistency score and
// the contextual quote.
type dashboardScreen struct {
	app *App

	decree  string
	editing bool
	field   textField

	today models.DailyStats
	quote models.Quote
}

func newDashboardScreen(app *App) *dashboardScreen {
	return &dashboardScreen{app: app}
}

func (d *dashboardScreen) refresh() {
	ctx := context.Background()
	date := models.Today()

	decree, err := d.app.store.GetDecree(ctx, date)
	if err != nil {
		d.app.fail("load decree", err)
	} else {
		d.decree = decree
		// An unset decree opens straight into editing.
		d.editing = decree == ""
		d.field.set(decree)
	}

	today, err := d.app.stats.Today(ctx)
	if err != nil {
		d.app.fail("load stats", err)
		return
	}
	d.today = today
	d.quote = d.app.quotes.Select(time.Now().Hour(), today.Logs)
}

func (d *dashboardScreen) update(msg tea.KeyMsg) {
	if d.editing {
		switch msg.Type {
		case tea.KeyEnter:
			d.sealDecree()
			return
		case tea.KeyEsc:
			d.editing = false
			d.field.set(d.decree)
			return
		}
		d.field.handle(msg)
		return
	}
	if msg.String() == "e" {
		d.editing = true
		d.field.set(d.decree)
	}
}

func (d *dashboardScreen) sealDecree() {
	text := d.field.String()
	if err := d.app.store.SetDecree(context.Background(), models.Today(), text); err != nil {
		d.app.fail("seal decree", err)
		return
	}
	d.decree = text
	d.editing = false
	d.app.flash("Decreto selado.")
}

func (d *dashboardScreen) view() string {
	width := d.app.width - 4
	if width < 40 {
		width = 40
	}

	var decreeBody string
	if d.editing {
		decreeBody = fmt.Sprintf("%s\n\n%s",
			inputStyle.Render(d.field.String()+"▌"),
			pendingStyle.Render("enter seal • esc cancel"))
	} else if d.decree == "" {
		decreeBody = pendingStyle.Render("Toque 'e' para definir o comando do seu dia...")
	} else {
		decreeBody = fmt.Sprintf("%s\n\n%s",
			accentStyle.Render("“"+d.decree+"”"),
			pendingStyle.Render("'e' edit"))
	}
	decreeBox := boxStyle.Width(width).Render(
		titleStyle.Render("DECRETO DO DIA") + "\n\n" + decreeBody)

	barWidth := width - 16
	if barWidth < 20 {
		barWidth = 20
	}
	progressBox := boxStyle.Width(width).Render(fmt.Sprintf(
		"%s\n\n%s %s",
		titleStyle.Render("PROGRESSO REAL"),
		createProgressBar(d.today.Score, barWidth),
		accentStyle.Render(fmt.Sprintf("%d%%", d.today.Score)),
	))

	quoteBody := quoteStyle.Render("“"+d.quote.Text+"”") + "\n" +
		pendingStyle.Render("— "+d.quote.Source)
	quoteBox := boxStyle.Width(width).Render(
		titleStyle.Render("A VOZ DA SABEDORIA") + "\n\n" + quoteBody)

	return lipgloss.JoinVertical(lipgloss.Left, decreeBox, progressBox, quoteBox)
}
