package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezmoss/ritualcli/internal/models"
)

// nightAnswers is the honest-review payload stored as the journal
// entry's value.
type nightAnswers struct {
	Faithful  string `json:"faithful"`
	Weak      string `json:"weak"`
	Adjust    string `json:"adjust"`
	Emotional string `json:"emotional"`
}

var nightQuestions = []string{
	"Onde fui fiel?",
	"Onde fui fraco?",
	"O ajuste para amanhã",
	"Fale da dor, solidão, ou gratidão",
}

// nightScreen is the four-question nightly review form.
type nightScreen struct {
	app *App

	fields  [4]textField
	focus   int
	editing bool
}

func newNightScreen(app *App) *nightScreen {
	return &nightScreen{app: app, editing: true}
}

func (n *nightScreen) update(msg tea.KeyMsg) {
	if !n.editing {
		if msg.String() == "e" || msg.Type == tea.KeyEnter {
			n.editing = true
		}
		return
	}
	switch msg.Type {
	case tea.KeyEsc:
		// Release key focus so screen switching works again.
		n.editing = false
		return
	case tea.KeyTab, tea.KeyDown:
		n.focus = (n.focus + 1) % len(n.fields)
		return
	case tea.KeyUp:
		n.focus = (n.focus + len(n.fields) - 1) % len(n.fields)
		return
	case tea.KeyEnter:
		if n.focus < len(n.fields)-1 {
			n.focus++
			return
		}
		n.deliver()
		return
	case tea.KeyCtrlS:
		n.deliver()
		return
	}
	n.fields[n.focus].handle(msg)
}

// deliver writes the review as a single journal entry for today.
func (n *nightScreen) deliver() {
	answers := nightAnswers{
		Faithful:  n.fields[0].String(),
		Weak:      n.fields[1].String(),
		Adjust:    n.fields[2].String(),
		Emotional: n.fields[3].String(),
	}
	data, err := json.Marshal(answers)
	if err != nil {
		n.app.fail("save review", err)
		return
	}
	draft := models.TextDraft(models.Today(), models.CategoryJournal, "", string(data), time.Now().UnixMilli())
	if _, err := n.app.store.InsertLog(context.Background(), draft); err != nil {
		n.app.fail("save review", err)
		return
	}
	for i := range n.fields {
		n.fields[i].reset()
	}
	n.focus = 0
	n.editing = false
	n.app.flash("Dia entregue. Descanse, Rei.")
}

func (n *nightScreen) view() string {
	width := n.app.width - 4
	if width < 40 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ALINHAMENTO NOTURNO") + "\n\n")
	for i, q := range nightQuestions {
		label := pendingStyle.Render(strings.ToUpper(q))
		if n.editing && i == n.focus {
			label = accentStyle.Render(strings.ToUpper(q))
		}
		value := n.fields[i].String()
		if n.editing && i == n.focus {
			value += "▌"
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", label, inputStyle.Render(value)))
	}
	hints := "tab next • ctrl+s entregar o dia • esc sair"
	if !n.editing {
		hints = "'e' responder"
	}
	b.WriteString(pendingStyle.Render(hints))
	return boxStyle.Width(width).Render(b.String())
}
