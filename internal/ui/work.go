package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/ritualcli/internal/models"
	"github.com/rezmoss/ritualcli/internal/storage"
	"github.com/rezmoss/ritualcli/internal/timer"
)

// workBlockTimerID keys the persisted deep-work countdown so an
// interrupted block resumes after a restart.
const workBlockTimerID = "work-block-timer"

// demand is one transient client-demand checklist row, persisted as
// JSON in the day's demands slot.
type demand struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type workMode int

const (
	workModeNormal workMode = iota
	workModeBlockInput
	workModeDemandInput
)

// workScreen runs named deep-work blocks and the demand list.
type workScreen struct {
	app *App

	mode        workMode
	blockInput  textField
	demandInput textField

	block     string // active block name, empty when none
	countdown *timer.Countdown

	demands []demand
	cursor  int
}

func newWorkScreen(app *App) *workScreen {
	return &workScreen{app: app}
}

func (w *workScreen) editing() bool { return w.mode != workModeNormal }

func (w *workScreen) refresh() {
	ctx := context.Background()
	date := models.Today()

	raw, err := w.app.store.GetSlot(ctx, storage.DemandsPrefix+date)
	if err != nil {
		w.app.fail("load demands", err)
	} else if raw != "" {
		var demands []demand
		if err := json.Unmarshal([]byte(raw), &demands); err == nil {
			w.demands = demands
		} else {
			// Malformed slot degrades to an empty list.
			w.app.logger.Warn().Err(err).Msg("discarding malformed demands slot")
			w.demands = nil
		}
	}

	block, err := w.app.store.GetSlot(ctx, storage.WorkBlockKey)
	if err != nil {
		w.app.fail("load work block", err)
		return
	}
	if block != "" && w.block == "" {
		// A block survived a restart; the countdown restores itself
		// from its snapshot (assume the default duration). A countdown
		// that ran out while the app was closed completes during
		// construction, which logs the block and clears w.block again.
		w.block = block
		c := w.newBlockCountdown(w.app.cfg.Timers.WorkBlockMinutes)
		if w.block != "" {
			w.countdown = c
		}
	}
}

func (w *workScreen) newBlockCountdown(minutes int) *timer.Countdown {
	return timer.New(timer.Options{
		TotalSeconds:      minutes * 60,
		AllowManualFinish: true,
		PersistenceID:     workBlockTimerID,
		Snapshots:         w.app.store,
		// Completion can fire inside timer.New, before w.countdown is
		// assigned, so it must not read the countdown.
		OnComplete:     func() { w.finishBlock(minutes) },
		OnManualFinish: w.onBlockFinish,
	})
}

func (w *workScreen) timerRunning() bool {
	return w.countdown != nil && w.countdown.IsRunning()
}

func (w *workScreen) tick() {
	if w.countdown == nil {
		return
	}
	if err := w.countdown.Tick(); err != nil {
		w.app.fail("save timer", err)
	}
}

func (w *workScreen) onBlockFinish(elapsedSeconds int) {
	w.finishBlock(ceilMinutes(elapsedSeconds))
}

// finishBlock logs the completed block twice: the block name under
// deep_work and the minutes under work_duration, so stats can sum
// time while the breakdown still shows what was worked on.
func (w *workScreen) finishBlock(minutes int) {
	ctx := context.Background()
	date := models.Today()
	name := w.block

	if _, err := w.app.store.InsertLog(ctx,
		models.TextDraft(date, models.CategoryWork, "deep_work", name, time.Now().UnixMilli())); err != nil {
		w.app.fail("save work block", err)
		return
	}
	if _, err := w.app.store.InsertLog(ctx,
		models.MinutesDraft(date, models.CategoryWork, "work_duration", minutes, time.Now().UnixMilli())); err != nil {
		w.app.fail("save work duration", err)
		return
	}
	if err := w.app.store.DeleteSlot(ctx, storage.WorkBlockKey); err != nil {
		w.app.fail("clear work block", err)
	}
	w.block = ""
	w.countdown = nil
	w.app.flash(fmt.Sprintf("Bloco %q salvo (%d min).", name, minutes))
}

func (w *workScreen) cancelBlock() {
	if w.countdown != nil {
		if err := w.countdown.Reset(); err != nil {
			w.app.fail("clear timer", err)
		}
	}
	if err := w.app.store.DeleteSlot(context.Background(), storage.WorkBlockKey); err != nil {
		w.app.fail("clear work block", err)
	}
	w.block = ""
	w.countdown = nil
}

func (w *workScreen) startBlock(minutes int) {
	name := strings.TrimSpace(w.blockInput.String())
	if name == "" {
		return
	}
	if err := w.app.store.SetSlot(context.Background(), storage.WorkBlockKey, name); err != nil {
		w.app.fail("save work block", err)
		return
	}
	w.block = name
	w.blockInput.reset()
	w.mode = workModeNormal
	w.countdown = w.newBlockCountdown(minutes)
	if err := w.countdown.Start(); err != nil {
		w.app.fail("save timer", err)
	}
}

func (w *workScreen) update(msg tea.KeyMsg) {
	switch w.mode {
	case workModeBlockInput:
		switch msg.Type {
		case tea.KeyEnter:
			w.startBlock(w.app.cfg.Timers.WorkBlockMinutes)
		case tea.KeyTab:
			w.startBlock(w.app.cfg.Timers.FreeBlockMinutes)
		case tea.KeyEsc:
			w.blockInput.reset()
			w.mode = workModeNormal
		default:
			w.blockInput.handle(msg)
		}
		return

	case workModeDemandInput:
		switch msg.Type {
		case tea.KeyEnter:
			w.addDemand()
		case tea.KeyEsc:
			w.demandInput.reset()
			w.mode = workModeNormal
		default:
			w.demandInput.handle(msg)
		}
		return
	}

	switch msg.String() {
	case "b":
		if w.block == "" {
			w.mode = workModeBlockInput
		}
	case "c":
		if w.block != "" {
			w.cancelBlock()
		}
	case "s":
		if w.countdown == nil {
			return
		}
		if w.countdown.IsRunning() {
			if err := w.countdown.Pause(); err != nil {
				w.app.fail("save timer", err)
			}
		} else {
			if err := w.countdown.Start(); err != nil {
				w.app.fail("save timer", err)
			}
		}
	case "f":
		if w.countdown != nil {
			if err := w.countdown.ManualFinish(); err != nil {
				w.app.fail("save timer", err)
			}
		}
	case "a":
		w.mode = workModeDemandInput
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
		}
	case "down", "j":
		if w.cursor < len(w.demands)-1 {
			w.cursor++
		}
	case " ", "enter":
		if w.cursor < len(w.demands) {
			w.demands[w.cursor].Done = !w.demands[w.cursor].Done
			w.saveDemands()
		}
	case "x":
		if w.cursor < len(w.demands) {
			w.demands = append(w.demands[:w.cursor], w.demands[w.cursor+1:]...)
			if w.cursor >= len(w.demands) && w.cursor > 0 {
				w.cursor--
			}
			w.saveDemands()
		}
	}
}

func (w *workScreen) addDemand() {
	text := strings.TrimSpace(w.demandInput.String())
	if text == "" {
		return
	}
	w.demands = append(w.demands, demand{ID: time.Now().UnixMilli(), Text: text})
	w.demandInput.reset()
	w.mode = workModeNormal
	w.saveDemands()
}

func (w *workScreen) saveDemands() {
	data, err := json.Marshal(w.demands)
	if err != nil {
		w.app.fail("save demands", err)
		return
	}
	if err := w.app.store.SetSlot(context.Background(), storage.DemandsPrefix+models.Today(), string(data)); err != nil {
		w.app.fail("save demands", err)
	}
}

func (w *workScreen) view() string {
	width := w.app.width - 4
	if width < 40 {
		width = 40
	}

	var blockBody string
	switch {
	case w.mode == workModeBlockInput:
		blockBody = fmt.Sprintf("Qual o objetivo agora?\n\n%s\n\n%s",
			inputStyle.Render(w.blockInput.String()+"▌"),
			pendingStyle.Render(fmt.Sprintf("enter %dm • tab livre %dm • esc cancel",
				w.app.cfg.Timers.WorkBlockMinutes, w.app.cfg.Timers.FreeBlockMinutes)))
	case w.block == "":
		blockBody = pendingStyle.Render("'b' para iniciar um bloco de foco")
	default:
		blockBody = fmt.Sprintf("Focando em: %s\n\n%s",
			accentStyle.Render(w.block),
			renderTimer("", w.countdown, "s start/pause • f concluir • c cancelar"))
	}
	blockBox := boxStyle.Width(width).Render(
		titleStyle.Render("BLOCO DE FOCO") + "\n\n" + blockBody)

	var b strings.Builder
	b.WriteString(titleStyle.Render("DEMANDAS DE CLIENTES") + "\n\n")
	if w.mode == workModeDemandInput {
		b.WriteString(inputStyle.Render(w.demandInput.String()+"▌") + "\n\n")
	}
	if len(w.demands) == 0 {
		b.WriteString(pendingStyle.Render("Nenhuma demanda pendente.") + "\n")
	}
	for i, d := range w.demands {
		mark := pendingStyle.Render("○")
		text := d.Text
		if d.Done {
			mark = doneStyle.Render("●")
			text = pendingStyle.Render(text)
		}
		prefix := "  "
		if i == w.cursor && w.mode == workModeNormal {
			prefix = accentStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, text))
	}
	b.WriteString("\n" + pendingStyle.Render("a add • space toggle • x delete"))
	demandsBox := boxStyle.Width(width).Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, blockBox, demandsBox)
}
