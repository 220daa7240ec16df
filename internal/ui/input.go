package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// textField is a minimal single-line text input.
type textField struct {
	value []rune
}

// handle consumes printable keys and backspace, reporting whether the
// key was taken.
func (f *textField) handle(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		f.value = append(f.value, msg.Runes...)
		return true
	case tea.KeySpace:
		f.value = append(f.value, ' ')
		return true
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
		return true
	}
	return false
}

func (f *textField) String() string { return string(f.value) }

func (f *textField) set(s string) { f.value = []rune(s) }

func (f *textField) reset() { f.value = nil }
