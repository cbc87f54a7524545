package statsui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/stats"
)

const (
	fieldSince = iota
	fieldLast
	fieldMode
	fieldWindow
	fieldCount
)

const dateLayout = "2006-01-02"

var fieldPrompts = [fieldCount]string{
	fieldSince:  "Since (YYYY-MM-DD): ",
	fieldLast:   "Last N sessions: ",
	fieldMode:   "Mode (full-mode/fold-no-fold): ",
	fieldWindow: "Curve window: ",
}

// settingsForm edits the report filter in place of the body.
type settingsForm struct {
	active bool
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newSettingsForm() settingsForm {
	var f settingsForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = fieldPrompts[i]
		in.Cursor.SetMode(cursor.CursorBlink)
		f.inputs[i] = in
	}
	return f
}

// open fills the inputs from flt and focuses the first one.
func (f *settingsForm) open(flt stats.Filter) tea.Cmd {
	f.active = true
	f.err = ""
	since := ""
	if flt.Since != nil {
		since = flt.Since.Format(dateLayout)
	}
	f.inputs[fieldSince].SetValue(since)
	f.inputs[fieldLast].SetValue(positiveOrEmpty(flt.Last))
	f.inputs[fieldMode].SetValue(string(flt.GameType))
	f.inputs[fieldWindow].SetValue(positiveOrEmpty(flt.CurveWindow))
	return f.focusOn(fieldSince)
}

func (f *settingsForm) close() {
	f.active = false
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *settingsForm) focusOn(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

// update handles one key. submit is true when the user pressed enter.
func (f *settingsForm) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		f.close()
		return false, nil
	case tea.KeyEnter:
		return true, nil
	case tea.KeyTab, tea.KeyDown:
		return false, f.focusOn(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return false, f.focusOn(f.focus - 1)
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

// apply parses the inputs over base. base is returned unchanged on error.
func (f *settingsForm) apply(base stats.Filter) (stats.Filter, error) {
	out := base
	out.Since = nil
	if v := f.value(fieldSince); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return base, errors.New("invalid since date (expected YYYY-MM-DD)")
		}
		out.Since = &t
	}

	out.Last = 0
	if v := f.value(fieldLast); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return base, errors.New("invalid last value (use 0 or a positive number)")
		}
		out.Last = n
	}

	out.GameType = ""
	if v := f.value(fieldMode); v != "" {
		g, err := model.ParseGameType(v)
		if err != nil {
			return base, err
		}
		out.GameType = g
	}

	out.CurveWindow = 0
	if v := f.value(fieldWindow); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return base, fmt.Errorf("invalid curve window %q (use a number >= 1)", v)
		}
		out.CurveWindow = n
	}
	return out, nil
}

func (f *settingsForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *settingsForm) resize(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-lipgloss.Width(f.inputs[i].Prompt)-2)
	}
}

func (f *settingsForm) view() string {
	lines := make([]string, 0, fieldCount+2)
	lines = append(lines, cardValueStyle.Render("Settings"))
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

func positiveOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
