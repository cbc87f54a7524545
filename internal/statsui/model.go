// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/preflop/internal/stats"
)

const (
	tabOverview = iota
	tabSessions
	tabWeak
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Sessions", "Weak Spots"}

const (
	plotHeight  = 10
	weakTop     = 8
	windowStep  = 5
	fallbackCol = 80
)

const helpLine = "←/→ tabs · ↑/↓ scroll · -/= window · / filter · q quit"

// Model implements the Bubble Tea stats UI.
type Model struct {
	src    stats.Source
	filter stats.Filter
	report stats.Report
	err    string

	tab      int
	pages    [tabCount]viewport.Model
	sessions table.Model
	form     settingsForm

	width  int
	height int
}

// NewModel loads the first report from src.
func NewModel(src stats.Source, filter stats.Filter) *Model {
	if filter.WeakTop <= 0 {
		filter.WeakTop = weakTop
	}
	m := &Model{
		src:    src,
		filter: filter,
		form:   newSettingsForm(),
		sessions: table.New(
			table.WithColumns(sessionColumns),
			table.WithStyles(sessionTableStyles()),
		),
	}
	for i := range m.pages {
		m.pages[i] = viewport.New(0, 0)
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.fillPages()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.form.active {
			return m, m.updateForm(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "left", "h":
		m.switchTab(m.tab - 1)
		return tea.ClearScreen
	case "right", "l", "tab":
		m.switchTab(m.tab + 1)
		return tea.ClearScreen
	case "=", "+":
		m.filter.CurveWindow = widerWindow(m.filter.CurveWindow)
		m.reload()
		return nil
	case "-":
		m.filter.CurveWindow = narrowerWindow(m.filter.CurveWindow)
		m.reload()
		return nil
	case "/":
		return m.form.open(m.filter)
	case "g", "home":
		if m.tab == tabSessions {
			m.sessions.GotoTop()
		} else {
			m.pages[m.tab].GotoTop()
		}
		return nil
	case "G", "end":
		if m.tab == tabSessions {
			m.sessions.GotoBottom()
		} else {
			m.pages[m.tab].GotoBottom()
		}
		return nil
	}
	var cmd tea.Cmd
	if m.tab == tabSessions {
		m.sessions, cmd = m.sessions.Update(msg)
	} else {
		m.pages[m.tab], cmd = m.pages[m.tab].Update(msg)
	}
	return cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	submit, cmd := m.form.update(msg)
	if !submit {
		return cmd
	}
	next, err := m.form.apply(m.filter)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	m.form.close()
	m.filter = next
	m.reload()
	return nil
}

func (m *Model) switchTab(i int) {
	m.tab = (i + tabCount) % tabCount
	if m.tab == tabSessions {
		m.sessions.Focus()
		return
	}
	m.sessions.Blur()
}

// reload rebuilds the report for the current filter.
func (m *Model) reload() {
	report, err := stats.BuildReport(context.Background(), m.src, m.filter)
	if err != nil {
		m.err = err.Error()
		for i := range m.pages {
			m.pages[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.err = ""
	m.report = report
	m.sessions.SetRows(sessionTableRows(report.Sessions))
	m.sessions.GotoTop()
	m.resize()
	m.fillPages()
}

func (m *Model) fillPages() {
	if m.err != "" {
		return
	}
	width := m.contentWidth()
	m.pages[tabOverview].SetContent(renderOverview(m.report, m.filter.CurveWindow, width))
	m.pages[tabWeak].SetContent(renderWeak(m.report.Weak, width))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return fallbackCol
	}
	return m.width
}

// heights splits the screen into header (tabs plus filter line), body and
// footer rows.
func (m *Model) heights() (header, body, footer int) {
	header = lipgloss.Height(renderTabs(tabNames[:], m.tab)) + 1
	footer = 1
	if m.err != "" && !m.form.active {
		footer = 2
	}
	body = max(m.height-header-footer, 1)
	return header, body, footer
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, body, _ := m.heights()
	for i := range m.pages {
		m.pages[i].Width = m.width
		m.pages[i].Height = body
	}
	m.sessions.SetWidth(m.width)
	m.sessions.SetHeight(max(body-1, 1))
	m.form.resize(m.width)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header, body, footer := m.heights()
	filterLine := dimStyle.Render(runewidth.Truncate(describeFilter(m.filter), m.width, "…"))
	return frame(renderTabs(tabNames[:], m.tab)+"\n"+filterLine, m.width, header) + "\n" +
		frame(m.body(), m.width, body) + "\n" +
		frame(m.footer(), m.width, footer)
}

func (m *Model) body() string {
	switch {
	case m.form.active:
		return m.form.view()
	case m.tab == tabSessions && len(m.report.Sessions) == 0:
		return "No sessions found."
	case m.tab == tabSessions:
		return m.sessions.View()
	}
	return m.pages[m.tab].View()
}

func (m *Model) footer() string {
	if m.form.active {
		return dimStyle.Render("tab/↓ next field · shift+tab/↑ previous · enter apply · esc cancel")
	}
	help := dimStyle.Render(helpLine)
	if m.err != "" {
		return help + "\n" + errorStyle.Render(m.err)
	}
	return help
}

// widerWindow steps to the next multiple of five.
func widerWindow(n int) int {
	if n < windowStep {
		return windowStep
	}
	return n - n%windowStep + windowStep
}

// narrowerWindow steps to the previous multiple of five, bottoming out at 1.
func narrowerWindow(n int) int {
	if n <= windowStep {
		return 1
	}
	if n%windowStep == 0 {
		return n - windowStep
	}
	return n - n%windowStep
}
