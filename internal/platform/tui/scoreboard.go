package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/storage"
)

const maxRuns = 100 // Max runs to load

// RunHistory is where the scoreboard reads finished runs from.
type RunHistory interface {
	TopRuns(limit int) ([]storage.RunEntry, error)
}

// ScoreboardKeyMap lists the keys the run history reacts to.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
	}
}

// DefaultScoreboardKeyMap uses arrows or vi keys to scroll.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "better"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "worse"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	history  RunHistory
	scoring  config.ScoringConfig
	tickRate int
	runs     []storage.RunEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel loads the history once and sizes the table to the terminal.
// Scores are shown the way the game displays them; tickRate converts ticks to seconds.
func NewScoreboardModel(history RunHistory, scoring config.ScoringConfig, tickRate, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		history:  history,
		scoring:  scoring,
		tickRate: max(tickRate, 1),
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable rebuilds the table for the current size and runs.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the date column
	if extra := m.width - 4 - 44; extra > 0 {
		columns[3].Width += min(extra, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("242")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the history.
func (m *ScoreboardModel) loadRuns() {
	m.runs, m.loadErr = nil, nil
	if m.history != nil {
		m.runs, m.loadErr = m.history.TopRuns(maxRuns)
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// rows formats the loaded runs.
func (m ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			m.score(r.Score),
			m.duration(r.Ticks).String(),
			date,
		}
	}
	return rows
}

func (m ScoreboardModel) score(raw int) string {
	return fmt.Sprintf("%0*d", m.scoring.DisplayDigits, raw/max(m.scoring.DisplayDivisor, 1))
}

func (m ScoreboardModel) duration(ticks int) time.Duration {
	return (time.Duration(ticks) * time.Second / time.Duration(m.tickRate)).Round(100 * time.Millisecond)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Summary describes the loaded runs in one line.
func (m ScoreboardModel) Summary() string {
	if len(m.runs) == 0 {
		return ""
	}
	var ticks, total int
	for _, r := range m.runs {
		ticks += r.Ticks
		total += r.Score
	}
	return fmt.Sprintf("%d runs  best %s  avg %s  played %s",
		len(m.runs),
		m.score(m.runs[0].Score),
		m.score(total/len(m.runs)),
		m.duration(ticks),
	)
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("T-REX RUNS", m.width)))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if s := m.Summary(); s != "" {
		b.WriteString(centerText(dimStyle.Render(s), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("242")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Cannot load runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// centerText pads text on the left to centre it in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(history RunHistory, scoring config.ScoringConfig, tickRate, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(history, scoring, tickRate, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
