// Package tui provides an interactive terminal search view. It is a
// thin front end over the query service: typing re-runs the search on
// enter, arrow keys move the selection, esc quits.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driving"
)

// visibleResults bounds the rendered result rows.
const visibleResults = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// searchDoneMsg carries the outcome of one search command.
type searchDoneMsg struct {
	query   string
	results []domain.ScoredResult
	err     error
}

// Model is the bubbletea model for the search view.
type Model struct {
	query driving.QueryService
	now   func() time.Time

	input    textinput.Model
	results  []domain.ScoredResult
	selected int
	status   string
	err      error
}

// NewModel creates a search view over the given query service.
func NewModel(query driving.QueryService) Model {
	in := textinput.New()
	in.Placeholder = "Search the site..."
	in.Prompt = "/ "
	in.CharLimit = 200
	in.Focus()

	return Model{
		query:  query,
		now:    time.Now,
		input:  in,
		status: "Type a query and press enter.",
	}
}

// Init starts the text input blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			return m, m.search(m.input.Value())

		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case tea.KeyDown:
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		}

	case searchDoneMsg:
		m.err = msg.err
		m.selected = 0
		if msg.err != nil {
			m.results = nil
			m.status = ""
			return m, nil
		}
		m.results = msg.results
		if len(msg.results) == 0 {
			m.status = fmt.Sprintf("No results for %q.", msg.query)
		} else {
			m.status = fmt.Sprintf("%d results for %q.", len(msg.results), msg.query)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search returns a command running the query off the update loop.
func (m Model) search(query string) tea.Cmd {
	opts := domain.DefaultQueryOptions()
	opts.Now = m.now()

	return func() tea.Msg {
		results, err := m.query.Search(context.Background(), query, opts)
		if errors.Is(err, domain.ErrNoQuery) {
			return searchDoneMsg{query: query}
		}
		return searchDoneMsg{query: query, results: results, err: err}
	}
}

// View renders the input, results, and status line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("peta-search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	shown := m.results
	if len(shown) > visibleResults {
		shown = shown[:visibleResults]
	}
	for i, res := range shown {
		line := fmt.Sprintf("%s  %s", res.Document.Title, scoreStyle.Render(fmt.Sprintf("(%d)", res.Score)))
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    " + res.Document.URL))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter search · up/down select · esc quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the interactive view and blocks until the user quits.
func Run(query driving.QueryService) error {
	_, err := tea.NewProgram(NewModel(query), tea.WithAltScreen()).Run()
	return err
}
