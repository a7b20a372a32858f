// Package tui provides an interactive catalog search screen: a search
// input on top, matching entries below, navigable with the arrow keys
// or j/k.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/quarrydata/statcan-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driving"
)

// searchResultsMsg carries the outcome of a catalog search.
type searchResultsMsg struct {
	entries []domain.CatalogEntry
	err     error
}

// Model is the bubbletea model for the catalog search screen.
type Model struct {
	input    textinput.Model
	styles   *styles.Styles
	catalog  driving.CatalogService
	results  []domain.CatalogEntry
	selected int
	err      error
	searched bool
	width    int
	height   int
}

// New creates the catalog search model.
func New(catalog driving.CatalogService) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter keywords..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return Model{
		input:   ti,
		styles:  styles.DefaultStyles(),
		catalog: catalog,
		width:   80,
		height:  24,
	}
}

// Run starts the interactive screen and blocks until the user quits.
func Run(catalog driving.CatalogService) error {
	p := tea.NewProgram(New(catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and result messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchResultsMsg:
		m.results = msg.entries
		m.err = msg.err
		m.selected = 0
		m.searched = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.search()
		case tea.KeyUp:
			m.moveSelection(-1)
			return m, nil
		case tea.KeyDown:
			m.moveSelection(1)
			return m, nil
		}
		switch msg.String() {
		case "k":
			if !m.input.Focused() {
				m.moveSelection(-1)
				return m, nil
			}
		case "j":
			if !m.input.Focused() {
				m.moveSelection(1)
				return m, nil
			}
		case "tab":
			if m.input.Focused() {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search issues the catalog query for the current input.
func (m Model) search() tea.Cmd {
	keywords := strings.Fields(m.input.Value())
	catalog := m.catalog
	return func() tea.Msg {
		entries, err := catalog.Search(context.Background(), keywords)
		return searchResultsMsg{entries: entries, err: err}
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.results) {
		m.selected = len(m.results) - 1
	}
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Dataset Catalog"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputField.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	case !m.searched:
		b.WriteString(m.styles.Muted.Render("Type keywords and press Enter to search."))
	case len(m.results) == 0:
		b.WriteString(m.styles.Muted.Render("No results."))
	default:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.StatusBar.Render("enter search · tab focus · j/k navigate · esc quit"))
	return b.String()
}

func (m Model) renderResults() string {
	// Leave room for the input, title, and status bar.
	visible := m.height - 10
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(m.results) {
		end = len(m.results)
	}

	lines := make([]string, 0, end-start+1)
	lines = append(lines, m.styles.Normal.Render(fmt.Sprintf("Results (%d)", len(m.results))))
	for i := start; i < end; i++ {
		e := m.results[i]
		line := fmt.Sprintf("  %s (%s, %s)", e.Title, e.DataID, e.Language)
		line = runewidth.Truncate(line, m.width-2, "…")
		if i == m.selected {
			lines = append(lines, m.styles.Selected.Render("> "+strings.TrimPrefix(line, "  ")))
		} else {
			lines = append(lines, m.styles.Normal.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}
