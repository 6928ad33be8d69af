package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/search"
)

// debounceDelay is how long input must be idle before a lookup fires.
const debounceDelay = 300 * time.Millisecond

// debounceMsg fires after the debounce delay; stale sequence numbers are
// dropped so only the latest pending edit triggers a lookup.
type debounceMsg struct{ seq int }

// resultsMsg carries a finished lookup back into the model.
type resultsMsg struct {
	seq     int
	results []registry.Match
	from    bool
	err     error
}

// autocompleteModel is the bubbletea model for the live search prompt.
type autocompleteModel struct {
	svc   *search.Service
	limit int

	query     string
	seq       int // bumped on every edit, used to discard stale messages
	searching bool

	matches   []registry.Match
	fromCache bool
	cursor    int
	errText   string

	selected *registry.Match
}

func newAutocompleteModel(svc *search.Service, limit int) autocompleteModel {
	return autocompleteModel{svc: svc, limit: limit}
}

func (m autocompleteModel) Init() tea.Cmd {
	return nil
}

func (m autocompleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.matches) {
				sel := m.matches[m.cursor]
				m.selected = &sel
				if sel.URL != "" {
					openBrowser(sel.URL)
				}
				return m, tea.Quit
			}
			return m, nil
		case "backspace":
			if m.query != "" {
				_, size := utf8.DecodeLastRuneInString(m.query)
				m.query = m.query[:len(m.query)-size]
				return m.edited()
			}
			return m, nil
		default:
			if msg.Type == tea.KeyRunes {
				m.query += string(msg.Runes)
				return m.edited()
			}
			if msg.Type == tea.KeySpace {
				m.query += " "
				return m.edited()
			}
			return m, nil
		}

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil // superseded by a later edit
		}
		normalized := strings.TrimSpace(m.query)
		if utf8.RuneCountInString(normalized) < 2 {
			return m, nil
		}
		m.searching = true
		return m, m.lookup(m.query, msg.seq)

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.matches = nil
			return m, nil
		}
		m.errText = ""
		m.matches = msg.results
		m.fromCache = msg.from
		if m.cursor >= len(m.matches) {
			m.cursor = 0
		}
		return m, nil
	}
	return m, nil
}

// edited records an input change and schedules a debounced lookup.
func (m autocompleteModel) edited() (tea.Model, tea.Cmd) {
	m.seq++
	m.cursor = 0
	if utf8.RuneCountInString(strings.TrimSpace(m.query)) < 2 {
		m.matches = nil
		m.errText = ""
		m.searching = false
		return m, nil
	}
	seq := m.seq
	return m, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// lookup runs the query off the update loop.
func (m autocompleteModel) lookup(query string, seq int) tea.Cmd {
	svc, limit := m.svc, m.limit
	return func() tea.Msg {
		result, err := svc.Search(context.Background(), query, strconv.Itoa(limit))
		if err != nil {
			return resultsMsg{seq: seq, err: err}
		}
		return resultsMsg{seq: seq, results: result.Results, from: result.FromCache}
	}
}

func (m autocompleteModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sunbiz Lookup"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type a name  ↑/↓ navigate  ⏎ open  esc quit"))
	b.WriteString("\n\n")

	b.WriteString("  " + StyleValue.Render(m.query) + StyleTitle.Render("█"))
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(StyleDim.Render("  searching…"))
	case m.errText != "":
		b.WriteString(styleIconError.Render(iconError) + " " + m.errText)
	case len(m.matches) == 0 && utf8.RuneCountInString(strings.TrimSpace(m.query)) >= 2:
		b.WriteString(StyleDim.Render("  no matches"))
	}

	for i, match := range m.matches {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + match.Name
		if match.Status != "" {
			line += "  " + statusStyle(match.Status).Render(match.Status)
		}
		if match.DocumentNumber != "" {
			line += "  " + StyleDim.Render(match.DocumentNumber)
		}
		if i == m.cursor {
			line = StyleTitle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.matches) > 0 && m.fromCache {
		b.WriteString("\n" + StyleDim.Render("  "+iconCached))
	}
	b.WriteString("\n")
	return b.String()
}

// runInteractive starts the autocomplete prompt and reports the selection.
func (c *CLI) runInteractive(svc *search.Service, limit int) error {
	model := newAutocompleteModel(svc, limit)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive search: %w", err)
	}
	if m, ok := final.(autocompleteModel); ok && m.selected != nil {
		printSuccess("%s", m.selected.Name)
		if m.selected.URL != "" {
			printDetail("%s", m.selected.URL)
		}
	}
	return nil
}

// openBrowser opens url in the system browser, best effort.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
