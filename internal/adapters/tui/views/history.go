package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wordbrowse/internal/adapters/tui/styles"
	"wordbrowse/internal/domain"
)

const historyPageSize = 10

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Close    key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "H"),
		key.WithHelp("esc/q", "back"),
	),
}

// HistoryModel lists previously shown words, newest first
type HistoryModel struct {
	ViewState
	entries   []domain.WordRecord
	paginator *Paginator
}

// NewHistoryModel creates a new history view model
func NewHistoryModel() *HistoryModel {
	return &HistoryModel{paginator: NewPaginator(historyPageSize)}
}

// SetEntries replaces the listed words. history is oldest first.
func (m *HistoryModel) SetEntries(history []domain.WordRecord) {
	m.entries = make([]domain.WordRecord, len(history))
	for i, w := range history {
		m.entries[len(history)-1-i] = w
	}
	m.paginator.Reset()
	m.paginator.SetTotal(len(m.entries))
}

// Selected returns the word under the cursor
func (m *HistoryModel) Selected() (domain.WordRecord, bool) {
	c := m.paginator.Cursor()
	if c < 0 || c >= len(m.entries) {
		return domain.WordRecord{}, false
	}
	return m.entries[c], true
}

// SetSize updates the view dimensions and fits the page to the height
func (m *HistoryModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Title, page indicator and help take 8 rows
	if height > 0 {
		m.paginator.SetPageSize(max(height-8, 3))
	}
}

// Init initializes the history view
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, HistoryKeys.Close):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		case key.Matches(msg, HistoryKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, HistoryKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, HistoryKeys.PrevPage):
			m.paginator.PrevPage()
		case key.Matches(msg, HistoryKeys.NextPage):
			m.paginator.NextPage()
		}
	}

	return m, nil
}

// View renders the history list
func (m *HistoryModel) View() string {
	v := NewViewBuilder().Title("History", fmt.Sprintf("%d words", len(m.entries)))

	if len(m.entries) == 0 {
		v.Muted("Nothing viewed yet.")
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderEntry(i))
		}
		if m.paginator.TotalPages() > 1 {
			v.BlankLine()
			v.Muted(fmt.Sprintf("Page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
		}
	}

	v.Help(HistoryKeys.Up, HistoryKeys.Down, HistoryKeys.PrevPage, HistoryKeys.NextPage, HistoryKeys.Close)
	return v.String()
}

func (m *HistoryModel) renderEntry(i int) string {
	w := m.entries[i]
	label := fmt.Sprintf("%-4s %s", w.Word, w.Pinyin)
	if i == m.paginator.Cursor() {
		return styles.ListSelected.Render("> " + label)
	}
	line := styles.ListItem.Render("  " + label)
	if gist := firstLine(w.Explanation); gist != "" {
		line += "  " + styles.MutedText.Render(gist)
	}
	return line
}

// firstLine returns the first non-empty line, shortened to 40 runes
func firstLine(s string) string {
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 40 {
			return string(r[:40]) + "…"
		}
		return line
	}
	return ""
}
