package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wordbrowse/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("wordbrowse Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.SectionLabel.Render("Browsing"))
	b.WriteString("\n")
	b.WriteString(helpLine("n / l / → / space", "Next random word"))
	b.WriteString(helpLine("p / h / ←", "Previous word (back through history)"))
	b.WriteString(helpLine("H", "Show history"))
	b.WriteString(helpLine("c", "Copy the word to the clipboard"))
	b.WriteString(helpLine("o", "Look the word up online"))
	b.WriteString("\n")

	b.WriteString(styles.SectionLabel.Render("Modes"))
	b.WriteString("\n")
	b.WriteString(helpLine("r", "随机 random"))
	b.WriteString(helpLine("s", "顺序 sequential"))
	b.WriteString(helpLine("/", "查找 search"))
	b.WriteString(styles.MutedText.Render("  Sequential and search currently browse like random."))
	b.WriteString("\n\n")

	b.WriteString(styles.SectionLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.SectionLabel.Render("Data"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Words are downloaded once and kept in a local cache."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Run `wordbrowse-cli fetch` to refresh them."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
