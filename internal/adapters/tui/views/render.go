package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"wordbrowse/internal/adapters/tui/styles"
	"wordbrowse/internal/domain"
)

// modeLabels pairs each mode with its on-screen label
var modeLabels = map[domain.Mode]string{
	domain.ModeRandom:     "随机 random",
	domain.ModeSequential: "顺序 sequential",
	domain.ModeSearch:     "查找 search",
}

// RenderKeyHelp formats a key binding as help text (key + description).
// Disabled bindings are struck through.
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	if !b.Enabled() {
		return styles.HelpDisabled.Render(help.Key + " " + help.Desc)
	}
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderModes renders the mode selector with the active mode highlighted
func RenderModes(active domain.Mode) string {
	var parts []string
	for _, m := range domain.Modes {
		style := styles.ModeInactive
		if m == active {
			style = styles.ModeActive
		}
		parts = append(parts, style.Render(modeLabels[m]))
	}
	return strings.Join(parts, " ")
}

// RenderWordCard renders word, pinyin and explanation inside a card.
// width is the total card width; 0 leaves it unconstrained.
func RenderWordCard(w domain.WordRecord, width int) string {
	var b strings.Builder
	b.WriteString(styles.Word.Render(w.Word))
	b.WriteString("  ")
	b.WriteString(styles.Pinyin.Render(w.Pinyin))
	b.WriteString("\n\n")
	b.WriteString(styles.SectionLabel.Render("释义"))
	b.WriteString("\n")

	explanation := strings.TrimSpace(w.Explanation)
	if explanation == "" {
		explanation = styles.MutedText.Render("(no explanation)")
	}

	card := styles.Card
	text := styles.Explanation
	if width > 0 {
		// Border and padding take 6 columns
		inner := max(width-6, 10)
		card = card.Width(inner + 4)
		text = text.Width(inner)
	}
	b.WriteString(text.Render(explanation))

	return card.Render(b.String())
}

// RenderProgress renders a loading line: spinner, label, bar and percent
func RenderProgress(spin, bar string, percent int) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Spinner.Render(spin),
		" Loading words ",
		bar,
		styles.Percent.Render(fmt.Sprintf("%d%%", percent)),
	)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title and optional subtitle
func (v *ViewBuilder) Title(title, subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	if subtitle != "" {
		v.b.WriteString("  ")
		v.b.WriteString(styles.Subtitle.Render(subtitle))
	}
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
