package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"wordbrowse/internal/application"
	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

// WordLoader loads the word collection for the browser
type WordLoader interface {
	Load(ctx context.Context, onProgress ports.ProgressFunc) (*application.LoadResult, error)
}

// WordOpener shows a word in an external dictionary
type WordOpener interface {
	Open(word string) error
}

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Random     key.Binding
	Sequential key.Binding
	Search     key.Binding
	Copy       key.Binding
	Lookup     key.Binding
	History    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("p", "h", "left"),
		key.WithHelp("p/←", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "l", "right", " "),
		key.WithHelp("n/→/space", "next"),
	),
	Random: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "random"),
	),
	Sequential: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sequential"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Lookup: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "look up"),
	),
	History: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "history"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the word browser view
type BrowserModel struct {
	ViewState
	loader   WordLoader
	opener   WordOpener
	nav      *domain.Navigator
	copyText func(string) error

	load       domain.LoadProgress
	progressCh chan domain.LoadProgress
	bar        progress.Model
	spinner    spinner.Model
	loadErr    error
}

// NewBrowserModel creates a new browser model. opener may be nil, which
// disables the lookup key.
func NewBrowserModel(loader WordLoader, opener WordOpener) *BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &BrowserModel{
		loader:   loader,
		opener:   opener,
		nav:      domain.NewNavigator(),
		copyText: clipboard.WriteAll,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:  s,
	}
}

type loadProgressMsg domain.LoadProgress

type wordsLoadedMsg struct {
	result *application.LoadResult
}

type loadFailedMsg struct {
	err error
}

type cacheWrittenMsg struct {
	err error
}

type copiedMsg struct {
	word string
}

type lookupOpenedMsg struct {
	word string
}

type errMsg struct {
	err error
}

// Init starts loading the words
func (m *BrowserModel) Init() tea.Cmd {
	return m.startLoad()
}

func (m *BrowserModel) startLoad() tea.Cmd {
	ch := make(chan domain.LoadProgress, 64)
	m.progressCh = ch
	m.load = domain.LoadProgress{Loading: true}
	m.loadErr = nil
	return tea.Batch(m.spinner.Tick, m.loadWords(ch), waitForProgress(ch))
}

// loadWords runs the load, forwarding progress to ch and closing it after
func (m *BrowserModel) loadWords(ch chan<- domain.LoadProgress) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		defer close(ch)
		result, err := loader.Load(context.Background(), func(p domain.LoadProgress) {
			select {
			case ch <- p:
			default: // drop updates the UI has not caught up with
			}
		})
		if err != nil {
			return loadFailedMsg{err}
		}
		return wordsLoadedMsg{result}
	}
}

func waitForProgress(ch <-chan domain.LoadProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return loadProgressMsg(p)
	}
}

func waitForCacheWrite(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return cacheWrittenMsg{err}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.load.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadProgressMsg:
		// A late update must not resurrect the bar after the load finished
		if m.load.Loading {
			m.load = domain.LoadProgress(msg)
		}
		return m, waitForProgress(m.progressCh)

	case wordsLoadedMsg:
		m.load.Loading = false
		m.nav.SetWords(msg.result.Words)
		if len(msg.result.Words) == 0 {
			m.SetMessage("The word list is empty", true)
			return m, nil
		}
		m.SetMessage(fmt.Sprintf("Loaded %d words from %s", len(msg.result.Words), msg.result.Origin), false)
		return m, waitForCacheWrite(msg.result.CacheWrite)

	case loadFailedMsg:
		m.load.Loading = false
		m.loadErr = msg.err
		m.SetMessage("Could not load words. Restart to try again.", true)
		return m, nil

	case cacheWrittenMsg:
		if msg.err != nil {
			m.SetMessage("Words could not be saved for offline use", true)
		} else {
			m.SetMessage("Words saved for offline use", false)
		}
		return m, nil

	case lookupOpenedMsg:
		m.SetMessage(fmt.Sprintf("Opened %s in the browser", msg.word), false)
		return m, nil

	case copiedMsg:
		m.SetMessage(fmt.Sprintf("Copied %s", msg.word), false)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Prev):
			m.nav.Prev()
			return m, nil

		case key.Matches(msg, BrowserKeys.Next):
			m.nav.Next()
			return m, nil

		case key.Matches(msg, BrowserKeys.Random):
			m.nav.SetMode(domain.ModeRandom)
			return m, nil

		case key.Matches(msg, BrowserKeys.Sequential):
			m.nav.SetMode(domain.ModeSequential)
			return m, nil

		case key.Matches(msg, BrowserKeys.Search):
			m.nav.SetMode(domain.ModeSearch)
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if w, ok := m.nav.Current(); ok {
				return m, m.copyWord(w.Word)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Lookup):
			if w, ok := m.nav.Current(); ok && m.opener != nil {
				return m, m.lookupWord(w.Word)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.History):
			history := m.nav.State().History
			return m, func() tea.Msg {
				return SwitchToHistoryMsg{History: history}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) copyWord(word string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(word); err != nil {
			return errMsg{fmt.Errorf("copy failed: %w", err)}
		}
		return copiedMsg{word}
	}
}

func (m *BrowserModel) lookupWord(word string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(word); err != nil {
			return errMsg{fmt.Errorf("lookup failed: %w", err)}
		}
		return lookupOpenedMsg{word}
	}
}

// Navigator exposes the navigation state for the app
func (m *BrowserModel) Navigator() *domain.Navigator {
	return m.nav
}

// SetSize updates the view dimensions and resizes the progress bar
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.bar.Width = min(max(width-30, 10), 60)
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("wordbrowse", "汉语词典")

	if m.load.Loading {
		v.Line(RenderProgress(m.spinner.View(), m.bar.ViewAs(float64(m.load.Percent)/100), m.load.Percent))
		v.BlankLine()
	}

	if w, ok := m.nav.Current(); ok {
		v.Line(RenderModes(m.nav.Mode()))
		v.BlankLine()
		v.Line(RenderWordCard(w, m.cardWidth()))
	} else if !m.load.Loading {
		v.Muted("No word to show.")
	}

	v.Message(m.Message, m.MessageErr)

	prev := BrowserKeys.Prev
	prev.SetEnabled(m.nav.CanPrev())
	lookup := BrowserKeys.Lookup
	lookup.SetEnabled(m.opener != nil)
	v.Help(prev, BrowserKeys.Next, BrowserKeys.Random, BrowserKeys.Sequential,
		BrowserKeys.Search, BrowserKeys.Copy, lookup, BrowserKeys.History, BrowserKeys.Help, BrowserKeys.Quit)

	return v.String()
}

func (m *BrowserModel) cardWidth() int {
	if m.Width == 0 {
		return 0
	}
	// App style pads 2 columns on each side
	return min(m.Width-4, 100)
}
