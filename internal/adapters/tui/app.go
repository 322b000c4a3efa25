package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"wordbrowse/internal/adapters/tui/views"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHistory
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state   ViewState
	browser *views.BrowserModel
	history *views.HistoryModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(loader views.WordLoader, opener views.WordOpener) *App {
	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(loader, opener),
		history: views.NewHistoryModel(),
		help:    views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.history.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToHistoryMsg:
		a.state = ViewHistory
		a.history.SetEntries(msg.History)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	// Key presses go to the active view; everything else (load results,
	// progress, spinner ticks) belongs to the browser.
	if _, ok := msg.(tea.KeyMsg); !ok {
		_, cmd := a.browser.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHistory:
		return a.history.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
