package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/adapters/tui/views"
	"scenelink/internal/ports"
)

// Screen identifies which view receives input
type Screen int

const (
	ScreenBrowser Screen = iota
	ScreenDetail
	ScreenHelp
)

// screen is what every view model offers the app
type screen interface {
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// App switches between the tree browser, node details and help
type App struct {
	current Screen
	browser *views.BrowserModel
	detail  *views.DetailModel
	help    *views.HelpModel
}

// NewApp creates a TUI browsing the virtual scene stored at scenePath
func NewApp(opener ports.Opener, scenePath string) *App {
	return &App{
		browser: views.NewBrowserModel(opener, scenePath),
		detail:  views.NewDetailModel(opener, scenePath),
		help:    views.NewHelpModel(),
	}
}

// Screen reports the view currently shown
func (a *App) Screen() Screen {
	return a.current
}

func (a *App) screens() []screen {
	return []screen{a.browser, a.detail, a.help}
}

func (a *App) active() screen {
	return a.screens()[a.current]
}

func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for _, s := range a.screens() {
			s.SetSize(msg.Width, msg.Height)
		}
		return a, nil
	case views.SwitchToDetailMsg:
		a.current = ScreenDetail
		return a, a.detail.Load(msg.Path)
	case views.SwitchToHelpMsg:
		a.current = ScreenHelp
		return a, nil
	case views.SwitchToBrowserMsg:
		// expansion state survives; the scene is reread only on r
		a.current = ScreenBrowser
		return a, nil
	}

	_, cmd := a.active().Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.active().View()
}
