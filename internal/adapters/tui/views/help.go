package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/adapters/tui/styles"
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
	page := NewPage("Scene Browser Help", "Linked scene composition")

	page.Section("Navigation").
		KeyRow("j / k / ↑ / ↓", "Move up/down").
		KeyRow("h / ←", "Collapse / go to parent").
		KeyRow("l / →", "Expand").
		KeyRow("Enter", "Toggle children").
		KeyRow("PgDn / PgUp", "Scroll one screen").
		Blank()

	page.Section("Actions").
		KeyRow("i", "Inspect the selected node").
		KeyRow("y", "Copy the virtual path").
		KeyRow("r", "Reload the scene").
		Blank()

	page.Section("General").
		KeyRow("?", "Toggle help").
		KeyRow("q / Ctrl+C", "Quit").
		Blank()

	page.Section("Nodes").
		Field("link", styles.MutedText.Render("references a subtree of another file; @ shows its link hash")).
		Field("linked", styles.MutedText.Render("content reached through a link")).
		Field("plain", styles.MutedText.Render("stored in this file")).
		Blank()

	return page.Keys(HelpKeys.Close).String()
}
