package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/adapters/tui/styles"
	"scenelink/internal/application/commands"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// DetailKeyMap defines key bindings for the node detail view
type DetailKeyMap struct {
	Back key.Binding
}

var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "i"),
		key.WithHelp("esc", "back"),
	),
}

var (
	_ tea.Model = (*BrowserModel)(nil)
	_ tea.Model = (*DetailModel)(nil)
	_ tea.Model = (*HelpModel)(nil)
)

// DetailModel shows everything readable at one virtual node
type DetailModel struct {
	ViewState
	opener    ports.Opener
	scenePath string
	result    *commands.InspectResult
}

// NewDetailModel creates a new detail model
func NewDetailModel(opener ports.Opener, scenePath string) *DetailModel {
	return &DetailModel{opener: opener, scenePath: scenePath}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

type inspectedMsg struct {
	result *commands.InspectResult
}

// Load inspects the node at p
func (m *DetailModel) Load(p domain.Path) tea.Cmd {
	m.result = nil
	m.ClearMessage()
	return func() tea.Msg {
		res, err := commands.NewInspectCommand(m.opener, m.scenePath, p.String()).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return inspectedMsg{res}
	}
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inspectedMsg:
		m.result = msg.result
	case errMsg:
		m.SetError(msg.err)
	case tea.KeyMsg:
		if key.Matches(msg, DetailKeys.Back) {
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}
	return m, nil
}

// View renders the node details
func (m *DetailModel) View() string {
	r := m.result
	if r == nil {
		page := NewPage("Node", "").Status(m.Message, m.MessageErr)
		if m.Message == "" {
			page.Muted("Loading...")
		}
		return page.Keys(DetailKeys.Back).String()
	}

	page := NewPage(r.Path.String(), kindStyle(r.Kind)(r.Kind.String()))
	page.Field("stored in", fmt.Sprintf("%s:%s", r.TargetFile, r.TargetPath))
	if r.LinkHash != "" {
		page.Field("link hash", styles.LinkHash.Render(r.LinkHash))
	}
	if r.LinkDepth > 0 {
		page.Field("through", fmt.Sprintf("%d link(s)", r.LinkDepth))
	}
	page.Field("children", strings.Join(r.Children, ", "))
	if r.Bound != nil {
		page.Field("bound", domain.FormatValue(domain.Bound(*r.Bound)))
	}
	if r.Transform != nil {
		page.Field("transform", domain.FormatValue(domain.Matrix(*r.Transform)))
	}
	if r.HasObject {
		page.Field("object", r.ObjectType)
	}
	page.Field("tags", formatTags(r.Tags))
	page.Field("all tags", formatTags(r.AllTags))

	if len(r.Attributes) > 0 {
		page.Blank().Section("Attributes")
		for _, a := range r.Attributes {
			page.Field(a.Name, a.First+" "+styles.MutedText.Render(a.Kind+" "+formatTimes(a.Times)))
		}
	}

	return page.Blank().Status(m.Message, m.MessageErr).Keys(DetailKeys.Back).String()
}
