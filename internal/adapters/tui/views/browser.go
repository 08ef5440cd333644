package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/adapters/tui/styles"
	"scenelink/internal/application/commands"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	NextPg  key.Binding
	PrevPg  key.Binding
	Enter   key.Binding
	Inspect key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	NextPg: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPg: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "prev page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Inspect: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "inspect"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
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

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// BrowserModel shows the virtual scene graph of one scene file as a
// collapsible tree. Nodes reached through links are browsed like any other.
type BrowserModel struct {
	ViewState
	opener    ports.Opener
	scenePath string
	root      *domain.TreeNode
	visible   []*domain.TreeNode
	scroll    *Scroller
}

// NewBrowserModel creates a browser for the scene at scenePath
func NewBrowserModel(opener ports.Opener, scenePath string) *BrowserModel {
	return &BrowserModel{
		opener:    opener,
		scenePath: scenePath,
		scroll:    NewScroller(20),
	}
}

// Init loads the tree
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := commands.NewTreeCommand(m.opener, m.scenePath).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		m.relayout()
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit
	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()
	}

	node := m.SelectedNode()
	switch {
	case key.Matches(msg, BrowserKeys.Up):
		m.scroll.Move(-1)
	case key.Matches(msg, BrowserKeys.Down):
		m.scroll.Move(1)
	case key.Matches(msg, BrowserKeys.NextPg):
		m.scroll.PageDown()
	case key.Matches(msg, BrowserKeys.PrevPg):
		m.scroll.PageUp()
	case node == nil:
		return nil
	case key.Matches(msg, BrowserKeys.Left):
		m.collapseOrAscend(node)
	case key.Matches(msg, BrowserKeys.Right):
		if len(node.Children) > 0 && !node.IsExpanded {
			node.Expand()
			m.relayout()
		}
	case key.Matches(msg, BrowserKeys.Enter):
		if len(node.Children) > 0 {
			node.Toggle()
			m.relayout()
		}
	case key.Matches(msg, BrowserKeys.Inspect):
		return func() tea.Msg { return SwitchToDetailMsg{Path: node.Path} }
	case key.Matches(msg, BrowserKeys.Copy):
		return copyPath(node.Path)
	}
	return nil
}

// collapseOrAscend closes an open node, or moves to the parent of a
// closed one
func (m *BrowserModel) collapseOrAscend(node *domain.TreeNode) {
	if node.IsExpanded && len(node.Children) > 0 {
		node.Collapse()
		m.relayout()
		return
	}
	if p := node.Parent; p != nil && p.Kind != domain.NodeKindRoot {
		m.selectNode(p)
	}
}

func copyPath(p domain.Path) tea.Cmd {
	text := p.String()
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy path: %w", err)}
		}
		return successMsg{"Copied " + text}
	}
}

// SelectedNode returns the node under the cursor
func (m *BrowserModel) SelectedNode() *domain.TreeNode {
	if c := m.scroll.Cursor(); c < len(m.visible) {
		return m.visible[c]
	}
	return nil
}

func (m *BrowserModel) selectNode(target *domain.TreeNode) {
	for i, n := range m.visible {
		if n == target {
			m.scroll.SetCursor(i)
			return
		}
	}
}

// relayout recomputes the visible rows after expanding or collapsing
func (m *BrowserModel) relayout() {
	if m.root == nil {
		return
	}
	// the root itself is the title, not a row
	m.visible = m.root.Flatten()[1:]
	m.scroll.SetTotal(len(m.visible))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		if m.Message != "" {
			return NewPage("Scene Browser", m.scenePath).Status(m.Message, m.MessageErr).String()
		}
		return "Loading..."
	}

	page := NewPage("Scene Browser", m.scenePath)
	start, end := m.scroll.VisibleRange()
	for i := start; i < end; i++ {
		page.Line(m.renderRow(m.visible[i], i == m.scroll.Cursor()))
	}
	if m.scroll.Scrollable() {
		page.Muted(fmt.Sprintf("%d/%d", m.scroll.Cursor()+1, len(m.visible)))
	}

	page.Blank()
	if node := m.SelectedNode(); node != nil {
		page.Line(styles.StatusKey.Render(node.Kind.String()) + styles.StatusBar.Render(node.Path.String()))
	}
	return page.Status(m.Message, m.MessageErr).
		Keys(BrowserKeys.Inspect, BrowserKeys.Copy, BrowserKeys.Reload, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderRow(node *domain.TreeNode, selected bool) string {
	marker := styles.TreeLeaf
	if len(node.Children) > 0 {
		marker = styles.TreeCollapsed
		if node.IsExpanded {
			marker = styles.TreeExpanded
		}
	}

	name := kindStyle(node.Kind)(node.Name)
	if selected {
		name = styles.NodeSelected.Render(node.Name)
	}
	row := strings.Repeat("  ", node.Depth()-1) + styles.TreeBranch.Render(marker) + name
	if node.Kind == domain.NodeKindLink {
		row += " " + styles.LinkHash.Render("@"+shortHash(node.LinkHash))
	}
	if tags := formatTags(node.Tags); tags != "" {
		row += " " + tags
	}
	return row
}

// Reload rereads the scene from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.visible = nil
	m.scroll.Reset()
	return m.loadTree
}

// SetSize updates the view dimensions; the tree gets what the title,
// status and key rows leave
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.scroll.SetHeight(height - 12)
}

// Messages for view switching
type SwitchToDetailMsg struct {
	Path domain.Path
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
