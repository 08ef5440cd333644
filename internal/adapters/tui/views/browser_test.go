package views

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/application/commands"
	"scenelink/internal/domain"
	"scenelink/internal/registry"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sampleTree returns / -> shot -> left (link) -> A, and / -> lights
func sampleTree() *domain.TreeNode {
	root := &domain.TreeNode{Kind: domain.NodeKindRoot, Path: domain.Path{}, IsExpanded: true}
	shot := &domain.TreeNode{Kind: domain.NodeKindPlain, Name: "shot", Path: domain.ParsePath("/shot"), Parent: root}
	left := &domain.TreeNode{
		Kind:     domain.NodeKindLink,
		Name:     "left",
		Path:     domain.ParsePath("/shot/left"),
		LinkHash: "0123456789abcdef0123456789abcdef",
		Parent:   shot,
	}
	a := &domain.TreeNode{Kind: domain.NodeKindLinkedIn, Name: "A", Path: domain.ParsePath("/shot/left/A"), Tags: []string{"test"}, Parent: left}
	lights := &domain.TreeNode{Kind: domain.NodeKindPlain, Name: "lights", Path: domain.ParsePath("/lights"), Tags: []string{"hero"}, Parent: root}
	left.Children = []*domain.TreeNode{a}
	shot.Children = []*domain.TreeNode{left}
	root.Children = []*domain.TreeNode{shot, lights}
	return root
}

func loadedBrowser(t *testing.T) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(nil, "shot.lscn")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m.Update(treeLoadedMsg{sampleTree()})
	return m
}

func selectedPath(m *BrowserModel) string {
	if n := m.SelectedNode(); n != nil {
		return n.Path.String()
	}
	return ""
}

func TestBrowserNavigation(t *testing.T) {
	m := loadedBrowser(t)

	steps := []struct {
		key     string
		want    string
		visible int
	}{
		{"l", "/shot", 3},
		{"j", "/shot/left", 3},
		{"l", "/shot/left", 4},
		{"j", "/shot/left/A", 4},
		{"h", "/shot/left", 4},
		{"h", "/shot/left", 3},
		{"j", "/lights", 3},
		{"j", "/lights", 3},
		{"k", "/shot/left", 3},
		{"enter", "/shot/left", 4},
		{"enter", "/shot/left", 3},
	}

	for i, s := range steps {
		m.Update(keyPress(s.key))
		if got := selectedPath(m); got != s.want {
			t.Fatalf("step %d (%s): selected %q, want %q", i, s.key, got, s.want)
		}
		if len(m.visible) != s.visible {
			t.Fatalf("step %d (%s): %d visible nodes, want %d", i, s.key, len(m.visible), s.visible)
		}
	}
}

func TestBrowserView(t *testing.T) {
	m := loadedBrowser(t)
	m.Update(keyPress("l"))
	m.Update(keyPress("j"))

	out := m.View()
	for _, want := range []string{"Scene Browser", "shot.lscn", "left", "@01234567", "#hero", "link"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef0123") {
		t.Error("expected the link hash to be shortened")
	}
}

func TestBrowserInspect(t *testing.T) {
	m := loadedBrowser(t)
	m.Update(keyPress("j"))

	_, cmd := m.Update(keyPress("i"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SwitchToDetailMsg)
	if !ok {
		t.Fatalf("expected SwitchToDetailMsg, got %T", cmd())
	}
	if msg.Path.String() != "/lights" {
		t.Errorf("inspect path = %s, want /lights", msg.Path)
	}
}

func TestBrowserCopyPath(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	m := loadedBrowser(t)
	m.Update(keyPress("l"))
	m.Update(keyPress("j"))
	_, cmd := m.Update(keyPress("y"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())

	if copied != "/shot/left" {
		t.Errorf("copied %q, want /shot/left", copied)
	}
	if m.MessageErr || !strings.Contains(m.Message, "/shot/left") {
		t.Errorf("unexpected message %q (error=%v)", m.Message, m.MessageErr)
	}
}

func TestBrowserLoadsScene(t *testing.T) {
	dir := t.TempDir()
	manifests := []struct {
		file string
		yaml string
	}{
		{"spheres.scn", "children:\n  - name: A\n    tags: [test]\n"},
		{"shot.lscn", "children:\n  - name: left\n    link: {target: spheres.scn}\n"},
	}
	for _, mf := range manifests {
		parsed, err := commands.ParseManifest([]byte(mf.yaml))
		if err != nil {
			t.Fatal(err)
		}
		cmd := commands.NewBuildCommand(registry.Default(), "", filepath.Join(dir, mf.file))
		cmd.Manifest = parsed
		if _, err := cmd.Execute(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	m := NewBrowserModel(registry.Default(), filepath.Join(dir, "shot.lscn"))
	m.Update(m.Init()())

	if m.Message != "" {
		t.Fatalf("unexpected message %q", m.Message)
	}
	n := m.SelectedNode()
	if n == nil || n.Name != "left" || n.Kind != domain.NodeKindLink {
		t.Fatalf("expected link node left, got %+v", n)
	}
	m.Update(keyPress("l"))
	m.Update(keyPress("j"))
	if got := selectedPath(m); got != "/left/A" {
		t.Errorf("selected %q, want /left/A", got)
	}
	if m.SelectedNode().Kind != domain.NodeKindLinkedIn {
		t.Errorf("expected a linked-in node, got %s", m.SelectedNode().Kind)
	}
}

func TestBrowserLoadError(t *testing.T) {
	m := NewBrowserModel(registry.Default(), filepath.Join(t.TempDir(), "missing.lscn"))
	m.Update(m.Init()())
	if !m.MessageErr {
		t.Error("expected an error message")
	}
	if !strings.Contains(m.View(), m.Message) {
		t.Error("expected the error in the view")
	}
}
