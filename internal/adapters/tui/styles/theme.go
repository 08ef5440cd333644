package styles

import "github.com/charmbracelet/lipgloss"

// Palette names the colors of the browser. Links are cyan, content reached
// through them is teal, tags are orange.
type Palette struct {
	Accent   lipgloss.Color
	Link     lipgloss.Color
	Linked   lipgloss.Color
	Tag      lipgloss.Color
	Dim      lipgloss.Color
	Bar      lipgloss.Color
	Ok       lipgloss.Color
	Fail     lipgloss.Color
	Contrast lipgloss.Color
}

var Colors = Palette{
	Accent:   lipgloss.Color("#2563EB"),
	Link:     lipgloss.Color("#22D3EE"),
	Linked:   lipgloss.Color("#14B8A6"),
	Tag:      lipgloss.Color("#FB923C"),
	Dim:      lipgloss.Color("#94A3B8"),
	Bar:      lipgloss.Color("#0F172A"),
	Ok:       lipgloss.Color("#4ADE80"),
	Fail:     lipgloss.Color("#F87171"),
	Contrast: lipgloss.Color("#F8FAFC"),
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	App      = lipgloss.NewStyle().Padding(1, 2)
	Title    = fg(Colors.Accent).Bold(true)
	Subtitle = fg(Colors.Dim).Italic(true)
	Label    = fg(Colors.Accent)

	NodeRoot     = lipgloss.NewStyle().Bold(true).Underline(true)
	NodePlain    = lipgloss.NewStyle()
	NodeLink     = fg(Colors.Link).Bold(true)
	NodeLinkedIn = fg(Colors.Linked)
	NodeSelected = lipgloss.NewStyle().Reverse(true).Bold(true)

	LinkHash  = fg(Colors.Dim).Faint(true)
	Tag       = fg(Colors.Tag)
	MutedText = fg(Colors.Dim)

	TreeBranch    = fg(Colors.Dim)
	TreeExpanded  = "- "
	TreeCollapsed = "+ "
	TreeLeaf      = "  "

	StatusBar = lipgloss.NewStyle().Background(Colors.Bar).Foreground(Colors.Contrast).Padding(0, 1)
	StatusKey = lipgloss.NewStyle().Background(Colors.Accent).Foreground(Colors.Contrast).Padding(0, 1)

	HelpKey       = fg(Colors.Accent).Bold(true)
	HelpDesc      = fg(Colors.Dim)
	HelpSeparator = fg(Colors.Dim).SetString(" | ")

	Success  = fg(Colors.Ok)
	ErrorMsg = fg(Colors.Fail).Bold(true)
)
