package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"scenelink/internal/adapters/tui/styles"
	"scenelink/internal/domain"
)

// fieldWidth aligns the values of Field rows
const fieldWidth = 14

// Page accumulates the lines of one screen
type Page struct {
	b strings.Builder
}

// NewPage starts a screen with a title and an optional subtitle
func NewPage(title, subtitle string) *Page {
	p := &Page{}
	p.b.WriteString(styles.Title.Render(title))
	p.b.WriteString("\n")
	if subtitle != "" {
		p.b.WriteString(styles.Subtitle.Render(subtitle))
		p.b.WriteString("\n")
	}
	p.b.WriteString("\n")
	return p
}

// Line appends a rendered line
func (p *Page) Line(text string) *Page {
	p.b.WriteString(text)
	p.b.WriteString("\n")
	return p
}

// Blank appends an empty line
func (p *Page) Blank() *Page {
	p.b.WriteString("\n")
	return p
}

// Muted appends a dimmed line
func (p *Page) Muted(text string) *Page {
	return p.Line(styles.MutedText.Render(text))
}

// Section starts a labelled group of lines
func (p *Page) Section(name string) *Page {
	return p.Line(styles.Label.Render(name))
}

// Field appends an aligned "label value" row; empty values are skipped
func (p *Page) Field(label, value string) *Page {
	if value == "" {
		return p
	}
	pad := max(fieldWidth-len(label), 1)
	return p.Line(styles.Label.Render(label) + strings.Repeat(" ", pad) + value)
}

// KeyRow documents one key combination in the help screen
func (p *Page) KeyRow(keys, desc string) *Page {
	pad := max(20-len([]rune(keys)), 1)
	return p.Line("  " + styles.HelpKey.Render(keys) + strings.Repeat(" ", pad) + styles.HelpDesc.Render(desc))
}

// Status appends a success or error message when there is one
func (p *Page) Status(message string, isError bool) *Page {
	if message == "" {
		return p
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	return p.Line(style.Render(message)).Blank()
}

// Keys appends the key binding footer
func (p *Page) Keys(bindings ...key.Binding) *Page {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	p.b.WriteString(strings.Join(parts, styles.HelpSeparator.String()))
	return p
}

// String renders the screen inside the app margins
func (p *Page) String() string {
	return styles.App.Render(p.b.String())
}

// kindStyle picks the name style for a node kind
func kindStyle(k domain.NodeKind) func(...string) string {
	switch k {
	case domain.NodeKindRoot:
		return styles.NodeRoot.Render
	case domain.NodeKindLink:
		return styles.NodeLink.Render
	case domain.NodeKindLinkedIn:
		return styles.NodeLinkedIn.Render
	default:
		return styles.NodePlain.Render
	}
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return styles.Tag.Render("#" + strings.Join(tags, " #"))
}

func formatTimes(times []float64) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = fmt.Sprintf("%g", t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
