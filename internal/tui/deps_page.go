package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sunxfancy/ExeViewer/internal/deps"
)

// depsPage lists the DT_NEEDED libraries with a details pane. Critical
// system libraries carry a "* " marker in the list.
type depsPage struct {
	list   *deps.List
	cursor int // -1 while nothing is selected

	theme  Theme
	accent lipgloss.Color
}

func newDepsPage(list *deps.List, theme Theme, accent lipgloss.Color) *depsPage {
	return &depsPage{list: list, cursor: -1, theme: theme, accent: accent}
}

func (p *depsPage) MoveDown() {
	if len(p.list.Entries) == 0 {
		return
	}
	switch {
	case p.cursor < 0:
		p.cursor = 0
	case p.cursor < len(p.list.Entries)-1:
		p.cursor++
	}
}

func (p *depsPage) MoveUp() {
	if len(p.list.Entries) == 0 {
		return
	}
	switch {
	case p.cursor < 0:
		p.cursor = len(p.list.Entries) - 1
	case p.cursor > 0:
		p.cursor--
	}
}

func (p *depsPage) FocusLeft()  {}
func (p *depsPage) FocusRight() {}

func (p *depsPage) View(width, height int) string {
	listWidth := minListWidth
	if width < minListWidth*2 {
		listWidth = width / 2
	}
	left := p.viewList(listWidth, height)
	right := p.theme.panel("Library Details", p.viewDetails(), width-listWidth, height, p.accent, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (p *depsPage) viewList(width, height int) string {
	var b strings.Builder
	selected := lipgloss.NewStyle().Foreground(p.accent).Italic(true).Bold(true)
	normal := lipgloss.NewStyle().Foreground(p.theme.Text)
	for i, entry := range p.list.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		name := entry.Name
		if entry.Critical {
			name = "* " + name
		}
		if i == p.cursor {
			b.WriteString(selected.MaxWidth(width - 2).Render(">> " + name))
		} else {
			b.WriteString(normal.MaxWidth(width - 2).Render("   " + name))
		}
	}
	return p.theme.panel("Dependencies", b.String(), width, height, p.accent, true)
}

func (p *depsPage) viewDetails() string {
	var b strings.Builder
	if p.cursor >= 0 && p.cursor < len(p.list.Entries) {
		entry := p.list.Entries[p.cursor]
		kind := "Regular Library"
		if entry.Critical {
			kind = "Critical System Library"
		}
		b.WriteString(p.theme.label("Library: ") + p.theme.value(entry.Name) + "\n\n")
		b.WriteString(p.theme.label("Type: ") + p.theme.value(kind) + "\n\n")
		b.WriteString(p.theme.label("Search Path:") + "\n")
		b.WriteString(entry.SearchPath + "\n\n")
		b.WriteString(p.theme.label("Resolved: ") + p.theme.value(entry.Resolved))
		return b.String()
	}

	rpath := p.list.RPath
	if rpath == "" {
		rpath = "Not set"
	}
	b.WriteString(p.theme.label("RPATH:") + "\n")
	b.WriteString(rpath + "\n\n")
	b.WriteString("Select a library to view details\n\n")
	b.WriteString("* Critical system libraries are marked with an asterisk")
	return b.String()
}
