package tui

import (
	"debug/elf"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// sectionInfo is the per-section detail shown in the right pane.
type sectionInfo struct {
	name        string
	offset      uint64
	size        uint64
	description string
}

// sectionsPage lists every section header in a table; the details pane
// shows a description, the file range and a layout map of where the
// section sits in the file.
type sectionsPage struct {
	table    table.Model
	content  []sectionInfo
	selected bool

	theme  Theme
	accent lipgloss.Color
}

func newSectionsPage(f *elffile.File, theme Theme, accent lipgloss.Color) *sectionsPage {
	var rows []table.Row
	var content []sectionInfo
	for _, s := range f.Sections {
		rows = append(rows, table.Row{
			s.Name,
			fmt.Sprintf("%016X", s.Addr),
			fmt.Sprintf("%d", s.Size),
			sectionTypeString(s.Type),
		})
		content = append(content, sectionInfo{
			name:        s.Name,
			offset:      s.Offset,
			size:        s.Size,
			description: sectionDescription(s.Name),
		})
	}

	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Address", Width: 18},
		{Title: "Size", Width: 10},
		{Title: "Type", Width: 12},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(accent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Highlight).
		Background(lipgloss.Color("")).
		Italic(true).
		Bold(true)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithStyles(styles),
	)

	return &sectionsPage{table: t, content: content, theme: theme, accent: accent}
}

// MoveDown selects the next section; the first press selects row zero.
func (p *sectionsPage) MoveDown() {
	if len(p.content) == 0 {
		return
	}
	if !p.selected {
		p.selected = true
		p.table.SetCursor(0)
		return
	}
	p.table.MoveDown(1)
}

// MoveUp selects the previous section; the first press selects the
// last row.
func (p *sectionsPage) MoveUp() {
	if len(p.content) == 0 {
		return
	}
	if !p.selected {
		p.selected = true
		p.table.SetCursor(len(p.content) - 1)
		return
	}
	p.table.MoveUp(1)
}

func (p *sectionsPage) FocusLeft()  {}
func (p *sectionsPage) FocusRight() {}

func (p *sectionsPage) View(width, height int) string {
	listWidth := width / 2
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	p.table.SetHeight(height - 3)
	p.table.SetWidth(listWidth - 2)

	left := p.theme.panel("Sections", p.table.View(), listWidth, height, p.accent, true)
	right := p.theme.panel("Section Summary", p.viewDetails(), width-listWidth, height, p.accent, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (p *sectionsPage) viewDetails() string {
	if !p.selected {
		return "Select a section to show its details"
	}
	idx := p.table.Cursor()
	if idx < 0 || idx >= len(p.content) {
		return "Section not found"
	}
	sec := p.content[idx]
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + p.theme.label("Description:  ") + p.theme.value(sec.description) + "\n\n")
	b.WriteString("  " + p.theme.label("Size:  ") + p.theme.value(fmt.Sprintf("%d", sec.size)) + "\n\n")
	b.WriteString("  " + p.theme.label("Range:  ") +
		p.theme.value(fmt.Sprintf("[ %016X - %016X ]", sec.offset, sec.offset+sec.size)) + "\n\n")
	b.WriteString("  " + p.theme.label("Layout:") + "\n")
	b.WriteString(p.layoutMap(idx, 50, 3))
	return b.String()
}

// layoutMap draws the selected section's position in the file as a
// width x rows grid of '*' against '.'. Sections smaller than one cell
// still get a single '*'.
func (p *sectionsPage) layoutMap(idx, width, rows int) string {
	total := width * rows
	cells := make([]byte, total)
	for i := range cells {
		cells[i] = '.'
	}

	var maxEnd uint64
	for _, s := range p.content {
		if end := s.offset + s.size; end > maxEnd {
			maxEnd = end
		}
	}
	if maxEnd > 0 {
		sec := p.content[idx]
		start := int(float64(sec.offset) / float64(maxEnd) * float64(total))
		end := int(float64(sec.offset+sec.size) / float64(maxEnd) * float64(total))
		if end <= start {
			end = start + 1
		}
		if end > total {
			end = total
		}
		for i := start; i < end; i++ {
			cells[i] = '*'
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.Write(cells[row*width : (row+1)*width])
	}
	return b.String()
}

func sectionTypeString(t elf.SectionType) string {
	s := t.String()
	return strings.TrimPrefix(s, "SHT_")
}

var sectionDescriptions = map[string]string{
	".text":         "Executable code",
	".rodata":       "Read-only data",
	".data":         "Initialized data",
	".bss":          "Uninitialized data",
	".symtab":       "Symbol table",
	".strtab":       "String table",
	".shstrtab":     "Section header string table",
	".dynsym":       "Dynamic symbol table",
	".dynstr":       "Dynamic string table",
	".dynamic":      "Dynamic linking information",
	".plt":          "Procedure linkage table",
	".got":          "Global offset table",
	".rela.plt":     "PLT relocations",
	".interp":       "Program interpreter path",
	".comment":      "Toolchain version notes",
	".init":         "Initialization code",
	".fini":         "Termination code",
	".eh_frame":     "Exception handling frames",
	".note.ABI-tag": "ABI note",
}

func sectionDescription(name string) string {
	if d, ok := sectionDescriptions[name]; ok {
		return d
	}
	return "Unknown"
}
