package tui

import (
	"debug/elf"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sunxfancy/ExeViewer/internal/disasm"
	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// page is the navigable surface behind each tab. Pages without
// selectable content implement the movement methods as no-ops.
type page interface {
	MoveUp()
	MoveDown()
	FocusLeft()
	FocusRight()
	View(width, height int) string
}

// Focus selects which half of a catalog the arrow keys drive.
type Focus int

const (
	// FocusList routes up/down to the selection cursor.
	FocusList Focus = iota
	// FocusContent routes up/down to the disassembly scroll.
	FocusContent
)

// CatalogEntry is one symbol with its memoized disassembly. Lines is
// empty until the cursor first lands on the entry; Decoded never
// transitions back to false.
type CatalogEntry struct {
	Name    string
	Addr    uint64
	Size    uint64
	Decoded bool
	Lines   []disasm.Line
	Scroll  int
}

// Catalog is a selection-driven, lazily decoded symbol list with a
// disassembly pane. One instance exists per code-bearing section.
type Catalog struct {
	file    *elffile.File
	res     *elffile.Resolver
	section string

	listTitle   string
	detailTitle string

	entries []CatalogEntry
	cursor  int // -1 while nothing is selected
	focus   Focus

	theme  Theme
	accent lipgloss.Color
}

// NewSymbolCatalog builds the catalog for the static symbol table and
// the .text section. Undefined symbols have no code to show and are
// filtered out.
func NewSymbolCatalog(f *elffile.File, res *elffile.Resolver, theme Theme, accent lipgloss.Color) (*Catalog, bool) {
	syms, ok := f.SymbolTable()
	if !ok {
		return nil, false
	}
	c := &Catalog{
		file:        f,
		res:         res,
		section:     ".text",
		listTitle:   "Symbols",
		detailTitle: "Assembly",
		cursor:      -1,
		theme:       theme,
		accent:      accent,
	}
	for _, sym := range syms {
		if sym.Section == elf.SHN_UNDEF {
			continue
		}
		c.entries = append(c.entries, CatalogEntry{
			Name: sym.Name,
			Addr: sym.Value,
			Size: sym.Size,
		})
	}
	return c, true
}

// NewPLTCatalog builds the catalog for the synthesized PLT entries and
// the .plt section.
func NewPLTCatalog(f *elffile.File, res *elffile.Resolver, theme Theme, accent lipgloss.Color) (*Catalog, bool) {
	plts, ok := f.PLTEntries()
	if !ok {
		return nil, false
	}
	c := &Catalog{
		file:        f,
		res:         res,
		section:     ".plt",
		listTitle:   "Dynamic Symbols",
		detailTitle: "PLT Table",
		cursor:      -1,
		theme:       theme,
		accent:      accent,
	}
	for _, e := range plts {
		c.entries = append(c.entries, CatalogEntry{Name: e.Name, Addr: e.Addr, Size: e.Size})
	}
	return c, true
}

// Entries exposes the entry list for inspection.
func (c *Catalog) Entries() []CatalogEntry { return c.entries }

// Cursor returns the selected index, -1 when nothing is selected.
func (c *Catalog) Cursor() int { return c.cursor }

// Focused reports which half the arrow keys currently drive.
func (c *Catalog) Focused() Focus { return c.focus }

// MoveDown advances the selection (saturating at the last entry), or
// scrolls the selected disassembly down one line when the content pane
// has focus.
func (c *Catalog) MoveDown() {
	if c.focus == FocusContent {
		if c.cursor >= 0 && c.cursor < len(c.entries) {
			c.entries[c.cursor].Scroll++
		}
		return
	}
	if len(c.entries) == 0 {
		return
	}
	switch {
	case c.cursor < 0:
		c.cursor = 0
	case c.cursor < len(c.entries)-1:
		c.cursor++
	}
	c.ensureDecoded(c.cursor)
}

// MoveUp retreats the selection (selecting the last entry when nothing
// is selected, saturating at the first), or scrolls the selected
// disassembly up, saturating at zero.
func (c *Catalog) MoveUp() {
	if c.focus == FocusContent {
		if c.cursor >= 0 && c.cursor < len(c.entries) && c.entries[c.cursor].Scroll > 0 {
			c.entries[c.cursor].Scroll--
		}
		return
	}
	if len(c.entries) == 0 {
		return
	}
	switch {
	case c.cursor < 0:
		c.cursor = len(c.entries) - 1
	case c.cursor > 0:
		c.cursor--
	}
	c.ensureDecoded(c.cursor)
}

// FocusLeft gives the arrow keys to the symbol list.
func (c *Catalog) FocusLeft() { c.focus = FocusList }

// FocusRight gives the arrow keys to the disassembly pane.
func (c *Catalog) FocusRight() { c.focus = FocusContent }

// ensureDecoded decodes the entry at idx on first visit. It is the
// only path that mutates decode state and is idempotent; a decode that
// fails or falls outside the section is recorded as a single message
// line and still marks the entry decoded.
func (c *Catalog) ensureDecoded(idx int) {
	if idx < 0 || idx >= len(c.entries) {
		return
	}
	entry := &c.entries[idx]
	if entry.Decoded {
		return
	}
	lines, err := disasm.Disassemble(c.file, c.res, c.section, entry.Addr, entry.Size)
	if err != nil {
		lines = []disasm.Line{disasm.OutOfRange(entry.Addr)}
	}
	entry.Lines = lines
	entry.Decoded = true
}

const minListWidth = 40

// View lays the catalog out as a list pane on the left (minimum 40
// cells) and a details pane filling the rest.
func (c *Catalog) View(width, height int) string {
	listWidth := minListWidth
	if width < minListWidth*2 {
		listWidth = width / 2
	}
	left := c.viewList(listWidth, height)
	right := c.viewContent(width-listWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (c *Catalog) viewList(width, height int) string {
	rows := height - 3 // borders and title
	if rows < 1 {
		rows = 1
	}

	// Keep the cursor visible.
	top := 0
	if c.cursor >= rows {
		top = c.cursor - rows + 1
	}

	var b strings.Builder
	selected := lipgloss.NewStyle().Foreground(c.accent).Italic(true).Bold(true)
	normal := lipgloss.NewStyle().Foreground(c.theme.Text)
	for i := top; i < len(c.entries) && i < top+rows; i++ {
		if i > top {
			b.WriteString("\n")
		}
		name := c.entries[i].Name
		if i == c.cursor {
			b.WriteString(selected.MaxWidth(width - 2).Render(">> " + name))
		} else {
			b.WriteString(normal.MaxWidth(width - 2).Render("   " + name))
		}
	}
	return c.theme.panel(c.listTitle, b.String(), width, height, c.accent, c.focus == FocusList)
}

func (c *Catalog) viewContent(width, height int) string {
	if c.cursor < 0 || c.cursor >= len(c.entries) {
		return c.theme.panel(c.detailTitle, "Select a symbol to decompile", width, height, c.accent, c.focus == FocusContent)
	}

	entry := &c.entries[c.cursor]
	rows := height - 3
	if rows < 1 {
		rows = 1
	}
	textWidth := width - 4 // borders + scrollbar column and gap
	if textWidth < 1 {
		textWidth = 1
	}

	top := entry.Scroll
	if top > len(entry.Lines) {
		top = len(entry.Lines)
	}

	var lines []string
	for i := top; i < len(entry.Lines) && i < top+rows; i++ {
		lines = append(lines, c.renderLine(entry.Lines[i], textWidth))
	}
	body := strings.Join(lines, "\n")

	bar := scrollbar(len(entry.Lines), top, rows, c.theme)
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(textWidth).Height(rows).Render(body),
		bar,
	)
	return c.theme.panel(c.detailTitle, content, width, height, c.accent, c.focus == FocusContent)
}

// renderLine styles one disassembly line: dim address column, then the
// classified tokens.
func (c *Catalog) renderLine(line disasm.Line, maxWidth int) string {
	if line.Message != "" {
		return lipgloss.NewStyle().Foreground(c.theme.Dim).MaxWidth(maxWidth).Render(line.Message)
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(c.theme.Dim).Render(addrColumn(line.PC)))
	for _, tok := range line.Tokens {
		b.WriteString(c.theme.TokenStyle(tok.Kind).Render(tok.Text))
	}
	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(b.String())
}

func addrColumn(pc uint64) string {
	return disasm.Line{PC: pc}.Text()
}

// scrollbar renders a one-column bar: the thumb covers the visible
// share of the content, the track fills the rest.
func scrollbar(total, top, rows int, theme Theme) string {
	if rows < 1 {
		rows = 1
	}
	thumbRows := rows
	thumbTop := 0
	if total > rows {
		thumbRows = rows * rows / total
		if thumbRows < 1 {
			thumbRows = 1
		}
		maxTop := total - rows
		if top > maxTop {
			top = maxTop
		}
		thumbTop = top * (rows - thumbRows) / maxTop
	}

	thumb := lipgloss.NewStyle().Foreground(theme.Highlight)
	track := lipgloss.NewStyle().Foreground(theme.Border)
	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		if i >= thumbTop && i < thumbTop+thumbRows {
			b.WriteString(thumb.Render("█"))
		} else {
			b.WriteString(track.Render("│"))
		}
	}
	return b.String()
}

// emptyPage stands in for a catalog whose backing table is missing.
// It accepts every navigation event as a no-op and renders a fixed
// message.
type emptyPage struct {
	message string
	theme   Theme
	accent  lipgloss.Color
}

func newEmptyPage(message string, theme Theme, accent lipgloss.Color) *emptyPage {
	return &emptyPage{message: message, theme: theme, accent: accent}
}

func (p *emptyPage) MoveUp()     {}
func (p *emptyPage) MoveDown()   {}
func (p *emptyPage) FocusLeft()  {}
func (p *emptyPage) FocusRight() {}

func (p *emptyPage) View(width, height int) string {
	return p.theme.panel("Error", p.message, width, height, p.accent, false)
}
