package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sunxfancy/ExeViewer/internal/disasm"
)

// Theme bundles the palette for one session. The accent color rotates
// per tab; everything else stays fixed.
type Theme struct {
	Name string

	Text      lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color

	tokens map[disasm.Kind]lipgloss.Style
}

// NewTheme returns the named theme; anything but "light" selects the
// dark palette.
func NewTheme(name string) Theme {
	t := Theme{
		Name:      "dark",
		Text:      lipgloss.Color("#e2e8f0"),
		Dim:       lipgloss.Color("#64748b"),
		Border:    lipgloss.Color("#475569"),
		Highlight: lipgloss.Color("#f8fafc"),
	}
	if name == "light" {
		t.Name = "light"
		t.Text = lipgloss.Color("#1e293b")
		t.Dim = lipgloss.Color("#94a3b8")
		t.Border = lipgloss.Color("#cbd5e1")
		t.Highlight = lipgloss.Color("#0f172a")
	}
	t.tokens = map[disasm.Kind]lipgloss.Style{
		disasm.KindMnemonic:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc")).Bold(true),
		disasm.KindPrefix:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f9a8d4")),
		disasm.KindRegister:  lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac")),
		disasm.KindNumber:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
		disasm.KindKeyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c4b5fd")),
		disasm.KindDirective: lipgloss.NewStyle().Foreground(lipgloss.Color("#93c5fd")),
		disasm.KindPunct:     lipgloss.NewStyle().Foreground(t.Dim),
		disasm.KindOther:     lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")),
	}
	return t
}

// TokenStyle returns the highlight style for one token kind.
func (t Theme) TokenStyle(k disasm.Kind) lipgloss.Style {
	if s, ok := t.tokens[k]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(t.Text)
}

// tab accents, one per tab in order.
var tabAccents = [tabCount]lipgloss.Color{
	"#3b82f6", // Summary
	"#10b981", // Sections
	"#6366f1", // Disassembly
	"#f59e0b", // Dynamic Symbols & PLT
	"#a855f7", // Dependencies
}

// panel draws a bordered box of exactly width x height cells with a
// bold title line on top of the content.
func (t Theme) panel(title, body string, width, height int, accent lipgloss.Color, focused bool) string {
	if width < 4 || height < 3 {
		return ""
	}
	borderColor := t.Border
	if focused {
		borderColor = accent
	}
	titleLine := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		MaxWidth(width - 2).
		Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Height(height - 2).
		Render(titleLine + "\n" + body)
}

// label renders a field name in the details panes.
func (t Theme) label(s string) string {
	return lipgloss.NewStyle().Foreground(t.Dim).Render(s)
}

// value renders a field value in the details panes.
func (t Theme) value(s string) string {
	return lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(s)
}
