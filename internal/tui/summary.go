package tui

import (
	"debug/elf"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// SummaryInfo carries the file-level facts shown on the first tab.
type SummaryInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	SHA256  string

	Class       elf.Class
	ByteOrder   string
	Type        elf.Type
	Machine     elf.Machine
	Entry       uint64
	Compiler    string
	Interpreter string
}

// NewSummaryInfo gathers the summary fields from the parsed file.
// Compiler and interpreter stay empty when the binary does not carry
// them.
func NewSummaryInfo(path string, size int64, modTime time.Time, sha string, f *elffile.File) SummaryInfo {
	info := SummaryInfo{
		Path:      path,
		Size:      size,
		ModTime:   modTime,
		SHA256:    sha,
		Class:     f.Class,
		ByteOrder: f.ByteOrder.String(),
		Type:      f.Type,
		Machine:   f.Machine,
		Entry:     f.Entry,
	}
	if c, ok := f.CompilerInfo(); ok {
		info.Compiler = strings.TrimSpace(c)
	}
	if interp, ok := f.Interpreter(); ok {
		info.Interpreter = interp
	}
	return info
}

// summaryPage is a static page; navigation is a no-op.
type summaryPage struct {
	info   SummaryInfo
	theme  Theme
	accent lipgloss.Color
}

func newSummaryPage(info SummaryInfo, theme Theme, accent lipgloss.Color) *summaryPage {
	return &summaryPage{info: info, theme: theme, accent: accent}
}

func (p *summaryPage) MoveUp()     {}
func (p *summaryPage) MoveDown()   {}
func (p *summaryPage) FocusLeft()  {}
func (p *summaryPage) FocusRight() {}

func (p *summaryPage) View(width, height int) string {
	rows := []struct {
		label string
		value string
	}{
		{"File", p.info.Path},
		{"Size", fmt.Sprintf("%d bytes", p.info.Size)},
		{"Modified", p.info.ModTime.Format(time.RFC1123)},
		{"SHA-256", p.info.SHA256},
		{"Class", p.info.Class.String()},
		{"Endianness", p.info.ByteOrder},
		{"Type", p.info.Type.String()},
		{"Machine", p.info.Machine.String()},
		{"Entry Point", fmt.Sprintf("0x%X", p.info.Entry)},
		{"Compiler", orUnknown(p.info.Compiler)},
		{"Interpreter", orUnknown(p.info.Interpreter)},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("  ")
		b.WriteString(p.theme.label(fmt.Sprintf("%-14s", row.label)))
		b.WriteString(p.theme.value(row.value))
	}
	return p.theme.panel("File Summary", b.String(), width, height, p.accent, false)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
