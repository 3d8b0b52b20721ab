package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunxfancy/ExeViewer/internal/deps"
)

func TestSummaryPageFields(t *testing.T) {
	f := buildSymbolImage(t)
	info := NewSummaryInfo("/usr/bin/demo", 4096, time.Unix(1700000000, 0), "CAFEBABE", f)

	assert.Equal(t, "/usr/bin/demo", info.Path)
	assert.Equal(t, "ELFCLASS64", info.Class.String())
	assert.Equal(t, uint64(0x1000), info.Entry)
	assert.Empty(t, info.Compiler, "fixture has no .comment section")

	p := newSummaryPage(info, NewTheme("dark"), tabAccents[TabSummary])
	view := p.View(100, 30)
	assert.Contains(t, view, "/usr/bin/demo")
	assert.Contains(t, view, "CAFEBABE")
	assert.Contains(t, view, "4096 bytes")
	assert.Contains(t, view, "Unknown", "absent compiler renders as Unknown")
}

func TestSectionsPageSelection(t *testing.T) {
	f := buildSymbolImage(t)
	p := newSectionsPage(f, NewTheme("dark"), tabAccents[TabSections])

	unselected := p.View(120, 30)
	assert.Contains(t, unselected, "Select a section to show its details")

	// First press selects the first row (the null section header).
	p.MoveDown()
	p.MoveDown()
	selected := p.View(120, 30)
	assert.Contains(t, selected, "Executable code", ".text carries its description")
	assert.Contains(t, selected, "Range:")
	assert.NotContains(t, selected, "Select a section to show its details")
}

func TestSectionsPageFirstUpSelectsLast(t *testing.T) {
	f := buildSymbolImage(t)
	p := newSectionsPage(f, NewTheme("dark"), tabAccents[TabSections])

	p.MoveUp()
	assert.True(t, p.selected)
	assert.Equal(t, len(p.content)-1, p.table.Cursor())
}

func TestSectionsLayoutMap(t *testing.T) {
	f := buildSymbolImage(t)
	p := newSectionsPage(f, NewTheme("dark"), tabAccents[TabSections])

	// Find .text and render its layout map.
	idx := -1
	for i, s := range p.content {
		if s.name == ".text" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	grid := p.layoutMap(idx, 50, 3)
	lines := strings.Split(grid, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, grid, "*", "even a small section gets at least one cell")
	for _, line := range lines {
		assert.Len(t, strings.TrimPrefix(line, "  "), 50)
	}
}

func TestDepsPageRendering(t *testing.T) {
	list := &deps.List{
		RPath: "/opt/lib",
		Entries: []deps.Entry{
			{Name: "libc.so.6", Critical: true, SearchPath: "/opt/lib:/lib", Resolved: "/lib/libc.so.6"},
			{Name: "libfoo.so", SearchPath: "/opt/lib:/lib", Resolved: deps.NotFound},
		},
	}
	p := newDepsPage(list, NewTheme("dark"), tabAccents[TabDependencies])

	unselected := p.View(120, 30)
	assert.Contains(t, unselected, "/opt/lib")
	assert.Contains(t, unselected, "* libc.so.6", "critical entries carry the marker")
	assert.Contains(t, unselected, "Select a library to view details")

	p.MoveDown()
	first := p.View(120, 30)
	assert.Contains(t, first, "Critical System Library")
	assert.Contains(t, first, "/lib/libc.so.6")

	p.MoveDown()
	second := p.View(120, 30)
	assert.Contains(t, second, "Regular Library")
	assert.Contains(t, second, deps.NotFound)

	// Saturates at the end.
	p.MoveDown()
	assert.Equal(t, 1, p.cursor)
}

func TestDepsPageFirstUpSelectsLast(t *testing.T) {
	list := &deps.List{Entries: []deps.Entry{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	p := newDepsPage(list, NewTheme("dark"), tabAccents[TabDependencies])

	p.MoveUp()
	assert.Equal(t, 2, p.cursor)
	p.MoveUp()
	p.MoveUp()
	p.MoveUp()
	assert.Equal(t, 0, p.cursor, "saturates at the first entry")
}
