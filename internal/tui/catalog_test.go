package tui

import (
	"debug/elf"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunxfancy/ExeViewer/internal/elffile"
	"github.com/sunxfancy/ExeViewer/internal/testutil"
)

// buildSymbolImage lays out .text at 0x1000 with ten four-byte
// functions fn0..fn9 (three nops and a ret each), plus one undefined
// symbol that the catalog must filter out.
func buildSymbolImage(t *testing.T) *elffile.File {
	t.Helper()

	text := make([]byte, 10*4)
	for i := 0; i < 10; i++ {
		copy(text[i*4:], []byte{0x90, 0x90, 0x90, 0xc3})
	}

	b := testutil.NewBuilder()
	b.Entry = 0x1000
	textIdx := b.AddSection(testutil.Section{
		Name:  ".text",
		Type:  elf.SHT_PROGBITS,
		Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		Addr:  0x1000,
		Data:  text,
	})

	strtab := testutil.NewStrTab()
	var syms []testutil.Sym
	for i := 0; i < 10; i++ {
		syms = append(syms, testutil.Sym{
			Name:  fmt.Sprintf("fn%d", i),
			Value: 0x1000 + uint64(i)*4,
			Size:  4,
			Info:  0x12,
			Shndx: uint16(textIdx),
		})
	}
	syms = append(syms, testutil.Sym{Name: "external_fn", Info: 0x12, Shndx: uint16(elf.SHN_UNDEF)})
	symtabData := testutil.SymData(strtab, syms)

	strtabIdx := b.AddSection(testutil.Section{
		Name: ".strtab", Type: elf.SHT_STRTAB, Data: strtab.Bytes(),
	})
	b.AddSection(testutil.Section{
		Name: ".symtab", Type: elf.SHT_SYMTAB,
		Data: symtabData, Entsize: 24, Link: uint32(strtabIdx),
	})

	f, err := elffile.Open(b.Bytes())
	require.NoError(t, err)
	return f
}

// buildPLTImage lays out a .plt at 0x2000 with a header stub and two
// decodable 16-byte slots, wired to dynamic symbols through .rela.plt.
func buildPLTImage(t *testing.T) *elffile.File {
	t.Helper()

	plt := make([]byte, 3*16)
	for i := 0; i < 3; i++ {
		// jmp qword ptr [rip+0x1000] padded with nops
		copy(plt[i*16:], []byte{0xff, 0x25, 0x00, 0x10, 0x00, 0x00})
		for j := i*16 + 6; j < (i+1)*16; j++ {
			plt[j] = 0x90
		}
	}

	b := testutil.NewBuilder()
	b.AddSection(testutil.Section{
		Name:    ".plt",
		Type:    elf.SHT_PROGBITS,
		Flags:   elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		Addr:    0x2000,
		Data:    plt,
		Entsize: 16,
	})

	dynstr := testutil.NewStrTab()
	dynsymData := testutil.SymData(dynstr, []testutil.Sym{
		{Name: "printf", Info: 0x12},
		{Name: "malloc", Info: 0x12},
	})
	dynstrIdx := b.AddSection(testutil.Section{
		Name: ".dynstr", Type: elf.SHT_STRTAB, Flags: elf.SHF_ALLOC, Data: dynstr.Bytes(),
	})
	dynsymIdx := b.AddSection(testutil.Section{
		Name: ".dynsym", Type: elf.SHT_DYNSYM, Flags: elf.SHF_ALLOC,
		Data: dynsymData, Entsize: 24, Link: uint32(dynstrIdx),
	})
	b.AddSection(testutil.Section{
		Name: ".rela.plt", Type: elf.SHT_RELA, Flags: elf.SHF_ALLOC,
		Data: testutil.RelaData([]testutil.Rela{
			{Off: 0x3000, Sym: 1, Type: uint32(elf.R_X86_64_JMP_SLOT)},
			{Off: 0x3008, Sym: 2, Type: uint32(elf.R_X86_64_JMP_SLOT)},
		}),
		Entsize: 24, Link: uint32(dynsymIdx),
	})

	f, err := elffile.Open(b.Bytes())
	require.NoError(t, err)
	return f
}

func newTestSymbolCatalog(t *testing.T) *Catalog {
	t.Helper()
	f := buildSymbolImage(t)
	c, ok := NewSymbolCatalog(f, elffile.NewResolver(f), NewTheme("dark"), tabAccents[TabDisassembly])
	require.True(t, ok)
	return c
}

func TestSymbolCatalogFiltersUndefined(t *testing.T) {
	c := newTestSymbolCatalog(t)

	entries := c.Entries()
	require.Len(t, entries, 10)
	for _, e := range entries {
		assert.NotEqual(t, "external_fn", e.Name)
	}
	assert.Equal(t, -1, c.Cursor(), "starts unselected")
}

func TestCatalogLazyDecode(t *testing.T) {
	c := newTestSymbolCatalog(t)

	for _, e := range c.Entries() {
		assert.False(t, e.Decoded)
		assert.Empty(t, e.Lines)
	}

	c.MoveDown()
	assert.Equal(t, 0, c.Cursor())

	entries := c.Entries()
	assert.True(t, entries[0].Decoded)
	require.Len(t, entries[0].Lines, 4)
	assert.Equal(t, "nop", entries[0].Lines[0].Instruction())
	assert.Equal(t, "ret", entries[0].Lines[3].Instruction())
	for _, e := range entries[1:] {
		assert.False(t, e.Decoded, "only the visited entry decodes")
	}
}

func TestCatalogScrollIndependentOfCursor(t *testing.T) {
	c := newTestSymbolCatalog(t)

	// Select the sixth entry.
	for i := 0; i < 6; i++ {
		c.MoveDown()
	}
	require.Equal(t, 5, c.Cursor())

	c.FocusRight()
	require.Equal(t, FocusContent, c.Focused())
	c.MoveDown()
	assert.Equal(t, 5, c.Cursor(), "cursor does not move while content is focused")
	assert.Equal(t, 1, c.Entries()[5].Scroll)

	c.FocusLeft()
	c.MoveDown()
	assert.Equal(t, 6, c.Cursor())
	assert.Equal(t, 1, c.Entries()[5].Scroll, "scroll positions persist per entry")
	assert.Equal(t, 0, c.Entries()[6].Scroll)
}

func TestCatalogCursorSaturation(t *testing.T) {
	c := newTestSymbolCatalog(t)

	c.MoveUp()
	assert.Equal(t, 9, c.Cursor(), "up from unselected lands on the last entry")

	c.MoveDown()
	assert.Equal(t, 9, c.Cursor(), "down saturates at the last entry")

	for i := 0; i < 20; i++ {
		c.MoveUp()
	}
	assert.Equal(t, 0, c.Cursor(), "up saturates at the first entry")
}

func TestCatalogScrollSaturatesAtZero(t *testing.T) {
	c := newTestSymbolCatalog(t)

	c.MoveDown()
	c.FocusRight()
	c.MoveUp()
	assert.Equal(t, 0, c.Entries()[0].Scroll)

	c.MoveDown()
	c.MoveDown()
	c.MoveUp()
	assert.Equal(t, 1, c.Entries()[0].Scroll)
}

func TestCatalogDecodeIdempotent(t *testing.T) {
	c := newTestSymbolCatalog(t)

	c.MoveDown()
	first := c.Entries()[0].Lines

	// Leaving and revisiting must not re-decode.
	c.MoveDown()
	c.MoveUp()
	assert.Equal(t, 0, c.Cursor())
	same := c.Entries()[0].Lines
	require.Len(t, same, len(first))
	for i := range first {
		assert.Equal(t, first[i].PC, same[i].PC)
	}
}

func TestPLTCatalogEntries(t *testing.T) {
	f := buildPLTImage(t)
	c, ok := NewPLTCatalog(f, elffile.NewResolver(f), NewTheme("dark"), tabAccents[TabPLT])
	require.True(t, ok)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "printf@plt", entries[0].Name)
	assert.Equal(t, uint64(0x2010), entries[0].Addr)
	assert.Equal(t, "malloc@plt", entries[1].Name)
	assert.Equal(t, uint64(0x2020), entries[1].Addr)

	c.MoveDown()
	lines := c.Entries()[0].Lines
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0].Instruction(), "jmp")
}

func TestCatalogOutOfRangeEntry(t *testing.T) {
	sym := buildSymbolImage(t)
	_, ok := NewPLTCatalog(sym, elffile.NewResolver(sym), NewTheme("dark"), tabAccents[TabPLT])
	assert.False(t, ok, "no .plt relocations means no PLT catalog")

	symCat, ok := NewSymbolCatalog(sym, elffile.NewResolver(sym), NewTheme("dark"), tabAccents[TabDisassembly])
	require.True(t, ok)
	symCat.section = ".missing"
	symCat.MoveDown()

	entry := symCat.Entries()[0]
	assert.True(t, entry.Decoded)
	require.Len(t, entry.Lines, 1)
	assert.Equal(t, "Symbol out of range: 00001000", entry.Lines[0].Text())
}

func TestCatalogViewStates(t *testing.T) {
	c := newTestSymbolCatalog(t)

	unselected := c.View(100, 24)
	assert.Contains(t, unselected, "Select a symbol to decompile")
	assert.Contains(t, unselected, "fn0")

	c.MoveDown()
	selected := c.View(100, 24)
	assert.Contains(t, selected, ">> fn0")
	assert.Contains(t, selected, "nop")
	assert.NotContains(t, selected, "Select a symbol to decompile")
}

func TestEmptyPageIgnoresNavigation(t *testing.T) {
	p := newEmptyPage(noSymbolTable, NewTheme("dark"), tabAccents[TabDisassembly])

	p.MoveDown()
	p.MoveUp()
	p.FocusLeft()
	p.FocusRight()

	view := p.View(80, 24)
	assert.Contains(t, view, noSymbolTable)
	assert.True(t, strings.Contains(view, "Error"))
}
