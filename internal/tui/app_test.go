package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunxfancy/ExeViewer/internal/deps"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	f := buildSymbolImage(t)
	info := NewSummaryInfo("/tmp/demo", 1234, time.Unix(0, 0), "ABCD", f)
	list := deps.Collect(f, zerolog.Nop())
	return NewApp(info, f, list, NewTheme("dark"), zerolog.Nop())
}

func TestAppStartsOnSummary(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, TabSummary, app.ActiveTab())

	view := app.View()
	assert.Contains(t, view, "Exe Viewer v1.0")
	assert.Contains(t, view, "/tmp/demo")
}

func TestAppTabSwitching(t *testing.T) {
	app := newTestApp(t)

	keys := []struct {
		press string
		want  Tab
	}{
		{"2", TabSections},
		{"3", TabDisassembly},
		{"4", TabPLT},
		{"5", TabDependencies},
		{"1", TabSummary},
	}
	for _, k := range keys {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k.press)})
		app = model.(*App)
		assert.Equal(t, k.want, app.ActiveTab(), "key %q", k.press)
	}
}

func TestAppQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		app := newTestApp(t)
		_, cmd := app.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.Quit(), cmd())
	}
}

func TestAppRoutesArrowsToActivePage(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	app = model.(*App)
	require.Equal(t, TabDisassembly, app.ActiveTab())

	cat, ok := app.Page(TabDisassembly).(*Catalog)
	require.True(t, ok)
	assert.Equal(t, -1, cat.Cursor())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 0, cat.Cursor())
}

func TestAppMissingPLTFallsBackToEmptyPage(t *testing.T) {
	app := newTestApp(t)

	// The symbol fixture has no .rela.plt, so the fourth tab carries
	// the fixed-message page.
	_, ok := app.Page(TabPLT).(*emptyPage)
	assert.True(t, ok)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	app = model.(*App)
	assert.Contains(t, app.View(), noSymbolTable)
}

func TestAppWindowResize(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.NotEmpty(t, app.View())
}
