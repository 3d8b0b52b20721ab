// Package tui implements the tabbed terminal interface: a summary
// page, the section table, two lazily decoded symbol catalogs and the
// dependency browser.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sunxfancy/ExeViewer/internal/deps"
	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// Tab indexes the five pages.
type Tab int

const (
	TabSummary Tab = iota
	TabSections
	TabDisassembly
	TabPLT
	TabDependencies

	tabCount = 5
)

var tabTitles = [tabCount]string{
	"Summary",
	"Sections",
	"Disassembly",
	"Dynamic Symbols & PLT",
	"Dependencies",
}

const noSymbolTable = "This file does not contain a symbol table"

// App is the bubbletea model for one inspection session.
type App struct {
	pages  [tabCount]page
	active Tab

	keys   keyMap
	theme  Theme
	logger zerolog.Logger

	width  int
	height int
}

// NewApp assembles the pages for the given file. Catalogs whose
// backing table is missing fall back to a fixed-message page.
func NewApp(info SummaryInfo, f *elffile.File, list *deps.List, theme Theme, logger zerolog.Logger) *App {
	app := &App{
		keys:   newKeyMap(),
		theme:  theme,
		logger: logger.With().Str("component", "tui").Logger(),
	}

	res := elffile.NewResolver(f)

	app.pages[TabSummary] = newSummaryPage(info, theme, tabAccents[TabSummary])
	app.pages[TabSections] = newSectionsPage(f, theme, tabAccents[TabSections])

	if c, ok := NewSymbolCatalog(f, res, theme, tabAccents[TabDisassembly]); ok {
		app.pages[TabDisassembly] = c
	} else {
		app.pages[TabDisassembly] = newEmptyPage(noSymbolTable, theme, tabAccents[TabDisassembly])
	}

	if c, ok := NewPLTCatalog(f, res, theme, tabAccents[TabPLT]); ok {
		app.pages[TabPLT] = c
	} else {
		app.pages[TabPLT] = newEmptyPage(noSymbolTable, theme, tabAccents[TabPLT])
	}

	app.pages[TabDependencies] = newDepsPage(list, theme, tabAccents[TabDependencies])

	app.logger.Info().Str("file", info.Path).Msg("session started")
	return app
}

// ActiveTab returns the currently selected tab.
func (a *App) ActiveTab() Tab { return a.active }

// Page returns the page behind a tab.
func (a *App) Page(t Tab) page { return a.pages[t] }

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Up):
			a.pages[a.active].MoveUp()
		case key.Matches(msg, a.keys.Down):
			a.pages[a.active].MoveDown()
		case key.Matches(msg, a.keys.Left):
			a.pages[a.active].FocusLeft()
		case key.Matches(msg, a.keys.Right):
			a.pages[a.active].FocusRight()
		default:
			for i := range a.keys.Tabs {
				if key.Matches(msg, a.keys.Tabs[i]) {
					a.active = Tab(i)
					break
				}
			}
		}
	}
	return a, nil
}

func (a *App) View() string {
	width, height := a.width, a.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	header := a.viewHeader(width)
	footer := a.viewFooter(width)
	body := a.pages[a.active].View(width, height-2)

	return header + "\n" + body + "\n" + footer
}

func (a *App) viewHeader(width int) string {
	var tabs []string
	for i, title := range tabTitles {
		style := lipgloss.NewStyle().Foreground(a.theme.Dim).Padding(0, 1)
		if Tab(i) == a.active {
			style = lipgloss.NewStyle().
				Foreground(a.theme.Highlight).
				Background(tabAccents[i]).
				Bold(true).
				Padding(0, 1)
		}
		tabs = append(tabs, style.Render(title))
	}
	bar := strings.Join(tabs, " ")
	title := lipgloss.NewStyle().Bold(true).Render("Exe Viewer v1.0   ")

	gap := width - lipgloss.Width(bar) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}
	return bar + strings.Repeat(" ", gap) + title
}

func (a *App) viewFooter(width int) string {
	help := "1-5 select tabs  |  ◄ ► to move between components  |  Press q to quit"
	return lipgloss.NewStyle().
		Foreground(a.theme.Dim).
		Width(width).
		Align(lipgloss.Center).
		Render(help)
}
