package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/anki"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewAnalyze ViewType = iota
	ViewAlphabet
	ViewFilePicker
	ViewDeck
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// PackageLoadedMsg is sent when an Anki package is loaded
type PackageLoadedMsg struct {
	Package *anki.Package
	Path    string
	Err     error
}

// Options configures a new AppModel.
type Options struct {
	Catalog    *alphabet.Catalog
	Config     *config.Config
	ConfigPath string
	Text       string // analyzed on start when non-empty
	DeckDir    string // file picker start directory
}

// AppModel is the main TUI model
type AppModel struct {
	catalog *alphabet.Catalog
	config  *config.Config

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	analyzeView    views.AnalyzeModel
	alphabetView   views.AlphabetModel
	filePickerView views.FilePickerModel
	deckView       views.DeckModel
	settingsView   views.SettingsModel

	// Loaded Anki package
	ankiPackage *anki.Package
	loading     string
	loadErr     error

	showHelp bool
}

// NewApp creates a new TUI application.
func NewApp(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = alphabet.Default()
	}

	menuItems := []MenuItem{
		{Label: "Analyze", View: ViewAnalyze, Shortcut: "1"},
		{Label: "Alphabet", View: ViewAlphabet, Shortcut: "2"},
		{Label: "Open Deck", View: ViewFilePicker, Shortcut: "3"},
		{Label: "Deck", View: ViewDeck, Shortcut: "4"},
		{Label: "Settings", View: ViewSettings, Shortcut: "5"},
	}

	app := AppModel{
		catalog:      catalog,
		config:       cfg,
		sidebarWidth: 18,
		currentView:  ViewAnalyze,
		menuItems:    menuItems,

		analyzeView:    views.NewAnalyzeModel(catalog),
		alphabetView:   views.NewAlphabetModel(catalog),
		filePickerView: views.NewFilePickerModel(opts.DeckDir),
		deckView:       views.NewDeckModel(catalog),
		settingsView:   views.NewSettingsModel(cfg, opts.ConfigPath, catalog),
	}

	if opts.Text != "" {
		app.analyzeView.Analyze(opts.Text)
	}

	return app
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// CurrentView returns the view on display.
func (m AppModel) CurrentView() ViewType {
	return m.currentView
}

// Package returns the loaded deck, if any.
func (m AppModel) Package() *anki.Package {
	return m.ankiPackage
}

// Close releases the loaded deck.
func (m AppModel) Close() error {
	if m.ankiPackage == nil {
		return nil
	}
	return m.ankiPackage.Close()
}

// capturing reports whether the active view wants raw keystrokes.
func (m AppModel) capturing() bool {
	if m.sidebarActive {
		return false
	}
	switch m.currentView {
	case ViewAnalyze:
		return m.analyzeView.Capturing()
	case ViewDeck:
		return m.deckView.Capturing()
	}
	return false
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Text entry keeps every other key except tab.
		if m.capturing() {
			if msg.String() == "tab" {
				m.sidebarActive = true
				return m, nil
			}
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "1", "2", "3", "4", "5":
			m.switchTo(m.menuItems[int(msg.String()[0]-'1')].View)
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.analyzeView.SetSize(contentWidth, contentHeight)
		m.alphabetView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.deckView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.FileSelectedMsg:
		m.loading = msg.Path
		m.loadErr = nil
		return m, loadAnkiPackage(msg.Path)

	case PackageLoadedMsg:
		m.loading = ""
		if msg.Err != nil {
			slog.Warn("opening deck failed", "path", msg.Path, "err", msg.Err)
			m.loadErr = msg.Err
			return m, nil
		}
		if m.ankiPackage != nil {
			if err := m.ankiPackage.Close(); err != nil {
				slog.Warn("closing previous deck", "err", err)
			}
		}
		m.ankiPackage = msg.Package
		m.deckView.SetPackage(msg.Package, filepath.Base(msg.Path), m.config.Anki.Field)
		m.switchTo(ViewDeck)
		return m, nil
	}

	// Delegate to active view if not in sidebar mode
	if !m.sidebarActive {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewAnalyze:
			m.analyzeView, cmd = m.analyzeView.Update(msg)
		case ViewAlphabet:
			m.alphabetView, cmd = m.alphabetView.Update(msg)
		case ViewFilePicker:
			m.filePickerView, cmd = m.filePickerView.Update(msg)
		case ViewDeck:
			m.deckView, cmd = m.deckView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewAnalyze:
		content = m.analyzeView.View()
	case ViewAlphabet:
		content = m.alphabetView.View()
	case ViewFilePicker:
		content = m.filePickerView.View()
	case ViewDeck:
		content = m.deckView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	if status := m.renderStatus(); status != "" {
		content = status + "\n\n" + content
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

func (m AppModel) renderStatus() string {
	switch {
	case m.loading != "":
		return StatusLoadingStyle.Render("Opening " + filepath.Base(m.loading) + "...")
	case m.loadErr != nil:
		return StatusErrorStyle.Render(fmt.Sprintf("Could not open deck: %v", m.loadErr))
	}
	return ""
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" ไก่ gai-er "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// loadAnkiPackage loads an Anki package asynchronously
func loadAnkiPackage(path string) tea.Cmd {
	return func() tea.Msg {
		pkg, err := anki.OpenPackage(path)
		return PackageLoadedMsg{Package: pkg, Path: path, Err: err}
	}
}

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Global Keys", [][2]string{
		{"1-5", "Switch views"},
		{"tab", "Toggle sidebar focus"},
		{"?", "Show this help"},
		{"q / esc esc", "Quit"},
	}},
	{"Analyze", [][2]string{
		{"enter", "Analyze text / edit"},
		{"esc", "Leave the input"},
		{"←/→", "Navigate syllables"},
		{"y", "Copy explanation"},
	}},
	{"Alphabet", [][2]string{
		{"←/→", "Switch group"},
		{"↑/↓", "Select record"},
		{"space", "Flip card"},
	}},
	{"Deck", [][2]string{
		{"↑/↓", "Navigate notes"},
		{"←/→", "Navigate syllables"},
		{"/", "Search"},
		{"c", "Clear search"},
	}},
	{"File Picker", [][2]string{
		{"enter", "Select file/enter dir"},
		{"backspace", "Go to parent dir"},
		{"~", "Go to home dir"},
	}},
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := HelpTitleStyle.Render("gai-er - Thai tone rules") + "\n"

	for _, s := range helpSections {
		helpText += HelpSectionStyle.Render(s.title) + "\n"
		for _, k := range s.keys {
			helpText += HelpKeyStyle.Render(k[0]) + HelpDescStyle.Render(k[1]) + "\n"
		}
	}

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
