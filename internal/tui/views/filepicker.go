package views

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileSelectedMsg is sent when a file is selected.
type FileSelectedMsg struct {
	Path string
}

var (
	fpPathStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			MarginBottom(1)

	fpDirStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	fpFileStyle = lipgloss.NewStyle().
			Foreground(colorText)

	fpSelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBgAlt)
)

// FileEntry represents a file or directory.
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// FilePickerModel lets the user pick an .apkg deck.
type FilePickerModel struct {
	currentDir string
	entries    []FileEntry
	selected   int
	offset     int

	extensions []string

	err error

	width  int
	height int
}

// NewFilePickerModel creates a file picker starting in startDir, or in the
// home directory when startDir does not exist.
func NewFilePickerModel(startDir string) FilePickerModel {
	if startDir == "" {
		startDir, _ = os.UserHomeDir()
	} else if _, err := os.Stat(startDir); err != nil {
		startDir, _ = os.UserHomeDir()
	}
	if startDir == "" {
		startDir = string(os.PathSeparator)
	}

	m := FilePickerModel{
		currentDir: startDir,
		extensions: []string{".apkg"},
	}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory on display.
func (m FilePickerModel) Dir() string {
	return m.currentDir
}

// Entries returns the listed entries, directories first.
func (m FilePickerModel) Entries() []FileEntry {
	return m.entries
}

func (m *FilePickerModel) loadDir() {
	m.entries = nil
	m.selected = 0
	m.offset = 0
	m.err = nil

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.entries = append(m.entries, FileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []FileEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		fe := FileEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(m.currentDir, entry.Name()),
		}

		if entry.IsDir() {
			dirs = append(dirs, fe)
		} else if m.matchesExtension(entry.Name()) {
			files = append(files, fe)
		}
	}

	byName := func(a, b FileEntry) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func (m *FilePickerModel) matchesExtension(name string) bool {
	if len(m.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return slices.ContainsFunc(m.extensions, func(e string) bool {
		return ext == strings.ToLower(e)
	})
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case "enter", "l", "right":
		if m.selected < len(m.entries) {
			entry := m.entries[m.selected]
			if entry.IsDir {
				m.currentDir = entry.Path
				m.loadDir()
				return m, nil
			}
			return m, func() tea.Msg {
				return FileSelectedMsg{Path: entry.Path}
			}
		}
	case "backspace", "h":
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.currentDir = parent
			m.loadDir()
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			m.currentDir = home
			m.loadDir()
		}
	case "g":
		m.selected = 0
		m.offset = 0
	case "G":
		m.selected = max(len(m.entries)-1, 0)
		m.adjustScroll()
	case "ctrl+d":
		m.selected = min(m.selected+m.visibleHeight()/2, max(len(m.entries)-1, 0))
		m.adjustScroll()
	case "ctrl+u":
		m.selected = max(m.selected-m.visibleHeight()/2, 0)
		m.adjustScroll()
	}

	return m, nil
}

func (m *FilePickerModel) visibleHeight() int {
	return max(m.height-8, 5)
}

func (m *FilePickerModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the file picker.
func (m FilePickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Anki Deck (.apkg)"))
	b.WriteString("\n\n")
	b.WriteString(fpPathStyle.Render(m.currentDir))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	divider := dividerStyle.Render(strings.Repeat("─", max(min(m.width-4, 60), 10)))
	b.WriteString(divider)
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("  (no .apkg files found)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]

		icon := "[FILE] "
		style := fpFileStyle
		if entry.IsDir {
			icon = "[DIR]  "
			style = fpDirStyle
		}

		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = fpSelectedStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(icon + entry.Name))
		b.WriteString("\n")
	}

	if len(m.entries) > m.visibleHeight() {
		b.WriteString(helpStyle.Render(strings.Repeat(" ", 50) + "↕ scroll"))
		b.WriteString("\n")
	}

	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: select • backspace: parent • ~: home • esc: back"))

	return b.String()
}
