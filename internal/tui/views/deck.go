package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/anki"
	"github.com/eNzyOfficial/gai-er/internal/tone"
)

var (
	deckCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	deckFieldLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	deckSearchBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 1)

	deckNoDataStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			Align(lipgloss.Center)
)

// DeckModel steps through the Thai notes of an Anki deck and analyzes the
// tones of each.
type DeckModel struct {
	pkg     *anki.Package
	path    string
	catalog *alphabet.Catalog

	field    string // note field holding Thai text
	notes    []*anki.Note
	filtered []*anki.Note
	current  int

	panel syllablePanel

	searchInput textinput.Model
	searching   bool
	searchTerm  string

	width  int
	height int
}

// NewDeckModel creates a new deck view model.
func NewDeckModel(catalog *alphabet.Catalog) DeckModel {
	si := textinput.New()
	si.Placeholder = "Search..."
	si.CharLimit = 50
	si.Width = 30

	return DeckModel{
		catalog:     catalog,
		searchInput: si,
	}
}

// SetPackage sets the deck to browse. An empty field auto-detects the first
// field with Thai text.
func (m *DeckModel) SetPackage(pkg *anki.Package, path, field string) {
	m.pkg = pkg
	m.path = path
	m.searchTerm = ""
	m.searching = false
	m.searchInput.SetValue("")
	m.notes = nil
	m.filtered = nil
	m.current = 0
	m.panel.set(nil)

	if pkg == nil {
		return
	}

	if field == "" {
		field = pkg.DetectThaiField()
	}
	m.field = field

	for _, note := range pkg.Notes {
		if anki.ContainsThai(anki.StripHTML(pkg.FieldValue(note, field))) {
			m.notes = append(m.notes, note)
		}
	}
	m.filtered = m.notes

	if len(m.filtered) > 0 {
		m.loadCurrentNote()
	}
}

// SetSize updates the view dimensions.
func (m *DeckModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether keystrokes go to the search box.
func (m DeckModel) Capturing() bool {
	return m.searching
}

// Field returns the note field being analyzed.
func (m DeckModel) Field() string {
	return m.field
}

// Update handles messages.
func (m DeckModel) Update(msg tea.Msg) (DeckModel, tea.Cmd) {
	if m.pkg == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.searchInput.Blur()
				m.searchTerm = m.searchInput.Value()
				m.applyFilter()
				return m, nil
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				m.searchInput.SetValue(m.searchTerm)
				return m, nil
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "up", "k":
			if m.current > 0 {
				m.current--
				m.loadCurrentNote()
			}
		case "down", "j":
			if m.current < len(m.filtered)-1 {
				m.current++
				m.loadCurrentNote()
			}
		case "left", "h":
			m.panel.prev()
		case "right", "l":
			m.panel.next()
		case "/":
			m.searching = true
			return m, m.searchInput.Focus()
		case "c":
			m.searchTerm = ""
			m.searchInput.SetValue("")
			m.applyFilter()
		case "y":
			return m, m.panel.copyCurrent()
		}
		return m, nil

	case clearCopiedMsg:
		m.panel.copied = false
	}

	return m, nil
}

func (m *DeckModel) loadCurrentNote() {
	if m.current >= len(m.filtered) {
		m.panel.set(nil)
		return
	}

	text := anki.StripHTML(m.pkg.FieldValue(m.filtered[m.current], m.field))
	results, err := tone.Analyze(text, m.catalog)
	if err != nil {
		results = nil
	}
	m.panel.set(results)
}

func (m *DeckModel) applyFilter() {
	if m.searchTerm == "" {
		m.filtered = m.notes
	} else {
		m.filtered = nil
		term := strings.ToLower(m.searchTerm)
		for _, note := range m.notes {
			for _, field := range note.Fields {
				if strings.Contains(strings.ToLower(anki.StripHTML(field)), term) {
					m.filtered = append(m.filtered, note)
					break
				}
			}
		}
	}
	m.current = 0
	m.loadCurrentNote()
}

// View renders the deck view.
func (m DeckModel) View() string {
	if m.pkg == nil {
		return m.renderNoPackage()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Deck"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s • field %q", m.path, m.field)))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(deckSearchBoxStyle.Render("Search: " + m.searchInput.View()))
		b.WriteString("\n\n")
	} else if m.searchTerm != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("Filter: %q (press 'c' to clear)", m.searchTerm)))
		b.WriteString("\n\n")
	}

	switch {
	case len(m.notes) == 0:
		b.WriteString(deckNoDataStyle.Render("No notes with Thai text in this deck"))
		b.WriteString("\n")
	case len(m.filtered) == 0:
		b.WriteString(helpStyle.Render("No notes match your search"))
		b.WriteString("\n")
	default:
		b.WriteString(deckCountStyle.Render(fmt.Sprintf("Note %d of %d", m.current+1, len(m.filtered))))
		b.WriteString("\n\n")
		b.WriteString(m.renderNoteView())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: notes • ←/→: syllables • /: search • y: copy"))

	return b.String()
}

func (m DeckModel) renderNoPackage() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(2, 4).
		Align(lipgloss.Center)

	content := deckNoDataStyle.Render("No Anki Deck Loaded") + "\n\n" +
		helpStyle.Render("Press '3' or go to \"Open Deck\"\nto load an .apkg file")

	return "\n\n" + box.Render(content)
}

func (m DeckModel) renderNoteView() string {
	var b strings.Builder

	note := m.filtered[m.current]
	names := m.pkg.FieldNames(note)

	for i, value := range note.Fields {
		if i >= 3 {
			break
		}
		name := fmt.Sprintf("Field %d", i)
		if i < len(names) {
			name = names[i]
		}
		b.WriteString(deckFieldLabelStyle.Render(name + ": "))
		b.WriteString(valueStyle.Render(truncate(anki.StripHTML(value), 80)))
		b.WriteString("\n")
	}

	b.WriteString(m.panel.view(m.width))
	return b.String()
}
