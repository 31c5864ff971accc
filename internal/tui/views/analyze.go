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

// AnalyzeModel is the free-text tone analysis view.
type AnalyzeModel struct {
	input   textinput.Model
	catalog *alphabet.Catalog

	panel syllablePanel
	text  string
	err   error

	width  int
	height int
}

// NewAnalyzeModel creates a new analyze view model.
func NewAnalyzeModel(catalog *alphabet.Catalog) AnalyzeModel {
	ti := textinput.New()
	ti.Placeholder = "พิมพ์ภาษาไทย... (type Thai text)"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorAccent)

	return AnalyzeModel{
		input:   ti,
		catalog: catalog,
	}
}

// SetSize updates the view dimensions.
func (m *AnalyzeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether keystrokes go to the text input.
func (m AnalyzeModel) Capturing() bool {
	return m.input.Focused()
}

// Input returns the text currently in the input box.
func (m AnalyzeModel) Input() string {
	return m.input.Value()
}

// Analyze runs the engine on text and shows the result, as if typed.
func (m *AnalyzeModel) Analyze(text string) {
	m.input.SetValue(text)
	m.analyzeInput()
}

// Update handles messages.
func (m AnalyzeModel) Update(msg tea.Msg) (AnalyzeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				m.analyzeInput()
				return m, nil
			case "esc":
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "left", "h":
			m.panel.prev()
			return m, nil
		case "right", "l":
			m.panel.next()
			return m, nil
		case "y":
			return m, m.panel.copyCurrent()
		case "enter", "i", "/":
			return m, m.input.Focus()
		}

	case clearCopiedMsg:
		m.panel.copied = false
		return m, nil
	}

	return m, nil
}

func (m *AnalyzeModel) analyzeInput() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}

	m.text = text
	m.err = nil

	results, err := tone.Analyze(text, m.catalog)
	if err != nil {
		m.err = err
		m.panel.set(nil)
		return
	}
	m.panel.set(results)
	if len(results) > 0 {
		m.input.Blur()
	}
}

// View renders the analyze view.
func (m AnalyzeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tone Analysis"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.text != "" && !anki.ContainsThai(m.text) {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("No Thai script in %q; results are guesses.", m.text)))
		b.WriteString("\n")
	}

	b.WriteString(m.panel.view(m.width))

	b.WriteString("\n")
	switch {
	case m.input.Focused():
		b.WriteString(helpStyle.Render("Type Thai text and press Enter to analyze"))
	case len(m.panel.results) > 1:
		b.WriteString(helpStyle.Render("←/→: syllables • y: copy explanation • enter: edit"))
	default:
		b.WriteString(helpStyle.Render("y: copy explanation • enter: edit"))
	}

	return b.String()
}
