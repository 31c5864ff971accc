package views

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/mattn/go-runewidth"
)

var (
	groupTabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	groupTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt).
				Padding(0, 1)

	listItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	listSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3).
			Align(lipgloss.Center)

	cardGlyphStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(1, 4)
)

var classOrder = map[thai.Class]int{thai.ClassMid: 0, thai.ClassHigh: 1, thai.ClassLow: 2}

// AlphabetModel browses the catalog by study group. Each record is shown as
// a flashcard whose back can be hidden for self-testing.
type AlphabetModel struct {
	catalog *alphabet.Catalog

	group    int // index into thai.Groups
	records  []thai.Grapheme
	selected int
	offset   int
	flipped  bool // back of the card visible

	width  int
	height int
}

// NewAlphabetModel creates a new alphabet view model.
func NewAlphabetModel(catalog *alphabet.Catalog) AlphabetModel {
	m := AlphabetModel{catalog: catalog, flipped: true}
	m.loadGroup()
	return m
}

// SetSize updates the view dimensions.
func (m *AlphabetModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Group returns the group on display.
func (m AlphabetModel) Group() thai.AlphabetGroup {
	return thai.Groups[m.group]
}

func (m *AlphabetModel) loadGroup() {
	m.selected = 0
	m.offset = 0
	m.records = nil
	if m.catalog == nil {
		return
	}

	g := thai.Groups[m.group]
	m.records = m.catalog.Group(g)
	switch g {
	case thai.GroupClass:
		slices.SortStableFunc(m.records, func(a, b thai.Grapheme) int {
			return classOrder[a.Class] - classOrder[b.Class]
		})
	case thai.GroupLiveDead:
		slices.SortStableFunc(m.records, func(a, b thai.Grapheme) int {
			return boolRank(*b.IsLive) - boolRank(*a.IsLive)
		})
	case thai.GroupLength:
		slices.SortStableFunc(m.records, func(a, b thai.Grapheme) int {
			return boolRank(*b.IsShort) - boolRank(*a.IsShort)
		})
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Update handles messages.
func (m AlphabetModel) Update(msg tea.Msg) (AlphabetModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.group = (m.group + len(thai.Groups) - 1) % len(thai.Groups)
		m.loadGroup()
	case "right", "l":
		m.group = (m.group + 1) % len(thai.Groups)
		m.loadGroup()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case "down", "j":
		if m.selected < len(m.records)-1 {
			m.selected++
			m.adjustScroll()
		}
	case " ":
		m.flipped = !m.flipped
	case "g":
		m.selected = 0
		m.offset = 0
	case "G":
		m.selected = max(len(m.records)-1, 0)
		m.adjustScroll()
	}

	return m, nil
}

func (m AlphabetModel) visibleHeight() int {
	return max(m.height-8, 5)
}

func (m *AlphabetModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the alphabet view.
func (m AlphabetModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Alphabet"))
	b.WriteString("\n\n")
	b.WriteString(m.renderGroupTabs())
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(helpStyle.Render("No records in this group"))
		b.WriteString("\n")
	} else {
		list := m.renderList()
		card := m.renderCard(m.records[m.selected])
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", card))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: group • ↑/↓: record • space: flip card"))

	return b.String()
}

func (m AlphabetModel) renderGroupTabs() string {
	tabs := make([]string, len(thai.Groups))
	for i, g := range thai.Groups {
		label := strings.ReplaceAll(string(g), "_", "/")
		if i == m.group {
			tabs[i] = groupTabActiveStyle.Render(label)
		} else {
			tabs[i] = groupTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AlphabetModel) renderList() string {
	var lines []string

	end := min(m.offset+m.visibleHeight(), len(m.records))
	for i := m.offset; i < end; i++ {
		r := m.records[i]
		line := runewidth.FillRight(r.Character, 4) + " " + truncate(r.Name, 16)
		if tag := m.groupTag(r); tag != "" {
			line += "  " + tag
		}

		if i == m.selected {
			lines = append(lines, "> "+listSelectedStyle.Render(line))
		} else {
			lines = append(lines, "  "+listItemStyle.Render(line))
		}
	}

	lines = append(lines, "", helpStyle.Render(fmt.Sprintf("%d of %d", m.selected+1, len(m.records))))
	return strings.Join(lines, "\n")
}

// groupTag is the attribute the current group studies.
func (m AlphabetModel) groupTag(r thai.Grapheme) string {
	switch thai.Groups[m.group] {
	case thai.GroupClass:
		return string(r.Class)
	case thai.GroupLiveDead:
		return liveWord(r.IsLive != nil && *r.IsLive)
	case thai.GroupLength:
		return lengthWord(r)
	}
	return ""
}

func (m AlphabetModel) renderCard(r thai.Grapheme) string {
	front := cardGlyphStyle.Render(r.Character)
	if !m.flipped {
		return cardStyle.Render(front + "\n\n" + helpStyle.Render("space: show back"))
	}

	var rows []string
	rows = append(rows, renderRow("Name", valueStyle.Render(r.Name)))
	rows = append(rows, renderRow("Type", valueStyle.Render(string(r.Type))))
	if r.Class != "" {
		rows = append(rows, renderRow("Class", valueStyle.Render(string(r.Class))))
	}
	if r.IPA != "" {
		rows = append(rows, renderRow("IPA", valueStyle.Render(r.IPA)))
	}
	if r.FinalConsonant != "" {
		rows = append(rows, renderRow("As final", valueStyle.Render(r.FinalConsonant)))
	}
	if r.IsLive != nil {
		rows = append(rows, renderRow("Live/dead", valueStyle.Render(liveWord(*r.IsLive))))
	}
	if r.IsShort != nil {
		rows = append(rows, renderRow("Length", valueStyle.Render(lengthWord(r))))
	}
	if r.Example != "" {
		ex := r.Example
		if r.ExampleEnglish != "" {
			ex += " (" + r.ExampleEnglish + ")"
		}
		rows = append(rows, renderRow("Example", valueStyle.Render(ex)))
	}

	return cardStyle.Render(front + "\n\n" + lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(rows, "\n")))
}

func lengthWord(r thai.Grapheme) string {
	if r.Short() {
		return string(thai.Short)
	}
	return string(thai.Long)
}
