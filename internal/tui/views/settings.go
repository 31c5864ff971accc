package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/alphabet"
	"github.com/eNzyOfficial/gai-er/internal/config"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/eNzyOfficial/gai-er/internal/tone"
	"github.com/mattn/go-runewidth"
)

var (
	settingsPathStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorLabel)
)

var settingsTabs = []string{"Config", "Catalog", "Tone Rules"}

// SettingsModel shows the active configuration, the catalog summary and
// the tone rule chart.
type SettingsModel struct {
	config     *config.Config
	configPath string
	catalog    *alphabet.Catalog

	tab     int
	scrollY int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configPath string, catalog *alphabet.Catalog) SettingsModel {
	return SettingsModel{
		config:     cfg,
		configPath: configPath,
		catalog:    catalog,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "right", "l":
		m.tab = (m.tab + 1) % len(settingsTabs)
		m.scrollY = 0
	case "shift+tab", "left", "h":
		m.tab = (m.tab + len(settingsTabs) - 1) % len(settingsTabs)
		m.scrollY = 0
	case "j", "down":
		m.scrollY++
	case "k", "up":
		if m.scrollY > 0 {
			m.scrollY--
		}
	case "g":
		m.scrollY = 0
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	path := m.configPath
	if path == "" {
		path = "(built-in defaults)"
	}
	b.WriteString(settingsPathStyle.Render("Config: " + path))
	b.WriteString("\n\n")

	var tabs []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabs = append(tabs, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(min(m.width-4, 60), 10))))
	b.WriteString("\n\n")

	var content string
	switch m.tab {
	case 0:
		content = m.renderConfig()
	case 1:
		content = m.renderCatalog()
	case 2:
		content = renderToneChart()
	}
	b.WriteString(scroll(content, m.scrollY, max(m.height-12, 5)))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: switch tabs • j/k: scroll"))

	return b.String()
}

func (m SettingsModel) renderConfig() string {
	cfg := config.Default()
	if m.config != nil {
		cfg = *m.config
	}

	catalog := cfg.Catalog
	if catalog == "" {
		catalog = "(built-in)"
	}
	field := cfg.Anki.Field
	if field == "" {
		field = "(auto-detect)"
	}

	rows := []string{
		renderRow("Catalog", valueStyle.Render(catalog)),
		renderRow("Format", valueStyle.Render(cfg.Format)),
		"",
		settingsHeaderStyle.Render("Anki"),
		renderRow("Field", valueStyle.Render(field)),
		renderRow("Workers", valueStyle.Render(fmt.Sprint(cfg.Anki.Workers))),
		renderRow("Suffix", valueStyle.Render(cfg.Anki.OutputSuffix)),
	}
	return strings.Join(rows, "\n")
}

func (m SettingsModel) renderCatalog() string {
	if m.catalog == nil {
		return helpStyle.Render("No catalog loaded")
	}

	rows := []string{renderRow("Records", valueStyle.Render(fmt.Sprint(m.catalog.Len()))), ""}
	for _, g := range thai.Groups {
		rows = append(rows, renderRow(string(g), valueStyle.Render(fmt.Sprint(len(m.catalog.Group(g))))))
	}

	byClass := map[thai.Class]int{}
	for _, r := range m.catalog.Group(thai.GroupConsonant) {
		byClass[r.Class]++
	}
	rows = append(rows, "", settingsHeaderStyle.Render("Consonants by class"))
	for _, c := range []thai.Class{thai.ClassMid, thai.ClassHigh, thai.ClassLow} {
		rows = append(rows, renderRow(string(c), valueStyle.Render(fmt.Sprint(byClass[c]))))
	}
	return strings.Join(rows, "\n")
}

// renderToneChart builds the class x mark chart from the rule evaluator.
func renderToneChart() string {
	classes := []thai.Class{thai.ClassMid, thai.ClassHigh, thai.ClassLow}
	columns := []struct {
		label  string
		mark   rune
		live   bool
		length thai.VowelLength
	}{
		{"live", 0, true, thai.Long},
		{"dead short", 0, false, thai.Short},
		{"dead long", 0, false, thai.Long},
		{"่", '่', true, thai.Long},
		{"้", '้', true, thai.Long},
		{"๊", '๊', true, thai.Long},
		{"๋", '๋', true, thai.Long},
	}

	const cell = 11
	var b strings.Builder

	b.WriteString(runewidth.FillRight("", 6))
	for _, col := range columns {
		label := col.label
		if col.mark != 0 {
			label = "◌" + label
		}
		b.WriteString(settingsHeaderStyle.Render(runewidth.FillRight(label, cell)))
	}
	b.WriteString("\n")

	for _, class := range classes {
		b.WriteString(labelStyle.Width(6).Render(string(class)))
		for _, col := range columns {
			t := tone.Evaluate(class, col.mark, col.live, col.length)
			text := string(t)
			if t == thai.ToneUnknown {
				text = "-"
			}
			b.WriteString(toneStyle(t).Render(runewidth.FillRight(text, cell)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Low class dead syllables: short vowel → High, long vowel → Falling."))
	return b.String()
}

func scroll(content string, offset, height int) string {
	lines := strings.Split(content, "\n")
	offset = min(offset, max(len(lines)-1, 0))
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}
