package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/clipboard"
	"github.com/eNzyOfficial/gai-er/internal/thai"
	"github.com/eNzyOfficial/gai-er/internal/tui/bigchar"
	"github.com/mattn/go-runewidth"
)

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// syllablePanel shows the analyses of one text, one syllable at a time.
type syllablePanel struct {
	results  []thai.ToneAnalysis
	selected int

	copied  bool
	copyErr error
}

func (p *syllablePanel) set(results []thai.ToneAnalysis) {
	p.results = results
	p.selected = 0
	p.copied = false
	p.copyErr = nil
}

func (p *syllablePanel) prev() {
	if len(p.results) == 0 {
		return
	}
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.results) - 1
	}
}

func (p *syllablePanel) next() {
	if len(p.results) == 0 {
		return
	}
	p.selected++
	if p.selected >= len(p.results) {
		p.selected = 0
	}
}

func (p syllablePanel) current() (thai.ToneAnalysis, bool) {
	if p.selected < 0 || p.selected >= len(p.results) {
		return thai.ToneAnalysis{}, false
	}
	return p.results[p.selected], true
}

// copyCurrent puts the selected syllable's explanation on the clipboard.
func (p *syllablePanel) copyCurrent() tea.Cmd {
	r, ok := p.current()
	if !ok {
		return nil
	}
	if err := clipboard.Write(copyText(r)); err != nil {
		p.copyErr = err
		return nil
	}
	p.copied = true
	p.copyErr = nil
	return clearCopiedAfter(2 * time.Second)
}

func copyText(r thai.ToneAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s tone (%s confidence)\n", r.Syllable, r.Tone, r.Confidence)
	for _, line := range r.Explanation {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (p syllablePanel) view(width int) string {
	if len(p.results) == 0 {
		return ""
	}

	var b strings.Builder
	if len(p.results) > 1 {
		b.WriteString(p.renderWordBar())
		b.WriteString("\n")
	}
	if r, ok := p.current(); ok {
		b.WriteString(p.renderDetail(r, width))
	}
	return b.String()
}

func (p syllablePanel) renderWordBar() string {
	var tabs []string

	for i, r := range p.results {
		label := fmt.Sprintf("%s\n%s", r.Syllable, tabToneStyle.Render(string(r.Tone)))
		if i == p.selected {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	nav := wordNavStyle.Render(fmt.Sprintf("◀ %d/%d ▶", p.selected+1, len(p.results)))
	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	return wordDisplayStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", nav))
}

func (p syllablePanel) renderDetail(r thai.ToneAnalysis, width int) string {
	var b strings.Builder

	contentWidth := max(width-4, 40)

	var display string
	if art := bigchar.GetCached(r.Syllable, 36, 12); art != "" {
		display = lipgloss.NewStyle().Foreground(colorAccent).Render(art)
	} else {
		display = bigSyllableStyle.Render(r.Syllable)
	}
	under := toneUnderStyle.Inherit(toneStyle(r.Tone)).Render(string(r.Tone) + " tone")

	block := lipgloss.JoinVertical(lipgloss.Center, display, under)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(block))
	b.WriteString("\n")

	b.WriteString(renderBreakdown(r))
	b.WriteString("\n")
	b.WriteString(renderTrace(r))
	b.WriteString("\n")
	b.WriteString(renderExplanation(r, contentWidth))
	b.WriteString("\n")

	if p.copied {
		b.WriteString(copiedStyle.Render("Copied!"))
		b.WriteString("\n")
	} else if p.copyErr != nil {
		b.WriteString(errorStyle.Render("Copy failed: " + p.copyErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func renderRow(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func renderBreakdown(r thai.ToneAnalysis) string {
	class := ""
	if r.ConsonantClass != "" {
		class = string(r.ConsonantClass) + " class"
	}

	lines := []string{
		renderRow("Initial", describeGrapheme(r.InitialConsonant, class)),
		renderRow("Vowel", describeSign(r.Vowel, "implicit")),
		renderRow("Final", describeGrapheme(r.FinalConsonant, "")),
		renderRow("Tone mark", describeSign(r.ToneMark, "none")),
		renderRow("Syllable", valueStyle.Render(liveWord(r.IsLive)+", "+string(r.VowelLength)+" vowel")),
		renderRow("Tone", toneStyle(r.Tone).Render(string(r.Tone))),
		renderRow("Confidence", confidenceStyle(r.Confidence).Render(string(r.Confidence))),
	}

	return boxStyle.Render(subtitleStyle.Render("Tone Analysis") + "\n\n" + strings.Join(lines, "\n"))
}

func renderTrace(r thai.ToneAnalysis) string {
	lines := make([]string, 0, len(r.RuleTrace))
	for _, step := range r.RuleTrace {
		lines = append(lines, traceIDStyle.Render(step.ID)+" "+valueStyle.Render(step.Label)+
			"  "+subtitleStyle.Render(step.Value))
	}
	return boxStyle.Render(subtitleStyle.Render("Rule Trace") + "\n\n" + strings.Join(lines, "\n"))
}

func renderExplanation(r thai.ToneAnalysis, width int) string {
	lines := make([]string, 0, len(r.Explanation))
	for _, e := range r.Explanation {
		lines = append(lines, "• "+wordWrap(e, width-8))
	}
	return boxStyle.Render(subtitleStyle.Render("Explanation") + "\n\n" + valueStyle.Render(strings.Join(lines, "\n")))
}

func describeGrapheme(g *thai.Grapheme, extra string) string {
	if g == nil {
		return helpStyle.Render("none")
	}
	s := fmt.Sprintf("%s (%s)", g.Character, g.Name)
	if extra != "" {
		s += " " + extra
	}
	return valueStyle.Render(s)
}

func describeSign(s *thai.Sign, none string) string {
	if s == nil {
		return helpStyle.Render(none)
	}
	out := fmt.Sprintf("%s (%s)", s.Character, s.Name)
	if s.IsSynthesized() {
		out += " " + helpStyle.Render("[inferred]")
	}
	return valueStyle.Render(out)
}

func liveWord(live bool) string {
	if live {
		return "live"
	}
	return "dead"
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
