// Package views provides the individual views for the unified TUI.
package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#FF6B6B") // titles, errors
	colorSecondary = lipgloss.Color("#4ecdc4") // subtitles, navigation
	colorAccent    = lipgloss.Color("#ffe66d") // syllables
	colorMuted     = lipgloss.Color("#666666") // help text
	colorSuccess   = lipgloss.Color("#a8e6cf")
	colorText      = lipgloss.Color("#f1faee")
	colorLabel     = lipgloss.Color("#a8dadc")
	colorBg        = lipgloss.Color("#1a1a2e")
	colorBgAlt     = lipgloss.Color("#2d3436")
	colorBorder    = lipgloss.Color("#3d5a80")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Background(colorBg).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
)

// Syllable tab styles (for multi-syllable input)
var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 2).
			Margin(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBgAlt).
			Padding(0, 2).
			Margin(0, 1)

	tabToneStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	wordNavStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true).
			Padding(0, 1)

	wordDisplayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 2).
				Margin(1, 0)

	bigSyllableStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBg).
				Padding(3, 12).
				Align(lipgloss.Center)

	toneUnderStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1)

	traceIDStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(14)
)

var confidenceStyles = map[thai.Confidence]lipgloss.Style{
	thai.ConfidenceHigh:   lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	thai.ConfidenceMedium: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	thai.ConfidenceLow:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
}

// toneColors gives each tone its own color.
var toneColors = map[thai.Tone]lipgloss.Color{
	thai.ToneMid:     lipgloss.Color("#f1faee"),
	thai.ToneLow:     lipgloss.Color("#6c9bd2"),
	thai.ToneFalling: lipgloss.Color("#ff6b6b"),
	thai.ToneHigh:    lipgloss.Color("#a8e6cf"),
	thai.ToneRising:  lipgloss.Color("#c39bd3"),
	thai.ToneUnknown: colorMuted,
}

func toneStyle(t thai.Tone) lipgloss.Style {
	c, ok := toneColors[t]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func confidenceStyle(c thai.Confidence) lipgloss.Style {
	if s, ok := confidenceStyles[c]; ok {
		return s
	}
	return valueStyle
}
