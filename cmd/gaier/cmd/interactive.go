package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive [text]...",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Features:
  - Type Thai text to see the tone of each syllable
  - Study the alphabet by class, live/dead and vowel length
  - Step through the Thai notes of an Anki deck
  - Copy a syllable's explanation to the clipboard

Any text given is analyzed straight away.

Controls:
  Enter   Analyze text
  ←/→     Move between syllables
  y       Copy explanation
  ?       Help
  Esc     Sidebar / quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
