package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title screen",
	Long: `Start with the title screen. Pick the campaign, endless mode, a
specific level or the high score table. Pausing a game and pressing B
returns to the title screen.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  platformer menu
  platformer menu --levels ./my-levels`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	e := newEnv(true)
	opts := tui.Options{Logger: e.logger}
	if e.sound != nil {
		opts.Sound = e.sound
	}

	err := tui.RunSession(e.store, levelInfos(e.logger), runtimeConfig(), opts)
	e.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
