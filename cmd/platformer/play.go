package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	flagStartLevel int
	flagWindowed   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Robo Runner",
	Long: `Start playing. The mode defaults to the campaign ("platformer");
"platformer_endless" plays generated levels only.

Controls:
  A/Left, D/Right  - Walk
  W/Space/Up       - Jump
  F11/F            - Toggle fullscreen
  P/Esc            - Pause
  R                - Restart the run
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty presets change how quickly generated levels get harder:
  easy, normal, hard, fixed

Examples:
  platformer play
  platformer play --level 2
  platformer play platformer_endless --seed 7 --difficulty hard
  platformer play --levels ./my-levels --config ./platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 1, "Campaign level to start on")
	playCmd.Flags().BoolVar(&flagWindowed, "windowed", false, "Start inline instead of on the alternate screen")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "platformer"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available modes.")
		os.Exit(1)
	}

	platformer.SetStartLevel(flagStartLevel)
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	e := newEnv(true)
	opts := tui.Options{
		Logger:     e.logger,
		Fullscreen: !flagWindowed,
	}
	if e.store != nil {
		opts.Store = e.store
	}
	if e.sound != nil {
		opts.Sound = e.sound
	}

	runErr := tui.Run(game, runtimeConfig(), opts)
	e.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
