// platformer is Robo Runner, a side-scrolling platformer for the terminal.
//
// Usage:
//
//	platformer play [mode]     - Play the campaign or endless mode
//	platformer menu            - Title screen with level select and scores
//	platformer list            - List game modes
//	platformer levels [dir]    - List and validate level files
//	platformer scores [mode]   - Show high scores and recent runs
//	platformer serve           - Serve the game over SSH
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 60)
//	--seed <value>        - Seed for generated levels
//	--db <path>           - Scores database (default: ~/.platformer/scores.db)
//	--levels <dir>        - Read level files from a directory
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Log file (default: ~/.platformer/platformer.log)
//	--debug               - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Robo Runner - a platformer in your terminal",
	Long: `Robo Runner is a side-scrolling platformer for the terminal.
Walk and jump across tile maps, collect items, avoid the red spikes and
leave each map on the right to reach the next level.

Available commands:
  play     - Play a mode directly
  menu     - Title screen with level select and high scores
  list     - Show game modes
  levels   - List and validate level files
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play

Examples:
  platformer play
  platformer play platformer_endless --seed 42
  platformer play --level 3 --difficulty hard
  platformer levels ./my-levels
  platformer serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		platformer.SetConfigPath(flagConfig)
		platformer.SetDifficultyPreset(flagDifficulty)
		platformer.SetLevelsDir(flagLevelsDir)
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Seed for generated levels (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory with Level_NN.yaml files (default: built-in levels)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "~/.platformer/platformer.log", "Log file path (empty disables logging)")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
