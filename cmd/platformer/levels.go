package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List and validate level files",
	Long: `Lists the Level_NN.yaml files of a directory (or --levels, or the
built-in levels) with their size and content, and reports files that
cannot be played. Exits with status 1 if any file is broken.

Examples:
  platformer levels
  platformer levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	loader := levelLoader()
	if len(args) == 1 {
		loader = levels.NewDirLoader(args[0])
	}

	infos, err := loader.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Levels in %s\n\n", loader)
	if len(infos) == 0 {
		fmt.Println("No level files found. Generated layouts will be used.")
		return
	}

	fmt.Printf("  %-3s  %-16s  %-7s  %-5s  %s\n", "#", "File", "Size", "Items", "Hazards")
	fmt.Printf("  %-3s  %-16s  %-7s  %-5s  %s\n", "-", "----", "----", "-----", "-------")

	broken := 0
	for _, info := range infos {
		if info.Err != nil {
			broken++
			fmt.Printf("  %-3d  %-16s  ERROR: %v\n", info.Number, info.File, info.Err)
			continue
		}
		size := fmt.Sprintf("%dx%d", info.Width, info.Height)
		fmt.Printf("  %-3d  %-16s  %-7s  %-5d  %d\n", info.Number, info.File, size, info.Items, info.Hazards)
	}

	fmt.Println()
	fmt.Printf("Campaign length: %d consecutive levels\n", loader.Count())
	if broken > 0 {
		fmt.Fprintf(os.Stderr, "%d broken level file(s)\n", broken)
		os.Exit(1)
	}
}
