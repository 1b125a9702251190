package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/platform/window"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

var (
	flagCols int
	flagRows int
)

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play a game in a desktop window",
	Long: `Open the specified game in a desktop window.

The window shows the same cell grid as the terminal frontend, drawn as
tinted blocks. Q or B closes the window.

Examples:
  arcade window flappy
  arcade window water --cols 100 --rows 30`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	addGameFlags(windowCmd)
	windowCmd.Flags().IntVar(&flagCols, "cols", 80, "Window width in cells")
	windowCmd.Flags().IntVar(&flagRows, "rows", 24, "Window height in cells")
}

func runWindow(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}

	if err := applyGameFlags(gameID); err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return window.Run(game, window.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  flagCols,
			ScreenH:  flagRows,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Player: flagPlayer,
	})
}
