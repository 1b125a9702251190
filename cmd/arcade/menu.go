package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecs-arcade/internal/games/flappy"
	"github.com/vovakirdan/ecs-arcade/internal/games/water"
	"github.com/vovakirdan/ecs-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Press B in a game to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Annotations: fullscreen,
	RunE:        runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	flappy.SetConfigPath(flagConfig)
	if err := flappy.SetDifficultyPreset(flagDifficulty); err != nil {
		return fmt.Errorf("--difficulty: %w", err)
	}
	water.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunArcade(tui.Options{
		Runtime: runtimeConfig(),
		Store:   store,
		Player:  flagPlayer,
	})
}
