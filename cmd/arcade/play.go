package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecs-arcade/internal/platform/tui"
	"github.com/vovakirdan/ecs-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

Controls:
  W/A/S/D, arrows - Move (water) / flap with W or Up (flappy)
  Space           - Flap
  Esc/P           - Pause
  R               - Restart (after game over)
  B, Q/Ctrl+C     - Quit
  Ctrl+S          - Save a text screenshot

Difficulty options (flappy):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play flappy
  arcade play flappy --difficulty hard
  arcade play flappy --config ./my-flappy.yaml
  arcade play water --debug-colliders`,
	Args:        cobra.ExactArgs(1),
	Annotations: fullscreen,
	RunE:        runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the per-game flags shared by play, window and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Name to record scores under")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
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

	if err := tui.Run(game, tui.Options{
		Runtime: runtimeConfig(),
		Store:   store,
		Player:  flagPlayer,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
