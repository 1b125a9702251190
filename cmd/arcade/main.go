// arcade hosts small ECS games in the terminal, over SSH, or in a window.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade window <game>     - Play a game in a desktop window
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores or per-game statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--assets <dir>        - Load the sprite atlas from a directory
//	--debug-colliders     - Outline collider shapes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/ecs-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/ecs-arcade/internal/games/water"
)

var (
	flagFPS            int
	flagSeed           int64
	flagDBPath         string
	flagLogLevel       string
	flagLogFile        string
	flagAssets         string
	flagDebugColliders bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "ECS Arcade - small ECS games in your terminal",
	Long: `ECS Arcade hosts games built on an entity-component-system engine.
Play them in the terminal, over SSH, or in a desktop window.

Available commands:
  list     - Show all available games
  play     - Play a specific game in the terminal
  window   - Play a specific game in a window
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play flappy
  arcade play water --debug-colliders
  arcade window flappy --difficulty hard
  arcade serve --ssh :2222
  arcade scores flappy`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagAssets, "assets", "", "Directory holding a sprites.yaml atlas")
	pf.BoolVar(&flagDebugColliders, "debug-colliders", false, "Outline collider shapes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
