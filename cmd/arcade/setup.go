package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ecs-arcade/internal/assets"
	"github.com/vovakirdan/ecs-arcade/internal/core"
	"github.com/vovakirdan/ecs-arcade/internal/games/flappy"
	"github.com/vovakirdan/ecs-arcade/internal/games/water"
	"github.com/vovakirdan/ecs-arcade/internal/logging"
	"github.com/vovakirdan/ecs-arcade/internal/storage"
)

// annotationFullscreen marks commands that own the terminal; their logs are
// dropped unless --log-file is set.
const annotationFullscreen = "fullscreen"

var fullscreen = map[string]string{annotationFullscreen: "true"}

// setup runs before every command: logging, asset overrides and game options.
func setup(cmd *cobra.Command, _ []string) error {
	var fallback io.Writer = os.Stderr
	if cmd.Annotations[annotationFullscreen] == "true" {
		fallback = io.Discard
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level:    flagLogLevel,
		File:     flagLogFile,
		Fallback: fallback,
	})
	if err != nil {
		return err
	}
	cobra.OnFinalize(func() { closer.Close() })

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if flagAssets != "" {
		srv, err := assets.FromDir(flagAssets)
		if err != nil {
			return err
		}
		flappy.SetAssets(srv)
		water.SetAssets(srv)
		logger.Debug("sprite atlas loaded", "dir", flagAssets, "sprites", len(srv.Paths()))
	}
	flappy.SetDebugColliders(flagDebugColliders)
	water.SetDebugColliders(flagDebugColliders)
	return nil
}

// applyGameFlags passes the play-time config flags to the game about to be
// created.
func applyGameFlags(gameID string) error {
	switch gameID {
	case "flappy":
		flappy.SetConfigPath(flagConfig)
		if err := flappy.SetDifficultyPreset(flagDifficulty); err != nil {
			return fmt.Errorf("--difficulty: %w", err)
		}
	case "water":
		water.SetConfigPath(flagConfig)
	}
	return nil
}

// runtimeConfig sizes the runtime to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("scores will not be saved", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
