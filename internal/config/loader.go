package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// LocalDir is the project-relative directory searched for config files.
var LocalDir = "configs"

// LoadFlappy loads the Flappy configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, defaultFlappyYAML, DefaultFlappyConfig)
}

// LoadWater loads the water demo configuration.
// Search order: customPath -> ~/.arcade/configs/water.yaml -> ./configs/water.yaml -> embedded default
func LoadWater(customPath string) (WaterConfig, error) {
	return load("water", customPath, defaultWaterYAML, DefaultWaterConfig)
}

// load decodes the first readable source on top of the hardcoded defaults,
// so a file only needs the keys it changes.
func load[T validator](id, customPath string, embedded []byte, fallback func() T) (T, error) {
	logger := log.Default().WithPrefix("config")
	file := id + ".yaml"

	// An explicit path must work; anything else falls through.
	if customPath != "" {
		cfg := fallback()
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		logger.Debug("loaded config", "game", id, "source", customPath)
		return checked(cfg, customPath)
	}

	candidates := []string{userConfigPath(file), filepath.Join(LocalDir, file)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg := fallback()
		err := decodeFile(path, &cfg)
		if err == nil {
			logger.Debug("loaded config", "game", id, "source", path)
			return checked(cfg, path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("skipping config", "game", id, "source", path, "err", err)
		}
	}

	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		logger.Warn("embedded config unreadable, using built-in values", "game", id, "err", err)
		return fallback(), nil
	}
	logger.Debug("loaded config", "game", id, "source", "embedded")
	return checked(cfg, "embedded "+file)
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func checked[T validator](cfg T, source string) (T, error) {
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
