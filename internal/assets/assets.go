// Package assets serves sprites by relative path from an fs.FS.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ecs-arcade/internal/core"
)

// AtlasFile is the atlas file name looked up at the root of the asset FS.
const AtlasFile = "sprites.yaml"

//go:embed defaults/sprites.yaml
var embedded embed.FS

// Sprite is a loaded sprite: a tinted glyph with a native size in world px.
type Sprite struct {
	Path  string
	Glyph rune
	Color core.Color
	Size  core.Vec2
}

type spriteEntry struct {
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type atlasFile struct {
	Sprites map[string]spriteEntry `yaml:"sprites"`
}

// Server resolves sprite paths. It is safe for concurrent use.
type Server struct {
	mu      sync.RWMutex
	sprites map[string]Sprite
}

var (
	defaultOnce   sync.Once
	defaultServer *Server
	defaultErr    error
)

// Default returns the server for the embedded atlas.
func Default() (*Server, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "defaults")
		if err != nil {
			defaultErr = err
			return
		}
		defaultServer, defaultErr = New(sub)
	})
	return defaultServer, defaultErr
}

// FromDir loads the atlas from a directory on disk.
func FromDir(dir string) (*Server, error) {
	return New(os.DirFS(dir))
}

// New reads AtlasFile from fsys and parses every sprite in it.
func New(fsys fs.FS) (*Server, error) {
	data, err := fs.ReadFile(fsys, AtlasFile)
	if err != nil {
		return nil, fmt.Errorf("assets: read atlas: %w", err)
	}

	var af atlasFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("assets: parse atlas: %w", err)
	}

	s := &Server{sprites: make(map[string]Sprite, len(af.Sprites))}
	for path, e := range af.Sprites {
		sp, err := e.sprite(path)
		if err != nil {
			return nil, err
		}
		s.sprites[path] = sp
	}
	return s, nil
}

func (e spriteEntry) sprite(path string) (Sprite, error) {
	glyph, size := utf8.DecodeRuneInString(e.Glyph)
	if glyph == utf8.RuneError || size != len(e.Glyph) {
		return Sprite{}, fmt.Errorf("assets: sprite %q: glyph must be a single character, got %q", path, e.Glyph)
	}
	color, err := core.ParseColor(e.Color)
	if err != nil {
		return Sprite{}, fmt.Errorf("assets: sprite %q: %w", path, err)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return Sprite{}, fmt.Errorf("assets: sprite %q: size must be positive", path)
	}
	return Sprite{
		Path:  path,
		Glyph: glyph,
		Color: color,
		Size:  core.V2(e.Width, e.Height),
	}, nil
}

// Load returns the sprite registered under path.
func (s *Server) Load(path string) (Sprite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.sprites[path]
	if !ok {
		return Sprite{}, fmt.Errorf("assets: no sprite at %q", path)
	}
	return sp, nil
}

// MustLoad is Load for startup code where a missing sprite is a packaging bug.
func (s *Server) MustLoad(path string) Sprite {
	sp, err := s.Load(path)
	if err != nil {
		panic(err)
	}
	return sp
}

// Paths lists every known sprite path in order.
func (s *Server) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.sprites))
	for p := range s.sprites {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
