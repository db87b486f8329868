package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"noteboard/internal/canvas"
)

const (
	defaultNoteText    = "New note"
	defaultHalfWidth   = 100.0
	defaultHalfHeight  = 50.0
	defaultPaletteSize = 5
	defaultSampleSize  = 64
	defaultWindowW     = 1440
	defaultWindowH     = 900
)

// Config is the whole noteboard configuration file.
type Config struct {
	Viewport   ViewportConfig   `toml:"viewport"`
	Notes      NotesConfig      `toml:"notes"`
	Palette    PaletteConfig    `toml:"palette"`
	Store      StoreConfig      `toml:"store"`
	DropFolder DropFolderConfig `toml:"dropfolder"`
	Logging    LoggingConfig    `toml:"logging"`
	Window     WindowConfig     `toml:"window"`
}

type ViewportConfig struct {
	MinScale        float64 `toml:"min_scale"`
	MaxScale        float64 `toml:"max_scale"`
	ZoomSensitivity float64 `toml:"zoom_sensitivity"`
}

// NotesConfig controls where new notes land. HalfWidth/HalfHeight anchor a
// centered note; DropOffset anchors a dropped one under the pointer.
type NotesConfig struct {
	DefaultText string  `toml:"default_text"`
	HalfWidth   float64 `toml:"half_width"`
	HalfHeight  float64 `toml:"half_height"`
	DropOffsetX float64 `toml:"drop_offset_x"`
	DropOffsetY float64 `toml:"drop_offset_y"`
}

type PaletteConfig struct {
	Count      int `toml:"count"`
	SampleSize int `toml:"sample_size"`
}

type StoreConfig struct {
	Driver string `toml:"driver"`
}

type DropFolderConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func Default() Config {
	return Config{
		Viewport: ViewportConfig{
			MinScale:        canvas.DefaultZoomLimits.MinScale,
			MaxScale:        canvas.DefaultZoomLimits.MaxScale,
			ZoomSensitivity: canvas.DefaultZoomLimits.Sensitivity,
		},
		Notes: NotesConfig{
			DefaultText: defaultNoteText,
			HalfWidth:   defaultHalfWidth,
			HalfHeight:  defaultHalfHeight,
			DropOffsetX: defaultHalfWidth,
			DropOffsetY: defaultHalfHeight,
		},
		Palette: PaletteConfig{
			Count:      defaultPaletteSize,
			SampleSize: defaultSampleSize,
		},
		Store:   StoreConfig{Driver: "memory"},
		Logging: LoggingConfig{Level: "info"},
		Window:  WindowConfig{Width: defaultWindowW, Height: defaultWindowH},
	}
}

// Load reads the config file from its default location. A missing file
// yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ZoomLimits returns the viewport bounds, falling back to the defaults for
// nonsensical values.
func (c Config) ZoomLimits() canvas.ZoomLimits {
	limits := canvas.ZoomLimits{
		MinScale:    c.Viewport.MinScale,
		MaxScale:    c.Viewport.MaxScale,
		Sensitivity: c.Viewport.ZoomSensitivity,
	}
	if limits.MinScale <= 0 || limits.MaxScale < limits.MinScale {
		limits.MinScale = canvas.DefaultZoomLimits.MinScale
		limits.MaxScale = canvas.DefaultZoomLimits.MaxScale
	}
	if limits.Sensitivity <= 0 {
		limits.Sensitivity = canvas.DefaultZoomLimits.Sensitivity
	}
	return limits
}

func (c Config) PaletteCount() int {
	if c.Palette.Count <= 0 {
		return defaultPaletteSize
	}
	return c.Palette.Count
}

func (c Config) PaletteSampleSize() int {
	if c.Palette.SampleSize <= 0 {
		return defaultSampleSize
	}
	return c.Palette.SampleSize
}

func (c Config) StoreDriver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if driver == "" {
		return "memory"
	}
	return driver
}

// LogLevel maps the configured level name to a wails log level.
func (c Config) LogLevel() logger.LogLevel {
	level, err := logger.StringToLogLevel(strings.ToLower(strings.TrimSpace(c.Logging.Level)))
	if err != nil {
		return logger.INFO
	}
	return level
}

// ResolveDropFolder returns the absolute drop folder path, or "" when the
// drop folder is disabled. Relative paths resolve against the data dir.
func (c Config) ResolveDropFolder() (string, error) {
	if !c.DropFolder.Enabled {
		return "", nil
	}
	path := strings.TrimSpace(c.DropFolder.Path)
	if path == "" {
		return DropFolderPath()
	}
	return resolveConfigPath(path)
}

// ResolveLogFile returns where the standalone MCP process writes its log.
func (c Config) ResolveLogFile() (string, error) {
	path := strings.TrimSpace(c.Logging.File)
	if path == "" {
		return LogPath()
	}
	return resolveConfigPath(path)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
