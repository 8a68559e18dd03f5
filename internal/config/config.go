package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "LOCALSKETCH_CONFIG"

// Config is the full LocalSketch configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Trim   TrimConfig   `yaml:"trim"`
	Sync   SyncConfig   `yaml:"sync"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

type GridConfig struct {
	// Pitch is the spacing of grid lines; clicks snap to it.
	Pitch float64 `yaml:"pitch"`
	Show  bool    `yaml:"show"`
	// SnapRadius rounds circle radii to the pitch as well.
	SnapRadius bool `yaml:"snap_radius"`
}

type TrimConfig struct {
	// PickTolerance is how far from an entity a click may land and still
	// select it.
	PickTolerance float64 `yaml:"pick_tolerance"`
}

type SyncConfig struct {
	Port      int    `yaml:"port"`
	Scheme    string `yaml:"scheme"`
	Advertise bool   `yaml:"advertise"`
	Service   string `yaml:"service"`
}

type ExportConfig struct {
	Orientation string  `yaml:"orientation"`
	Unit        string  `yaml:"unit"`
	Size        string  `yaml:"size"`
	Scale       float64 `yaml:"scale"`
	LineWidth   float64 `yaml:"line_width"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{Pitch: 20, Show: true, SnapRadius: true},
		Trim: TrimConfig{PickTolerance: 10},
		Sync: SyncConfig{
			Port:      8888,
			Scheme:    "localsketch://",
			Advertise: true,
			Service:   "_localsketch._tcp",
		},
		Export: ExportConfig{Orientation: "L", Unit: "mm", Size: "A4", Scale: 0.25, LineWidth: 0.3},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path on top of the defaults. An empty path falls back to
// $LOCALSKETCH_CONFIG; if that is empty too, or the file does not exist,
// the defaults are returned.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := Parse([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, fills zero values with defaults and
// validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(cfg)
	return cfg.Validate()
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Grid.Pitch == 0 {
		cfg.Grid.Pitch = def.Grid.Pitch
	}
	if cfg.Trim.PickTolerance == 0 {
		cfg.Trim.PickTolerance = cfg.Grid.Pitch / 2
	}
	if cfg.Sync.Port == 0 {
		cfg.Sync.Port = def.Sync.Port
	}
	if cfg.Sync.Scheme == "" {
		cfg.Sync.Scheme = def.Sync.Scheme
	}
	if cfg.Sync.Service == "" {
		cfg.Sync.Service = def.Sync.Service
	}
	if cfg.Export.Orientation == "" {
		cfg.Export.Orientation = def.Export.Orientation
	}
	if cfg.Export.Unit == "" {
		cfg.Export.Unit = def.Export.Unit
	}
	if cfg.Export.Size == "" {
		cfg.Export.Size = def.Export.Size
	}
	if cfg.Export.Scale == 0 {
		cfg.Export.Scale = def.Export.Scale
	}
	if cfg.Export.LineWidth == 0 {
		cfg.Export.LineWidth = def.Export.LineWidth
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Pitch < 0 {
		errs = append(errs, fmt.Errorf("grid.pitch must not be negative, got %v", c.Grid.Pitch))
	}
	if c.Trim.PickTolerance < 0 {
		errs = append(errs, fmt.Errorf("trim.pick_tolerance must not be negative, got %v", c.Trim.PickTolerance))
	}
	if c.Sync.Port < 1 || c.Sync.Port > 65535 {
		errs = append(errs, fmt.Errorf("sync.port out of range: %d", c.Sync.Port))
	}
	if !strings.HasSuffix(c.Sync.Scheme, "://") {
		errs = append(errs, fmt.Errorf("sync.scheme must end in ://, got %q", c.Sync.Scheme))
	}
	switch strings.ToUpper(c.Export.Orientation) {
	case "P", "L":
	default:
		errs = append(errs, fmt.Errorf("export.orientation must be P or L, got %q", c.Export.Orientation))
	}
	if c.Export.Scale < 0 {
		errs = append(errs, fmt.Errorf("export.scale must not be negative, got %v", c.Export.Scale))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Logger builds the root logger described by c.Log.
func (c *Config) Logger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
