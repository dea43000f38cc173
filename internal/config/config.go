// Package config defines the Daylight configuration and loads, saves and
// watches it through viper.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// AppID is the stable application identifier used for preferences storage.
	AppID = "io.github.edward-ap.daylight"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "Daylight"
	// AppConfigName is the YAML file stored on disk.
	AppConfigName = "config.yaml"

	envPrefix  = "DAYLIGHT"
	configType = "yaml"

	// DefaultLatitude and DefaultLongitude point at Greenwich.
	DefaultLatitude  = 51.4779
	DefaultLongitude = -0.0015
	DefaultTimezone  = "Europe/London"

	DefaultSunIntensity     = 0.3
	DefaultAmbientIntensity = 0.75

	DefaultTimelapseSpeed    = 30.0
	MaxTimelapseSpeed        = 720.0
	DefaultTimelapseInterval = 50 * time.Millisecond

	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 560
	// DefaultHeight is the preferred window height.
	DefaultHeight = 640
	// MinWindowWidth keeps the slider labels readable.
	MinWindowWidth = 420

	lastMinute = 24*60 - 1
)

const (
	keyLatitude          = "latitude"
	keyLongitude         = "longitude"
	keyTimezone          = "timezone"
	keySunIntensity      = "sun_intensity"
	keyAmbientIntensity  = "ambient_intensity"
	keyStyleFile         = "style_file"
	keyMetricsAddr       = "metrics_addr"
	keyTimelapseSpeed    = "timelapse.speed"
	keyTimelapseStart    = "timelapse.window_start"
	keyTimelapseEnd      = "timelapse.window_end"
	keyTimelapseInterval = "timelapse.interval"
	keyWindowWidth       = "window.width"
	keyWindowHeight      = "window.height"
	keyWindowX           = "window.x"
	keyWindowY           = "window.y"
	keyWindowPosSaved    = "window.position_saved"
)

// Zone is a time zone that decodes from its IANA name.
type Zone struct {
	*time.Location
}

// Timelapse holds the playback preferences.
type Timelapse struct {
	// Speed is in simulated minutes per real second.
	Speed       float64       `mapstructure:"speed"`
	WindowStart int           `mapstructure:"window_start"`
	WindowEnd   int           `mapstructure:"window_end"`
	Interval    time.Duration `mapstructure:"interval"`
}

// Window is the persisted main window size and, where the platform reports
// it, position.
type Window struct {
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	X             int  `mapstructure:"x"`
	Y             int  `mapstructure:"y"`
	PositionSaved bool `mapstructure:"position_saved"`
}

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	Latitude         float64   `mapstructure:"latitude"`
	Longitude        float64   `mapstructure:"longitude"`
	Timezone         Zone      `mapstructure:"timezone"`
	SunIntensity     float64   `mapstructure:"sun_intensity"`
	AmbientIntensity float64   `mapstructure:"ambient_intensity"`
	StyleFile        string    `mapstructure:"style_file"`
	MetricsAddr      string    `mapstructure:"metrics_addr"`
	Timelapse        Timelapse `mapstructure:"timelapse"`
	Window           Window    `mapstructure:"window"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.yaml.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Default builds an in-memory config populated with safe defaults.
func Default() *Config {
	loc, _ := time.LoadLocation(DefaultTimezone)
	cfg := &Config{
		Latitude:         DefaultLatitude,
		Longitude:        DefaultLongitude,
		Timezone:         Zone{loc},
		SunIntensity:     DefaultSunIntensity,
		AmbientIntensity: DefaultAmbientIntensity,
		Timelapse: Timelapse{
			Speed:     DefaultTimelapseSpeed,
			WindowEnd: lastMinute,
			Interval:  DefaultTimelapseInterval,
		},
		Window: Window{Width: DefaultWidth, Height: DefaultHeight},
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// Store reads and writes the config file. Flags and DAYLIGHT_* environment
// variables override file values.
type Store struct {
	logger *zap.SugaredLogger
	v      *viper.Viper
	path   string

	mu        sync.Mutex
	lastWrite time.Time
}

// NewStore prepares a store for the file at path, or the default config path
// when path is empty.
func NewStore(logger *zap.SugaredLogger, path string) (*Store, error) {
	logger = logger.Named("config")
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range settings(Default()) {
		v.SetDefault(k, val)
	}

	logger.Debugw("Created config store", "path", path)
	return &Store{logger: logger, v: v, path: path}, nil
}

// Path returns the config file location.
func (s *Store) Path() string { return s.path }

// BindFlags lets the given flags override file values. Flag names map to
// config keys through names, e.g. {"lat": "latitude"}.
func (s *Store) BindFlags(fs *pflag.FlagSet, names map[string]string) error {
	for flag, key := range names {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("bind flag %q: no such flag", flag)
		}
		if err := s.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config from disk. A missing file is created with defaults;
// defaults are still returned when that fails.
func (s *Store) Load() (*Config, error) {
	s.logger.Debugw("Loading config", "path", s.path)

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.logger.Infow("Config file not found, writing defaults", "path", s.path)
		if err := s.Save(Default()); err != nil {
			s.logger.Warnw("Failed to write default config", "error", err)
		}
	}

	if err := s.v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("Viper failed to read config", "error", err)
			return nil, fmt.Errorf("read config: %w", err)
		}
		s.logger.Debugw("Using defaults without a config file", "error", err)
	}

	cfg, err := s.decode()
	if err != nil {
		s.logger.Warnw("Failed to decode config", "error", err)
		return nil, err
	}
	s.logger.Infow("Config values",
		"latitude", cfg.Latitude,
		"longitude", cfg.Longitude,
		"timezone", cfg.Timezone.String())
	return cfg, nil
}

func (s *Store) decode() (*Config, error) {
	cfg := &Config{}
	hook := mapstructure.ComposeDecodeHookFunc(
		zoneHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := s.v.Unmarshal(cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	if raw := s.v.GetString(keyTimezone); cfg.Timezone.Location == nil {
		s.logger.Warnw("Unknown timezone, using UTC", "timezone", raw)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration, creating directories as needed. A fresh
// viper instance writes the file so saved values never shadow later edits.
func (s *Store) Save(c *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	w := viper.New()
	w.SetConfigType(configType)
	for k, val := range settings(c) {
		w.Set(k, val)
	}

	s.mu.Lock()
	s.lastWrite = time.Now()
	s.mu.Unlock()

	if err := w.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	s.logger.Debugw("Saved config", "path", s.path)
	return nil
}

// Watch reloads the config whenever the file changes on disk and hands the
// result to onChange. Writes made by Save are ignored.
func (s *Store) Watch(onChange func(*Config)) {
	const (
		ownWriteCooldown = 500 * time.Millisecond
		minBetweenLoads  = 200 * time.Millisecond
		settleDelay      = 50 * time.Millisecond
	)
	var lastLoad time.Time

	s.logger.Debugw("Watching config file", "path", s.path)
	s.v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		now := time.Now()
		s.mu.Lock()
		own := now.Sub(s.lastWrite) < ownWriteCooldown
		s.mu.Unlock()
		if own || now.Sub(lastLoad) < minBetweenLoads {
			return
		}
		lastLoad = now

		// let the editor finish flushing before reading again
		<-time.After(settleDelay)
		if err := s.v.ReadInConfig(); err != nil {
			s.logger.Warnw("Failed to reload config file", "error", err)
			return
		}
		cfg, err := s.decode()
		if err != nil {
			s.logger.Warnw("Failed to reload config file", "error", err)
			return
		}
		s.logger.Info("Reloaded config successfully")
		onChange(cfg)
	})
	s.v.WatchConfig()
}

// settings flattens c into viper keys.
func settings(c *Config) map[string]any {
	return map[string]any{
		keyLatitude:          c.Latitude,
		keyLongitude:         c.Longitude,
		keyTimezone:          c.Timezone.String(),
		keySunIntensity:      c.SunIntensity,
		keyAmbientIntensity:  c.AmbientIntensity,
		keyStyleFile:         c.StyleFile,
		keyMetricsAddr:       c.MetricsAddr,
		keyTimelapseSpeed:    c.Timelapse.Speed,
		keyTimelapseStart:    c.Timelapse.WindowStart,
		keyTimelapseEnd:      c.Timelapse.WindowEnd,
		keyTimelapseInterval: c.Timelapse.Interval.String(),
		keyWindowWidth:       c.Window.Width,
		keyWindowHeight:      c.Window.Height,
		keyWindowX:           c.Window.X,
		keyWindowY:           c.Window.Y,
		keyWindowPosSaved:    c.Window.PositionSaved,
	}
}

// zoneHook decodes IANA names into a Zone. Unknown names decode to an empty
// Zone which applyRuntimeDefaults turns into UTC.
func zoneHook() mapstructure.DecodeHookFuncType {
	zoneType := reflect.TypeOf(Zone{})
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != zoneType {
			return data, nil
		}
		loc, err := time.LoadLocation(strings.TrimSpace(data.(string)))
		if err != nil {
			return Zone{}, nil
		}
		return Zone{loc}, nil
	}
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, ensuring the UI always receives sane inputs.
func (c *Config) applyRuntimeDefaults() {
	c.Latitude = clampOr(c.Latitude, -90, 90, DefaultLatitude)
	c.Longitude = clampOr(c.Longitude, -180, 180, DefaultLongitude)
	if c.Timezone.Location == nil {
		c.Timezone = Zone{time.UTC}
	}
	c.SunIntensity = clampOr(c.SunIntensity, 0, 1, DefaultSunIntensity)
	c.AmbientIntensity = clampOr(c.AmbientIntensity, 0, 1, DefaultAmbientIntensity)
	c.StyleFile = strings.TrimSpace(c.StyleFile)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)

	tl := &c.Timelapse
	if math.IsNaN(tl.Speed) || tl.Speed <= 0 {
		tl.Speed = DefaultTimelapseSpeed
	}
	if tl.Speed > MaxTimelapseSpeed {
		tl.Speed = MaxTimelapseSpeed
	}
	tl.WindowStart = clampInt(tl.WindowStart, 0, lastMinute)
	tl.WindowEnd = clampInt(tl.WindowEnd, 0, lastMinute)
	if tl.WindowStart > tl.WindowEnd {
		tl.WindowStart, tl.WindowEnd = tl.WindowEnd, tl.WindowStart
	}
	if tl.Interval <= 0 {
		tl.Interval = DefaultTimelapseInterval
	}

	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Width < MinWindowWidth {
		c.Window.Width = MinWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultHeight
	}
}

func clampOr(v, min, max, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return math.Max(min, math.Min(max, v))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
