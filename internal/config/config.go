package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything kulku needs at startup.
type Config struct {
	APIKey            string
	GeocodingURL      string
	RoutingURL        string
	PollInterval      time.Duration
	SearchCooldown    time.Duration
	FrameInterval     time.Duration
	SearchSize        int
	Itineraries       int
	RequestsPerSecond float64
	LogFile           string
	LogLevel          string
	Theme             string
}

// APIKeyEnv overrides the subscription key from the config file.
const APIKeyEnv = "DIGITRANSIT_SUBSCRIPTION_KEY"

const (
	defaultConfigPath        = "~/.config/kulku/config.toml"
	defaultGeocodingURL      = "https://api.digitransit.fi/geocoding/v1/autocomplete"
	defaultRoutingURL        = "https://api.digitransit.fi/routing/v1/routers/hsl/index/graphql"
	defaultPollSeconds       = 60
	defaultSearchCooldownMS  = 1000
	defaultFrameMS           = 16
	defaultSearchSize        = 10
	defaultItineraries       = 5
	defaultRequestsPerSecond = 5.0
	defaultLogFile           = "~/.local/state/kulku/kulku.log"
	defaultLogLevel          = "info"
	defaultTheme             = "Nightfox"
)

type fileConfig struct {
	APIKey            string  `toml:"api_key"`
	APIKeyFile        string  `toml:"api_key_file"`
	GeocodingURL      string  `toml:"geocoding_url"`
	RoutingURL        string  `toml:"routing_url"`
	PollSeconds       int     `toml:"poll_seconds"`
	SearchCooldownMS  int     `toml:"search_cooldown_ms"`
	FrameMS           int     `toml:"frame_ms"`
	SearchSize        int     `toml:"search_size"`
	Itineraries       int     `toml:"itineraries"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	LogFile           string  `toml:"log_file"`
	LogLevel          string  `toml:"log_level"`
	Theme             string  `toml:"theme"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		GeocodingURL:      defaultGeocodingURL,
		RoutingURL:        defaultRoutingURL,
		PollInterval:      defaultPollSeconds * time.Second,
		SearchCooldown:    defaultSearchCooldownMS * time.Millisecond,
		FrameInterval:     defaultFrameMS * time.Millisecond,
		SearchSize:        defaultSearchSize,
		Itineraries:       defaultItineraries,
		RequestsPerSecond: defaultRequestsPerSecond,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		Theme:             defaultTheme,
	}
}

// Load reads the config at path (or the default location), falling back to
// defaults when the file is missing. The API key environment variable always
// wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if raw != nil {
		if err := cfg.apply(*raw); err != nil {
			return Config{}, err
		}
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &raw, nil
}

func (c *Config) apply(raw fileConfig) error {
	c.APIKey = strings.TrimSpace(raw.APIKey)
	if keyFile := strings.TrimSpace(raw.APIKeyFile); keyFile != "" {
		key, err := readKeyFile(keyFile)
		if err != nil {
			return fmt.Errorf("read api key file: %w", err)
		}
		c.APIKey = key
	}

	if v := strings.TrimSpace(raw.GeocodingURL); v != "" {
		c.GeocodingURL = v
	}
	if v := strings.TrimSpace(raw.RoutingURL); v != "" {
		c.RoutingURL = v
	}
	if raw.PollSeconds > 0 {
		c.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.SearchCooldownMS > 0 {
		c.SearchCooldown = time.Duration(raw.SearchCooldownMS) * time.Millisecond
	}
	if raw.FrameMS > 0 {
		c.FrameInterval = time.Duration(raw.FrameMS) * time.Millisecond
	}
	if raw.SearchSize > 0 {
		c.SearchSize = raw.SearchSize
	}
	if raw.Itineraries > 0 {
		c.Itineraries = raw.Itineraries
	}
	if raw.RequestsPerSecond > 0 {
		c.RequestsPerSecond = raw.RequestsPerSecond
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			c.LogLevel = v
		default:
			return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", raw.LogLevel)
		}
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		c.Theme = v
	}
	return nil
}

func readKeyFile(path string) (string, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%s is empty", resolved)
	}
	return key, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
