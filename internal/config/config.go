package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig `yaml:"server"`
	DB        DBConfig     `yaml:"db"`
	Log       LogConfig    `yaml:"log"`
	Auth      AuthConfig   `yaml:"auth"`
	Platforms []Platform   `yaml:"platforms"`
	Mirror    MirrorConfig `yaml:"mirror"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig gates the API behind a bearer token. Empty token disables the gate.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// Platform is one distribution platform the studio currently delivers to.
// The configured list is authoritative: stored statuses for platforms not
// listed here are filtered out of every view.
type Platform struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// MirrorConfig tunes the background mirror-write worker.
type MirrorConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	BatchSize       int `yaml:"batch_size"`
	MaxAttempts     int `yaml:"max_attempts"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "prodboard.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Platforms: DefaultPlatforms(),
		Mirror: MirrorConfig{
			IntervalSeconds: 15,
			BatchSize:       50,
			MaxAttempts:     10,
		},
	}

	if path := os.Getenv("PRODBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PRODBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PRODBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRODBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PRODBOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PRODBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if token := os.Getenv("PRODBOARD_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}

	if len(cfg.Platforms) == 0 {
		cfg.Platforms = DefaultPlatforms()
	}

	return cfg, nil
}

// DefaultPlatforms is the studio's stock platform lineup. A config file
// replaces the whole list, it does not merge with it.
func DefaultPlatforms() []Platform {
	return []Platform{
		{ID: "naver", Name: "Naver Series"},
		{ID: "kakao", Name: "KakaoPage"},
		{ID: "lezhin", Name: "Lezhin"},
		{ID: "toomics", Name: "Toomics"},
		{ID: "bomtoon", Name: "Bomtoon"},
		{ID: "ridi", Name: "RIDI"},
		{ID: "toptoon", Name: "Toptoon"},
		{ID: "mrblue", Name: "Mr. Blue"},
		{ID: "onestory", Name: "OneStory"},
		{ID: "tapas", Name: "Tapas"},
		{ID: "webtoons", Name: "LINE Webtoon"},
		{ID: "pocketcomics", Name: "Pocket Comics"},
	}
}

// PlatformIDs returns the configured platform ids in order.
func (c Config) PlatformIDs() []string {
	ids := make([]string, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		ids = append(ids, p.ID)
	}
	return ids
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
