package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Environment variables that override the config file.
const (
	EnvConfig  = "PORTFOLIO_CONFIG"
	EnvContent = "PORTFOLIO_CONTENT"
	EnvAddr    = "PORTFOLIO_ADDR"
	EnvMode    = "PORTFOLIO_MODE"
	EnvPort    = "PORT"
)

// Server modes.
const (
	ModeDev  = "dev"
	ModeProd = "prod"
)

// Config represents the application configuration.
type Config struct {
	Content  string        `json:"content,omitempty"` // path or http(s) URL; empty uses the built-in dataset
	Server   ServerConfig  `json:"server"`
	Graph    GraphConfig   `json:"graph"`
	Resume   ResumeConfig  `json:"resume"`
	Contact  ContactConfig `json:"contact"`
	Defaults DefaultConfig `json:"defaults"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr           string   `json:"addr"`
	Mode           string   `json:"mode"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

// GraphConfig holds the layout canvas.
type GraphConfig struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// ResumeConfig holds résumé page settings.
type ResumeConfig struct {
	Margin float64 `json:"margin"`
}

// ContactConfig holds the simulated contact form settings.
type ContactConfig struct {
	DelayMS int `json:"delay_ms"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// Default returns the configuration used when no file exists.
func Default() (cfg Config) {
	cfg = Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: ModeDev,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			},
		},
		Graph:    GraphConfig{Width: 960, Height: 640, Padding: 40},
		Resume:   ResumeConfig{Margin: 36},
		Contact:  ContactConfig{DelayMS: 800},
		Defaults: DefaultConfig{OutputDir: "./output"},
	}
	return cfg
}

// DefaultPath returns $HOME/.portfolio/config.json.
func DefaultPath() (path string, err error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".portfolio", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// An empty configPath falls back to PORTFOLIO_CONFIG, then the default path;
// a missing default file yields Default(). A missing explicit file is an error.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	explicit := path != ""

	if !explicit {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && !explicit:
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'portfolio init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func applyEnv(cfg *Config) {
	if content := os.Getenv(EnvContent); content != "" {
		cfg.Content = content
	}
	if port := os.Getenv(EnvPort); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	if mode := os.Getenv(EnvMode); mode != "" {
		cfg.Server.Mode = mode
	}
}

// Validate checks that all required configuration is present and fills defaults.
func (c *Config) Validate() (err error) {
	defaults := Default()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.Mode == "" {
		c.Server.Mode = defaults.Server.Mode
	}
	c.Server.Mode = strings.ToLower(c.Server.Mode)
	if c.Server.Mode != ModeDev && c.Server.Mode != ModeProd {
		err = errors.Errorf("server.mode must be %q or %q, got %q", ModeDev, ModeProd, c.Server.Mode)
		return err
	}

	if i := strings.LastIndex(c.Server.Addr, ":"); i >= 0 {
		_, convErr := strconv.Atoi(c.Server.Addr[i+1:])
		if convErr != nil {
			err = errors.Errorf("server.addr has an invalid port: %s", c.Server.Addr)
			return err
		}
	} else {
		err = errors.Errorf("server.addr must be host:port, got %s", c.Server.Addr)
		return err
	}

	if c.Graph.Width == 0 && c.Graph.Height == 0 {
		c.Graph = defaults.Graph
	}
	if c.Graph.Width <= 2*c.Graph.Padding || c.Graph.Height <= 2*c.Graph.Padding || c.Graph.Padding < 0 {
		err = errors.Errorf("graph canvas %.0fx%.0f with padding %.0f has no drawable area", c.Graph.Width, c.Graph.Height, c.Graph.Padding)
		return err
	}

	if c.Resume.Margin < 0 || c.Resume.Margin > 144 {
		err = errors.Errorf("resume.margin must be between 0 and 144 points, got %.1f", c.Resume.Margin)
		return err
	}

	if c.Contact.DelayMS < 0 {
		err = errors.New("contact.delay_ms must not be negative")
		return err
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = defaults.Defaults.OutputDir
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
