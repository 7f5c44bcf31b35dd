package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. REELFIND_SERVER_URL
const EnvPrefix = "REELFIND"

// DefaultPollInterval is the fixed delay between status checks
const DefaultPollInterval = 12 * time.Second

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Poll    PollConfig    `mapstructure:"poll"`
	Storage StorageConfig `mapstructure:"storage"`
	Preview PreviewConfig `mapstructure:"preview"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the analysis backend configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Base URL, the endpoints are appended to it
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
	MaxRPS  float64       `mapstructure:"max_rps"` // Client-side request rate cap, 0 disables
}

// PollConfig holds job polling configuration
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// StorageConfig holds the saved-movies database location
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps saved movies in memory only
}

// PreviewConfig controls the clip caption preview
type PreviewConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// BrowserConfig holds the command used to open movie pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default handler
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: 30 * time.Second,
			MaxRPS:  2,
		},
		Poll: PollConfig{
			Interval: DefaultPollInterval,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Preview: PreviewConfig{
			Enabled: true,
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reelfind.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reelfind")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reelfind")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reelfind")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reelfind")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load(DefaultConfigPath(), ".")
}

// Load reads config.yaml from the first of dirs that has one, then applies
// REELFIND_* environment overrides. A missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Defaults must be registered for AutomaticEnv to see nested keys
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.max_rps", cfg.Server.MaxRPS)
	v.SetDefault("poll.interval", cfg.Poll.Interval)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("preview.enabled", cfg.Preview.Enabled)
	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks the settings the program cannot run without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return fmt.Errorf("%w: server.url is not set (config.yaml or %s_SERVER_URL)", ErrInvalidConfig, EnvPrefix)
	}

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server.url %q must be an http(s) URL", ErrInvalidConfig, c.Server.URL)
	}

	if c.Poll.Interval <= 0 {
		return fmt.Errorf("%w: poll.interval must be positive", ErrInvalidConfig)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("%w: server.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.MaxRPS < 0 {
		return fmt.Errorf("%w: server.max_rps must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
