package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "KAHAANI"

// Config holds all application configuration
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Storage StorageConfig `mapstructure:"storage"`
	Reader  ReaderConfig  `mapstructure:"reader"`
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ContentConfig selects where books come from
type ContentConfig struct {
	Source string `mapstructure:"source"` // http(s) URL or local directory
	Demo   bool   `mapstructure:"demo"`   // serve the built-in sample books
}

// IsRemote reports whether Source is an http(s) URL
func (c ContentConfig) IsRemote() bool {
	return strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://")
}

// StorageConfig holds durable store configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // empty keeps everything in memory
}

// ReaderConfig holds reading session configuration
type ReaderConfig struct {
	TransitionMS int `mapstructure:"transition_ms"`
}

// TransitionWindow returns the navigation lock duration
func (c ReaderConfig) TransitionWindow() time.Duration {
	if c.TransitionMS < 0 {
		return 0
	}
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// ServerConfig holds the content server configuration (kahaani serve)
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Dir  string `mapstructure:"dir"` // empty serves the sample books
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Demo: true,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Reader: ReaderConfig{
			TransitionMS: 300,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "kahaani.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kahaani")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "kahaani")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kahaani")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "kahaani")
	}
}

// ConfigFile returns the path SaveConfig writes to
func ConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. KAHAANI_CONTENT_SOURCE
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("content.source", cfg.Content.Source)
	v.SetDefault("content.demo", cfg.Content.Demo)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("reader.transition_ms", cfg.Reader.TransitionMS)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.dir", cfg.Server.Dir)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, ConfigFile())
}

func saveConfig(v *viper.Viper, cfg *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("content.source", cfg.Content.Source)
	v.Set("content.demo", cfg.Content.Demo)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("reader.transition_ms", cfg.Reader.TransitionMS)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.dir", cfg.Server.Dir)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
