// Package config handles the configuration directory, config.toml and the
// environment overrides that locate the task data file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"jtask/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "jtask"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultDataFile is the task file used when nothing else is configured,
	// relative to the working directory.
	DefaultDataFile = "tasks.json"

	// DefaultExportList is the Google Tasks list that push writes to.
	DefaultExportList = "jtask"

	// EnvDataFile overrides the data file location.
	EnvDataFile = "JTASK_FILE"

	// EnvFormat overrides the data file format.
	EnvFormat = "JTASK_FORMAT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataFile is the task data file.
	DataFile string

	// Format is the data file encoding; empty means inferred from DataFile.
	Format string

	// ExportList is the Google Tasks list title used by push.
	ExportList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives debug output. Nil means discard.
	Log *log.Logger
}

// fileSettings mirrors config.toml.
type fileSettings struct {
	DataFile   string `toml:"data_file"`
	Format     string `toml:"format"`
	ExportList string `toml:"export_list"`
}

// New creates a Config with the default or specified config directory, then
// applies config.toml and the environment, in that order.
// If configDir is empty, uses XDG_CONFIG_HOME/jtask or $HOME/.config/jtask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:        dir,
		DataFile:   DefaultDataFile,
		ExportList: DefaultExportList,
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadFile() error {
	var settings fileSettings
	md, err := toml.DecodeFile(c.FilePath(), &settings)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("invalid %s: unknown key %q", ConfigFile, undecoded[0].String())
	}

	if settings.DataFile != "" {
		path := ExpandHome(settings.DataFile)
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Dir, path)
		}
		c.DataFile = path
	}
	if settings.Format != "" {
		c.Format = settings.Format
	}
	if strings.TrimSpace(settings.ExportList) != "" {
		c.ExportList = settings.ExportList
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataFile); v != "" {
		c.DataFile = ExpandHome(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Logger returns the configured logger, or one that discards everything.
func (c *Config) Logger() *log.Logger {
	if c.Log == nil {
		return logging.Discard()
	}
	return c.Log
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
