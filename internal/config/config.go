// Package config manages the .postit.toml configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the name of the configuration file inside the root directory.
	FileName = ".postit.toml"

	// RootEnv names the directory holding the configuration file and
	// relative persisters. It must be an absolute path.
	RootEnv = "POSTIT_ROOT"

	// LogLevelEnv overrides the log_level setting for one run. It is never
	// written to the config file.
	LogLevelEnv = "POSTIT_LOG_LEVEL"

	// Default configuration values
	DefaultPersister     = "tasks.csv"
	DefaultForceDrop     = false
	DefaultForceCopy     = false
	DefaultDropAfterCopy = false
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"

	defaultRootDir = ".postit"
)

var (
	// ErrEmptyEnv is returned when POSTIT_ROOT is set but empty, or unset
	// where a value is required.
	ErrEmptyEnv = errors.New("the POSTIT_ROOT environment variable is empty")

	// ErrNoChanges is returned by Set when no value was provided.
	ErrNoChanges = errors.New("no values provided to set")
)

// RelativeRootError indicates that POSTIT_ROOT is not an absolute path.
type RelativeRootError struct {
	Path string
}

func (e *RelativeRootError) Error() string {
	return fmt.Sprintf("%s must be an absolute path, got %q", RootEnv, e.Path)
}

// ExistsError indicates that the config file already exists.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("config file already exists at %s", e.Path)
}

// MissingError indicates that the config file does not exist.
type MissingError struct {
	Dir string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config file doesn't exist in %s; run 'postit config init' first", e.Dir)
}

// Config holds the settings read from .postit.toml.
type Config struct {
	// Persister is the default file path or connection string.
	Persister string `toml:"persister"`

	// ForceDrop allows dropping tasks that are not checked.
	ForceDrop bool `toml:"force_drop"`

	// ForceCopy allows copying over a persister that already has tasks.
	ForceCopy bool `toml:"force_copy"`

	// DropAfterCopy removes the source persister after a copy.
	DropAfterCopy bool `toml:"drop_after_copy"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFormat is one of text, json, logfmt.
	LogFormat string `toml:"log_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Persister:     DefaultPersister,
		ForceDrop:     DefaultForceDrop,
		ForceCopy:     DefaultForceCopy,
		DropAfterCopy: DefaultDropAfterCopy,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// String renders the config as "key: value" lines.
func (c *Config) String() string {
	return fmt.Sprintf("persister: %s\nforce_drop: %t\nforce_copy: %t\ndrop_after_copy: %t\nlog_level: %s\nlog_format: %s",
		c.Persister, c.ForceDrop, c.ForceCopy, c.DropAfterCopy, c.LogLevel, c.LogFormat)
}

// EffectiveLogLevel returns POSTIT_LOG_LEVEL when set, otherwise LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if v := os.Getenv(LogLevelEnv); v != "" {
		return v
	}
	return c.LogLevel
}

// Env returns the value of POSTIT_ROOT.
func Env() (string, error) {
	v := os.Getenv(RootEnv)
	if v == "" {
		return "", ErrEmptyEnv
	}
	return v, nil
}

// Root returns the directory holding the config file: POSTIT_ROOT when set,
// otherwise ~/.postit.
func Root() (string, error) {
	v, ok := os.LookupEnv(RootEnv)
	if !ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, defaultRootDir), nil
	}
	if v == "" {
		return "", ErrEmptyEnv
	}
	if !filepath.IsAbs(v) {
		return "", &RelativeRootError{Path: v}
	}
	return filepath.Clean(v), nil
}

// Path returns the location of the config file.
func Path() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, FileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := Path()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to access %s: %w", path, err)
	}
	return true, nil
}

// RequireExists returns a *MissingError when the config file is absent.
func RequireExists() error {
	ok, err := Exists()
	if err != nil {
		return err
	}
	if !ok {
		root, _ := Root()
		return &MissingError{Dir: root}
	}
	return nil
}

// Load reads the config file if it exists, otherwise returns defaults.
// Partial config files are merged with defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("failed to parse %s: unknown keys %s", FileName, strings.Join(keys, ", "))
	}

	if strings.TrimSpace(cfg.Persister) == "" {
		cfg.Persister = DefaultPersister
	}

	return cfg, nil
}

// Save writes c to the config file, creating the root directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}

// Init creates the config file with default values and returns its path.
func Init() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	ok, err := Exists()
	if err != nil {
		return "", err
	}
	if ok {
		return "", &ExistsError{Path: path}
	}
	if err := DefaultConfig().Save(); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the config file and returns its path.
func Remove() (string, error) {
	if err := RequireExists(); err != nil {
		return "", err
	}
	path, err := Path()
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return path, nil
}

// Changes holds optional new values for Set. Nil fields are left untouched.
type Changes struct {
	Persister     *string
	ForceDrop     *bool
	ForceCopy     *bool
	DropAfterCopy *bool
	LogLevel      *string
	LogFormat     *string
}

// IsEmpty reports whether no value was provided.
func (ch Changes) IsEmpty() bool {
	return ch.Persister == nil && ch.ForceDrop == nil && ch.ForceCopy == nil &&
		ch.DropAfterCopy == nil && ch.LogLevel == nil && ch.LogFormat == nil
}

// Change records one updated key.
type Change struct {
	Key string
	Old string
	New string
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Key, c.Old, c.New)
}

// Set applies ch to c and returns the applied changes in key order.
func (c *Config) Set(ch Changes) ([]Change, error) {
	if ch.IsEmpty() {
		return nil, ErrNoChanges
	}

	if ch.Persister != nil && strings.TrimSpace(*ch.Persister) == "" {
		return nil, fmt.Errorf("persister must not be empty")
	}
	var level string
	if ch.LogLevel != nil {
		level = strings.ToLower(strings.TrimSpace(*ch.LogLevel))
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", *ch.LogLevel)
		}
	}
	var format string
	if ch.LogFormat != nil {
		format = strings.ToLower(strings.TrimSpace(*ch.LogFormat))
		switch format {
		case "text", "json", "logfmt":
		default:
			return nil, fmt.Errorf("invalid log format %q: must be one of text, json, logfmt", *ch.LogFormat)
		}
	}

	var changes []Change
	if ch.Persister != nil {
		changes = append(changes, Change{"persister", c.Persister, *ch.Persister})
		c.Persister = *ch.Persister
	}
	if ch.ForceDrop != nil {
		changes = append(changes, boolChange("force_drop", c.ForceDrop, *ch.ForceDrop))
		c.ForceDrop = *ch.ForceDrop
	}
	if ch.ForceCopy != nil {
		changes = append(changes, boolChange("force_copy", c.ForceCopy, *ch.ForceCopy))
		c.ForceCopy = *ch.ForceCopy
	}
	if ch.DropAfterCopy != nil {
		changes = append(changes, boolChange("drop_after_copy", c.DropAfterCopy, *ch.DropAfterCopy))
		c.DropAfterCopy = *ch.DropAfterCopy
	}
	if ch.LogLevel != nil {
		changes = append(changes, Change{"log_level", c.LogLevel, level})
		c.LogLevel = level
	}
	if ch.LogFormat != nil {
		changes = append(changes, Change{"log_format", c.LogFormat, format})
		c.LogFormat = format
	}
	return changes, nil
}

func boolChange(key string, from, to bool) Change {
	return Change{Key: key, Old: fmt.Sprint(from), New: fmt.Sprint(to)}
}
