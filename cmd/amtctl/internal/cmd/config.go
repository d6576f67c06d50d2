package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/celestiaorg/amt"
	"github.com/celestiaorg/amt/defaulthasher"
)

// ConfigFile is the default name of the configuration file.
const ConfigFile = "config.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Config describes one tree: the shape of its records, the base hash, and
// where its state lives.
type Config struct {
	RecordSize int           `toml:"record_size"`
	Hash       string        `toml:"hash"`
	StateDir   string        `toml:"state_dir"`
	TreeID     string        `toml:"tree_id"`
	Logger     *LoggerConfig `toml:"logger"`

	// Path is the file the config was loaded from. Relative paths in the
	// config are resolved against its directory.
	Path string `toml:"-"`
}

// NewConfig returns a config for a fresh tree with a random id.
func NewConfig(path string) *Config {
	return &Config{
		RecordSize: amt.DefaultRecordSize,
		Hash:       defaulthasher.Default,
		StateDir:   "state",
		TreeID:     uuid.New().String(),
		Logger: &LoggerConfig{
			Environment: "production",
		},
		Path: path,
	}
}

// LoadConfig reads and validates the config at path.
func LoadConfig(path string) (*Config, error) {
	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	conf.Path = path
	if conf.Logger == nil {
		conf.Logger = &LoggerConfig{Environment: "production"}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks every field that a session depends on.
func (conf *Config) Validate() error {
	if conf.RecordSize < 1 {
		return fmt.Errorf("%w: record_size must be positive, got %d", ErrInvalidConfig, conf.RecordSize)
	}
	if _, err := defaulthasher.Factory(conf.Hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := uuid.Parse(conf.TreeID); err != nil {
		return fmt.Errorf("%w: tree_id: %v", ErrInvalidConfig, err)
	}
	if conf.StateDir == "" {
		return fmt.Errorf("%w: state_dir is empty", ErrInvalidConfig)
	}
	return nil
}

// Save writes the config to conf.Path. It refuses to overwrite an existing
// file.
func (conf *Config) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return err
	}
	f, err := os.OpenFile(conf.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}

// ID returns the parsed tree id.
func (conf *Config) ID() uuid.UUID {
	return uuid.MustParse(conf.TreeID)
}

// StatePath returns the state directory, resolved against the config file.
func (conf *Config) StatePath() string {
	return resolvePath(conf.StateDir, conf.Path)
}

// resolvePath returns file unchanged if it is absolute, and relative to the
// directory of other otherwise.
func resolvePath(file, other string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(other), file)
	}
	return file
}
