package dverseconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// IdentityConfig is one named identity in the global config file.
type IdentityConfig struct {
	DID        string `yaml:"did,omitempty"`
	SigningKey string `yaml:"signing_key,omitempty"`
	Handle     string `yaml:"handle,omitempty"`
	CreatedAt  string `yaml:"created_at,omitempty"`
}

// GlobalConfig is the on-disk ~/.config/dverse/config.yaml shape.
type GlobalConfig struct {
	Identities      map[string]IdentityConfig `yaml:"identities"`
	DefaultIdentity string                    `yaml:"default_identity,omitempty"`
	PinStore        string                    `yaml:"pin_store,omitempty"`
}

// DefaultGlobalPath returns the default config location,
// ~/.config/dverse/config.yaml. DVERSE_CONFIG overrides it.
func DefaultGlobalPath() (string, error) {
	if p := os.Getenv("DVERSE_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "dverse", "config.yaml"), nil
}

// LoadGlobal reads the config from its default location.
func LoadGlobal() (*GlobalConfig, error) {
	path, err := DefaultGlobalPath()
	if err != nil {
		return nil, err
	}
	return LoadGlobalFrom(path)
}

// LoadGlobalFrom reads a config file. A missing file yields an empty
// config, not an error.
func LoadGlobalFrom(path string) (*GlobalConfig, error) {
	cfg := &GlobalConfig{Identities: make(map[string]IdentityConfig)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Identities == nil {
		cfg.Identities = make(map[string]IdentityConfig)
	}
	return cfg, nil
}

// SaveGlobalTo writes the config atomically with 0600 permissions,
// creating parent directories as needed.
func (cfg *GlobalConfig) SaveGlobalTo(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := atomicWriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// UpdateGlobalAt loads the config at path, applies fn, and saves the
// result atomically. Changes made by fn merge with whatever is already
// on disk.
func UpdateGlobalAt(path string, fn func(cfg *GlobalConfig) error) error {
	cfg, err := LoadGlobalFrom(path)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return cfg.SaveGlobalTo(path)
}

// ResolveOptions selects an identity from a GlobalConfig.
type ResolveOptions struct {
	IdentityName      string
	AllowEnvOverrides bool
}

// Selection is a fully resolved identity ready for use.
type Selection struct {
	Name       string
	DID        string
	SigningKey string
	Handle     string
}

// Resolve picks an identity: the named one, else DVERSE_IDENTITY when
// env overrides are allowed, else the configured default.
func Resolve(cfg *GlobalConfig, opts ResolveOptions) (*Selection, error) {
	name := opts.IdentityName
	if name == "" && opts.AllowEnvOverrides {
		name = os.Getenv("DVERSE_IDENTITY")
	}
	if name == "" {
		name = cfg.DefaultIdentity
	}
	if name == "" {
		return nil, fmt.Errorf("no identity selected and no default_identity configured")
	}
	id, ok := cfg.Identities[name]
	if !ok {
		return nil, fmt.Errorf("identity %q not found in config", name)
	}
	sel := &Selection{
		Name:       name,
		DID:        id.DID,
		SigningKey: id.SigningKey,
		Handle:     id.Handle,
	}
	if opts.AllowEnvOverrides {
		if key := os.Getenv("DVERSE_SIGNING_KEY"); key != "" {
			sel.SigningKey = key
		}
	}
	return sel, nil
}

// KeysDir returns the keys directory next to a config file.
func KeysDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "keys")
}

// PinStorePath returns the pin store location for a config: the
// configured path if set, else pins.yaml next to the config file.
func PinStorePath(cfg *GlobalConfig, configPath string) string {
	if cfg.PinStore != "" {
		return cfg.PinStore
	}
	return filepath.Join(filepath.Dir(configPath), "pins.yaml")
}
