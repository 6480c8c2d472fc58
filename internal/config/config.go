package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"comicsort/internal/errors"
	"comicsort/pkg/types"

	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default configuration location.
const EnvConfigPath = "COMICSORT_CONFIG"

// DefaultIgnore lists the filenames skipped when settings.ignore is unset:
// hidden files and partial downloads.
var DefaultIgnore = []string{".*", "*.part"}

// Config represents the application configuration structure.
// It names the download directory to scan, the root that mapping
// directories are relative to, and the ordered list of mappings.
type Config struct {
	Root     Segments        `yaml:"root"`     // Destination root, as path segments
	Download Segments        `yaml:"download"` // Directory to scan, as path segments
	Settings Settings        `yaml:"settings"`
	Rules    []MappingConfig `yaml:"mappings"` // Tried in order; the first match wins
}

// Settings tune a run. All of them are optional.
type Settings struct {
	DryRun           bool                  `yaml:"dry_run"`           // If true, simulate operations
	Collision        types.CollisionPolicy `yaml:"collision"`         // overwrite, skip or rename
	ReportUnmatched  bool                  `yaml:"report_unmatched"`  // Log unmatched files at info level
	NormalizeUnicode *bool                 `yaml:"normalize_unicode"` // NFC-normalise filenames, default true
	Ignore           []string              `yaml:"ignore"`            // Globs of filenames never sorted
}

// Normalize reports whether filenames are NFC-normalised before matching.
func (s Settings) Normalize() bool {
	return s.NormalizeUnicode == nil || *s.NormalizeUnicode
}

// MappingConfig is one rule as written in the configuration file.
type MappingConfig struct {
	Title      string      `yaml:"title"`
	Directory  Segments    `yaml:"directory"` // Relative to root, defaults to the title
	Pattern    string      `yaml:"pattern"`
	Processors *Processors `yaml:"processors"`
	Function   string      `yaml:"function"`
	Select     *Selector   `yaml:"select"`
	Copy       bool        `yaml:"copy"`
}

// Processors configures the optional naming stages.
type Processors struct {
	Splitter    string `yaml:"splitter"`
	Merger      string `yaml:"merger"`
	Format      string `yaml:"format"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	ReplaceAll  bool   `yaml:"replace_all"`
}

// Selector picks the first or last existing folder below the mapping
// directory.
type Selector struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// DefaultPath returns $COMICSORT_CONFIG, or ~/.config/comicsort/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "comicsort", "config.yaml"), nil
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.NewConfigError("cannot locate configuration", EnvConfigPath, errors.ConfigNotFound, err)
	}
	return LoadFile(path)
}

// LoadFile loads and validates configuration from a specific file path.
// The format follows the extension: .toml is TOML, .json is JSON and
// anything else is read as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("configuration file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = ParseTOML(data)
	case ".json":
		cfg, err = ParseJSON(data)
	default:
		cfg, err = ParseYAML(data)
	}
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseYAML decodes a YAML document and fills in defaults.
// Unknown keys are rejected.
func ParseYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ParseTOML decodes a TOML document. The document is converted to YAML so
// every format shares one set of decoding rules.
func ParseTOML(data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// ParseJSON decodes a JSON document the same way as ParseTOML.
func ParseJSON(data []byte) (*Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

func fromRaw(raw map[string]any) (*Config, error) {
	converted, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	return ParseYAML(converted)
}

func (c *Config) applyDefaults() {
	if c.Settings.Collision == "" {
		c.Settings.Collision = types.CollisionOverwrite
	}
	if c.Settings.Ignore == nil {
		c.Settings.Ignore = append([]string(nil), DefaultIgnore...)
	}
	for i := range c.Rules {
		if len(c.Rules[i].Directory) == 0 {
			c.Rules[i].Directory = Segments{c.Rules[i].Title}
		}
	}
}

// Validate checks the configuration and compiles every mapping once, so a
// bad pattern is reported before any file is touched.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if len(c.Root) == 0 {
		return errors.NewConfigError("root is required", "root", errors.InvalidConfig, nil)
	}
	if len(c.Download) == 0 {
		return errors.NewConfigError("download is required", "download", errors.InvalidConfig, nil)
	}
	if !c.Settings.Collision.Valid() {
		return errors.NewConfigError(
			fmt.Sprintf("invalid collision setting %q, want overwrite, skip or rename", c.Settings.Collision),
			"settings.collision", errors.InvalidConfig, nil)
	}
	for i, pattern := range c.Settings.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError("invalid ignore glob", fmt.Sprintf("settings.ignore[%d]", i), errors.InvalidConfig, err)
		}
	}
	if len(c.Rules) == 0 {
		return errors.NewConfigError("no mappings configured", "mappings", errors.InvalidConfig, nil)
	}

	for i, rule := range c.Rules {
		param := fmt.Sprintf("mappings[%d]", i)
		if rule.Title == "" {
			return errors.NewConfigError("title is required", param+".title", errors.InvalidConfig, nil)
		}
		if rule.Pattern == "" {
			return errors.NewConfigError("pattern is required", param+".pattern", errors.InvalidConfig, nil)
		}
		if rule.Function != "" && rule.Processors != nil {
			return errors.NewConfigError("function and processors cannot be combined", param, errors.InvalidConfig, nil)
		}
		if p := rule.Processors; p != nil && p.Replacement != "" && p.Pattern == "" {
			return errors.NewConfigError("replacement needs a pattern", param+".processors.pattern", errors.InvalidConfig, nil)
		}
	}

	_, err := c.Mappings()
	return err
}

// RootPath returns the expanded destination root.
func (c *Config) RootPath() (string, error) {
	p, err := c.Root.Expand()
	if err != nil {
		return "", errors.NewConfigError("invalid root", "root", errors.InvalidConfig, err)
	}
	return p, nil
}

// DownloadPath returns the expanded download directory.
func (c *Config) DownloadPath() (string, error) {
	p, err := c.Download.Expand()
	if err != nil {
		return "", errors.NewConfigError("invalid download directory", "download", errors.InvalidConfig, err)
	}
	return p, nil
}
