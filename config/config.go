package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pablor21/enummessage/logger"
	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

//go:embed config.yml
var defaultConfigFile embed.FS

type Config struct {
	Packages         []string         `json:"packages" yaml:"packages" toml:"packages"`
	Types            []string         `json:"types" yaml:"types" toml:"types"`
	Output           string           `json:"output" yaml:"output" toml:"output"`
	Strategy         GenStrategy      `json:"strategy" yaml:"strategy" toml:"strategy"`
	AnnotationPrefix string           `json:"annotation_prefix" yaml:"annotation_prefix" toml:"annotation_prefix"`
	AssertInterface  bool             `json:"assert_interface" yaml:"assert_interface" toml:"assert_interface"`
	LogLevel         *logger.LogLevel `json:"log_level" yaml:"log_level" toml:"log_level"`
	Validator        ValidatorConfig  `json:"validator" yaml:"validator" toml:"validator"`
	Watcher          WatcherConfig    `json:"watcher" yaml:"watcher" toml:"watcher"`
}

// GenStrategy determines output file strategy
type GenStrategy string

const (
	GenStrategyPackage GenStrategy = "package" // One file per package
	GenStrategyType    GenStrategy = "type"    // One file per enum type
)

// ValidationAction defines how to handle annotation validation errors
type ValidationAction string

const (
	ValidationActionDisabled ValidationAction = "disabled"
	ValidationActionWarn     ValidationAction = "warn"
	ValidationActionFail     ValidationAction = "fail"
)

type ValidatorConfig struct {
	Action ValidationAction `json:"action" yaml:"action" toml:"action"`
}

// WatcherConfig holds file watcher configuration
type WatcherConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	DebounceMs     int      `json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms"`
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns" toml:"ignore_patterns"`
}

// Placeholders accepted in Config.Output.
const (
	PackagePlaceholder = "{package}"
	TypePlaceholder    = "{type}"
)

func NewDefaultConfig() *Config {
	// parse default config from embedded file
	config, err := LoadConfigFromFS(defaultConfigFile, "config.yml")
	if err != nil {
		panic("failed to load default config: " + err.Error())
	}
	return config
}

func LoadConfigFromFS(fs embed.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfigFromYAML(data)
}

func LoadConfigFromYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func LoadConfigFromJSON(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func LoadConfigFromTOML(data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfigFile reads a config file, picking the decoder by extension, and
// layers it over the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	override, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Merge(NewDefaultConfig(), override), nil
}

// Decode parses a config document in the given format or file extension.
// Unknown formats are read as JSON. Fields absent from the document stay zero.
func Decode(data []byte, format string) (*Config, error) {
	switch NormalizeFormat(format) {
	case "yaml":
		return LoadConfigFromYAML(data)
	case "toml":
		return LoadConfigFromTOML(data)
	default:
		return LoadConfigFromJSON(data)
	}
}

// Marshal encodes the config in the given format: json, yaml or toml.
func Marshal(c *Config, format string) ([]byte, error) {
	switch NormalizeFormat(format) {
	case "json":
		return json.MarshalIndent(c, "", "  ")
	case "yaml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(*c)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// NormalizeFormat maps a format name or file extension to json, yaml or toml.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimPrefix(f, ".")) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// Merge returns base with every field set in override applied on top.
func Merge(base, override *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	result := *base
	if override == nil {
		return &result
	}

	if len(override.Packages) > 0 {
		result.Packages = override.Packages
	}
	if len(override.Types) > 0 {
		result.Types = override.Types
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Strategy != "" {
		result.Strategy = override.Strategy
	}
	if override.AnnotationPrefix != "" {
		result.AnnotationPrefix = override.AnnotationPrefix
	}
	if override.AssertInterface {
		result.AssertInterface = true
	}
	if override.LogLevel != nil {
		result.LogLevel = override.LogLevel
	}
	if override.Validator.Action != "" {
		result.Validator.Action = override.Validator.Action
	}
	if override.Watcher.Enabled {
		result.Watcher.Enabled = true
	}
	if override.Watcher.DebounceMs > 0 {
		result.Watcher.DebounceMs = override.Watcher.DebounceMs
	}
	if len(override.Watcher.IgnorePatterns) > 0 {
		result.Watcher.IgnorePatterns = override.Watcher.IgnorePatterns
	}
	return &result
}

// Validate checks the values a generator run depends on.
func (c *Config) Validate() error {
	switch c.Strategy {
	case GenStrategyPackage, GenStrategyType:
	default:
		return fmt.Errorf("unknown strategy %q (expected %q or %q)", c.Strategy, GenStrategyPackage, GenStrategyType)
	}
	if c.Output == "" || filepath.Ext(c.Output) != ".go" {
		return fmt.Errorf("output %q must name a .go file", c.Output)
	}
	if strings.Contains(c.Output, string(filepath.Separator)) || strings.Contains(c.Output, "/") {
		return fmt.Errorf("output %q must be a file name, not a path", c.Output)
	}
	if c.Strategy == GenStrategyType && !strings.Contains(c.Output, TypePlaceholder) {
		return fmt.Errorf("output %q must contain %s with the %q strategy", c.Output, TypePlaceholder, GenStrategyType)
	}
	switch c.Validator.Action {
	case "", ValidationActionDisabled, ValidationActionWarn, ValidationActionFail:
	default:
		return fmt.Errorf("unknown validator action %q", c.Validator.Action)
	}
	return nil
}

// Level returns the configured log level, info when unset.
func (c *Config) Level() logger.LogLevel {
	if c.LogLevel == nil {
		return logger.LogLevelInfo
	}
	return *c.LogLevel
}

// OutputName expands the output pattern for a package and, with the type
// strategy, an enum type. Names are lower-cased like stringer's output.
func (c *Config) OutputName(pkgName, typeName string) string {
	name := strings.ReplaceAll(c.Output, PackagePlaceholder, pkgName)
	name = strings.ReplaceAll(name, TypePlaceholder, typeName)
	return strings.ToLower(name)
}
