package project

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

// ConfigFileNames are the project configuration files, in lookup order.
var ConfigFileNames = []string{"parseltongue.yaml", "parseltongue.yml", "parseltongue.toml"}

// Config holds the settings of a Parseltongue project.
type Config struct {
	// TabSize is the column width of a tab when measuring indentation.
	TabSize int `yaml:"tab_size" toml:"tab_size"`
	// TargetVersion is the newest Python 3 minor version whose syntax is
	// accepted.
	TargetVersion int  `yaml:"target_version" toml:"target_version"`
	RelaxedColons bool `yaml:"relaxed_colons" toml:"relaxed_colons"`
	// OutputDir receives the generated .py files. Empty means next to the
	// sources. Relative paths are resolved against the project root.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	// Jobs bounds the number of files transpiled concurrently.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Exclude lists glob patterns, matched against slash-separated paths
	// relative to the project root and against base names.
	Exclude []string `yaml:"exclude" toml:"exclude"`
	// LogLevel is the least severe message logged: none, error, warning,
	// notice, info or debug.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

var logLevels = map[string]int{
	"none":    -1,
	"error":   0,
	"warning": 1,
	"notice":  2,
	"info":    3,
	"debug":   4,
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		TabSize:       lexer.DefaultTabSize,
		TargetVersion: parser.DefaultTargetVersion,
		Jobs:          runtime.NumCPU(),
		Exclude:       []string{},
		LogLevel:      "error",
	}
}

// LoadConfig reads a configuration file on top of the defaults. The format
// is chosen by extension; anything that is not .toml is read as YAML.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("parse TOML config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse YAML config %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// FindConfig looks for a configuration file in dir and its parents. It
// returns the empty string when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate rejects settings the parser cannot honor.
func (c *Config) Validate() error {
	if c.TabSize <= 0 {
		return fmt.Errorf("tab_size must be positive, got %d", c.TabSize)
	}
	if c.TargetVersion < 0 || c.TargetVersion > parser.DefaultTargetVersion {
		return fmt.Errorf("target_version must be between 0 and %d, got %d", parser.DefaultTargetVersion, c.TargetVersion)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok && c.LogLevel != "" {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Verbosity maps LogLevel to a commonlog verbosity. An empty level logs
// errors only.
func (c *Config) Verbosity() int {
	return logLevels[strings.ToLower(c.LogLevel)]
}

// ParserOptions translates the configuration into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{
		parser.WithTabSize(c.TabSize),
		parser.WithTargetVersion(c.TargetVersion),
	}
	if c.RelaxedColons {
		opts = append(opts, parser.WithRelaxedColons())
	}
	return opts
}

// Excluded reports whether rel, a path relative to the project root, is
// matched by one of the exclude patterns.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
