// Package config loads and validates the YAML file that seeds book
// conversions. A config is addressed by literal path or by bare name;
// names are searched in the working directory first, then under the
// user config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2epub/internal/yamlutil"
)

var (
	ErrConfigNotFound  = errors.New("no config file found")
	ErrEmptyConfigName = errors.New("empty config name")
	ErrConfigParse     = errors.New("cannot parse config file")
	ErrFieldTooLong    = errors.New("field value too long")
)

// Field length limits guard against runaway metadata in shared setups.
const (
	MaxTitleLength    = 200  // dc:title
	MaxCreatorLength  = 100  // dc:creator
	MaxLanguageLength = 35   // BCP 47 recommended buffer
	MaxBookIDLength   = 256  // dc:identifier, URN or URL
	MaxDateLength     = 30   // ISO or spelled out, "September 27, 2025" at worst
	MaxStyleLength    = 100  // Style name
	MaxPathLength     = 2048 // Directory and asset base paths
)

// Config mirrors the YAML file section by section.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Book   BookConfig   `yaml:"book"`
	Split  SplitConfig  `yaml:"split"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig names where sources come from when the command line
// passes none.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = inputs must be passed explicitly
}

// OutputConfig names where finished books land.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Save       bool   `yaml:"save"`       // retain the package directory next to the container
}

// BookConfig carries the bibliographic metadata for the package document.
type BookConfig struct {
	Title    string `yaml:"title"`    // empty = input file or directory name
	Creator  string `yaml:"creator"`  // optional
	Language string `yaml:"language"` // BCP 47 tag (default: "en")
	ID       string `yaml:"id"`       // dc:identifier (empty = random urn:uuid)
	Date     string `yaml:"date"`     // literal value or "auto" syntax
	Vertical bool   `yaml:"vertical"` // vertical writing, rtl page progression
}

// SplitConfig sets chapter splitting and TOC depth.
type SplitConfig struct {
	ChapterLevel int `yaml:"chapterLevel"` // 1-6, 0 = default (1)
	TocLevel     int `yaml:"tocLevel"`     // 1-5, 0 = default (3)
}

// StyleConfig selects a stylesheet by name.
type StyleConfig struct {
	Name string `yaml:"name"` // empty = default
}

// AssetsConfig points at a directory of override assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// Validate enforces field lengths and level ranges. LoadConfig runs it
// on every load; callers that build a Config by hand can run it
// themselves.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"book.title", c.Book.Title, MaxTitleLength},
		{"book.creator", c.Book.Creator, MaxCreatorLength},
		{"book.language", c.Book.Language, MaxLanguageLength},
		{"book.id", c.Book.ID, MaxBookIDLength},
		{"book.date", c.Book.Date, MaxDateLength},
		{"style.name", c.Style.Name, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if len(l.value) > l.max {
			return fmt.Errorf("%w: %s is %d chars, limit %d", ErrFieldTooLong, l.field, len(l.value), l.max)
		}
	}

	// Zero means unset; the converter fills its own defaults
	if lv := c.Split.ChapterLevel; lv != 0 && (lv < 1 || lv > 6) {
		return fmt.Errorf("split.chapterLevel: must be between 1 and 6, got %d", lv)
	}
	if lv := c.Split.TocLevel; lv != 0 && (lv < 1 || lv > 5) {
		return fmt.Errorf("split.tocLevel: must be between 1 and 5, got %d", lv)
	}

	// Checking the asset directory here lets the error name the config
	// field instead of surfacing later from inside the loader
	if base := c.Assets.BasePath; base != "" {
		info, err := os.Stat(base)
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("assets.basePath: directory does not exist: %s", base)
		case err != nil:
			return fmt.Errorf("assets.basePath: %w", err)
		case !info.IsDir():
			return fmt.Errorf("assets.basePath: not a directory: %s", base)
		}
	}

	return nil
}

// DefaultConfig is the neutral starting point: no metadata, default
// levels, embedded assets.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and validates a configuration. An argument with a
// path separator is used as-is; a bare name is searched as name.yaml
// then name.yml in the working directory, then under go-md2epub/ in
// the user config directory. A miss is an error, never a silent
// default.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !strings.ContainsAny(nameOrPath, `/\`) {
		found, err := searchConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- the config path is the user's own input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// searchConfig resolves a bare config name against the standard
// locations, in order. The error lists every path that was tried.
func searchConfig(name string) (string, error) {
	candidates := []string{name + ".yaml", name + ".yml"}
	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range []string{".yaml", ".yml"} {
			candidates = append(candidates, filepath.Join(userDir, "go-md2epub", name+ext))
		}
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}
