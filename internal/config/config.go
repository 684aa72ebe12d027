// Package config loads and validates the codestory YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/alnah/go-codestory/internal/fileutil"
	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Text code attached to validation failures.
const InvalidConfigCode = "CONFIG_INVALID"

// Field length limits.
const (
	MaxURLLength   = 2048
	MaxTitleLength = 200
	MaxNameLength  = 100
	MaxDateLength  = 50
)

// Translation providers.
const (
	ProviderNone     = "none"
	ProviderGlossary = "glossary"
	ProviderLibre    = "libretranslate"
	ProviderOpenAI   = "openai"
	ProviderChain    = "chain"
)

// Config holds all codestory settings.
type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Language    LanguageConfig    `yaml:"language"`
	Translation TranslationConfig `yaml:"translation"`
	Speech      SpeechConfig      `yaml:"speech"`
	Logging     LoggingConfig     `yaml:"logging"`
	Export      ExportConfig      `yaml:"export"`
	Assets      AssetsConfig      `yaml:"assets"`
}

// BackendConfig locates generated tutorials.
type BackendConfig struct {
	URL     string `yaml:"url"`     // job API base URL
	Dir     string `yaml:"dir"`     // local output directory, wins over URL when set
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// TimeoutDuration parses Timeout. An empty value means zero.
func (b BackendConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(b.Timeout)
	return d
}

// LanguageConfig selects the reading language.
type LanguageConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// TranslationConfig selects and configures the translator.
type TranslationConfig struct {
	Provider       string       `yaml:"provider"`
	Cache          bool         `yaml:"cache"`
	LibreTranslate LibreConfig  `yaml:"libretranslate"`
	OpenAI         OpenAIConfig `yaml:"openai"`
}

// LibreConfig configures the LibreTranslate backend.
type LibreConfig struct {
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"apiKeyEnv"`
}

// OpenAIConfig configures the OpenAI backend.
type OpenAIConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"baseURL"`
	APIKeyEnv string `yaml:"apiKeyEnv"` // default OPENAI_API_KEY
}

// DefaultOpenAIKeyEnv holds the OpenAI key when no other variable is named.
const DefaultOpenAIKeyEnv = "OPENAI_API_KEY"

// APIKey reads the key from the configured environment variable.
func (o OpenAIConfig) APIKey(getenv func(string) string) string {
	name := o.APIKeyEnv
	if name == "" {
		name = DefaultOpenAIKeyEnv
	}
	return getenv(name)
}

// SpeechConfig configures the speech engine.
type SpeechConfig struct {
	Command string   `yaml:"command"` // empty = detect espeak-ng, espeak or say
	Args    []string `yaml:"args"`    // placeholders {voice} {wpm} {pitch} {amp} {text}
	Gender  string   `yaml:"gender"`
	Rate    float64  `yaml:"rate"`
	Pitch   float64  `yaml:"pitch"`
	Volume  float64  `yaml:"volume"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"` // json, console or pretty
	AddSource bool   `yaml:"addSource"`
}

// ExportConfig configures print export.
type ExportConfig struct {
	Title     string `yaml:"title"`
	Date      string `yaml:"date"`      // literal, "auto" or "auto:PATTERN"
	Highlight string `yaml:"highlight"` // chroma style name
	Output    string `yaml:"output"`    // output file, empty = stdout
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the settings used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendConfig{URL: "http://localhost:8000", Timeout: "30s"},
		Language:    LanguageConfig{Source: lang.English, Target: lang.English},
		Translation: TranslationConfig{Provider: ProviderGlossary, Cache: true},
		Speech:      SpeechConfig{Gender: "female"},
		Logging:     LoggingConfig{Level: "warn", Format: "console"},
		Export:      ExportConfig{Highlight: "github"},
	}
}

// Validate checks every section. Failures are go-errors validation errors
// carrying InvalidConfigCode.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Backend),
		validation.Field(&c.Language),
		validation.Field(&c.Translation),
		validation.Field(&c.Speech),
		validation.Field(&c.Logging),
		validation.Field(&c.Export),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithTextCode(InvalidConfigCode)
	}
	return nil
}

// Validate implements validation.Validatable.
func (b BackendConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.URL, validation.Length(0, MaxURLLength), validation.By(httpURL)),
		validation.Field(&b.Timeout, validation.By(duration)),
	)
}

// Validate implements validation.Validatable.
func (l LanguageConfig) Validate() error {
	supported := make([]any, 0, len(lang.Supported()))
	for _, code := range lang.Supported() {
		supported = append(supported, code)
	}
	return validation.ValidateStruct(&l,
		validation.Field(&l.Source, validation.In(supported...)),
		validation.Field(&l.Target, validation.In(supported...)),
	)
}

// Validate implements validation.Validatable.
func (t TranslationConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Provider, validation.In(
			"", ProviderNone, ProviderGlossary, ProviderLibre, ProviderOpenAI, ProviderChain,
		)),
		validation.Field(&t.LibreTranslate),
		validation.Field(&t.OpenAI),
	)
}

// Validate implements validation.Validatable.
func (l LibreConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.URL, validation.Length(0, MaxURLLength), validation.By(httpURL)),
		validation.Field(&l.APIKeyEnv, validation.Length(0, MaxNameLength)),
	)
}

// Validate implements validation.Validatable.
func (o OpenAIConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Model, validation.Length(0, MaxNameLength)),
		validation.Field(&o.BaseURL, validation.Length(0, MaxURLLength), validation.By(httpURL)),
		validation.Field(&o.APIKeyEnv, validation.Length(0, MaxNameLength)),
	)
}

// Validate implements validation.Validatable.
func (s SpeechConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Gender, validation.In("", "female", "male", "neutral")),
		validation.Field(&s.Rate, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&s.Pitch, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&s.Volume, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&s.Args, validation.When(s.Command == "", validation.Empty.Error("requires speech.command"))),
	)
}

// Validate implements validation.Validatable.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&l.Format, validation.In("", "json", "console", "pretty")),
	)
}

// Validate implements validation.Validatable.
func (e ExportConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&e.Date, validation.Length(0, MaxDateLength)),
		validation.Field(&e.Highlight, validation.Length(0, MaxNameLength)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" || fileutil.IsURL(s) {
		return nil
	}
	return errors.New("must start with http:// or https://")
}

func duration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30s")
	}
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name on top of
// DefaultConfig. A name is searched as name.yaml and name.yml in the
// current directory, then in the user config directory under codestory/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "codestory", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
