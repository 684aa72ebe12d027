package config

import (
	"slices"
	"strings"

	"github.com/alnah/go-codestory/internal/lang"
)

// EnvPrefix marks environment variables read by codestory.
const EnvPrefix = "CODESTORY_"

// Environment variables that override file settings.
const (
	EnvConfig        = EnvPrefix + "CONFIG"
	EnvBackendURL    = EnvPrefix + "BACKEND_URL"
	EnvDir           = EnvPrefix + "DIR"
	EnvLang          = EnvPrefix + "LANG"
	EnvSourceLang    = EnvPrefix + "SOURCE_LANG"
	EnvTranslator    = EnvPrefix + "TRANSLATOR"
	EnvLogLevel      = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat     = EnvPrefix + "LOG_FORMAT"
	EnvSpeechCommand = EnvPrefix + "SPEECH_COMMAND"
)

var envSetters = map[string]func(*Config, string){
	EnvConfig:        func(*Config, string) {},
	EnvBackendURL:    func(c *Config, v string) { c.Backend.URL = v },
	EnvDir:           func(c *Config, v string) { c.Backend.Dir = v },
	EnvLang:          func(c *Config, v string) { c.Language.Target = langCode(v) },
	EnvSourceLang:    func(c *Config, v string) { c.Language.Source = langCode(v) },
	EnvTranslator:    func(c *Config, v string) { c.Translation.Provider = strings.ToLower(v) },
	EnvLogLevel:      func(c *Config, v string) { c.Logging.Level = strings.ToLower(v) },
	EnvLogFormat:     func(c *Config, v string) { c.Logging.Format = strings.ToLower(v) },
	EnvSpeechCommand: func(c *Config, v string) { c.Speech.Command = v },
}

func langCode(v string) string {
	if l, ok := lang.Lookup(v); ok {
		return l.Code
	}
	return strings.ToLower(strings.TrimSpace(v))
}

// ApplyEnv overrides cfg with CODESTORY_* entries from environ, given in
// os.Environ form. Empty values are skipped. It returns the sorted names of
// prefixed variables it does not recognize.
func ApplyEnv(cfg *Config, environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		set, known := envSetters[key]
		if !known {
			unknown = append(unknown, key)
			continue
		}
		if value == "" {
			continue
		}
		set(cfg, value)
	}
	slices.Sort(unknown)
	return unknown
}

// LookupEnv returns the value of key in environ.
func LookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}
