package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/hints"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/logging/gologger"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/speech"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// runtime is the resolved configuration of one command run.
type runtime struct {
	env      *Environment
	cfg      *config.Config
	provider logging.Provider
	common   commonFlags
	vars     []string
}

// setup loads the configuration with precedence flags > env > file > defaults.
// Flag overrides are applied by mutate before validation.
func setup(env *Environment, common commonFlags, mutate func(*config.Config)) (*runtime, error) {
	environ := os.Environ
	if env.Environ != nil {
		environ = env.Environ
	}
	vars := environ()

	cfg := config.DefaultConfig()
	if env.Config != nil {
		base := *env.Config
		cfg = &base
	}

	name := common.config
	if name == "" {
		name = config.LookupEnv(vars, config.EnvConfig)
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, withHint(err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	for _, key := range config.ApplyEnv(cfg, vars) {
		fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", key)
	}
	if common.verbose {
		cfg.Logging.Level = "debug"
	}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := env.Logging
	if provider == nil {
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, usageError(err)
		}
		provider = p
	}

	return &runtime{env: env, cfg: cfg, provider: provider, common: common, vars: vars}, nil
}

func (r *runtime) logger(module string) logging.Logger {
	return logging.ModuleLogger(r.provider, module)
}

// infof prints progress to stderr unless --quiet is set.
func (r *runtime) infof(format string, args ...any) {
	if !r.common.quiet {
		fmt.Fprintf(r.env.Stderr, format+"\n", args...)
	}
}

// source returns the injected task source, a directory source when a
// directory is configured, or the HTTP backend.
func (r *runtime) source(flags sourceFlags) tasks.Source {
	if r.env.Source != nil {
		return r.env.Source
	}
	if flags.dir != "" {
		return tasks.DirSource{Root: flags.dir}
	}
	if flags.backend == "" && r.cfg.Backend.Dir != "" {
		return tasks.DirSource{Root: r.cfg.Backend.Dir}
	}

	baseURL := flags.backend
	if baseURL == "" {
		baseURL = r.cfg.Backend.URL
	}
	src := tasks.NewHTTPSource(baseURL, r.logger(logging.TasksModule))
	if d := r.cfg.Backend.TimeoutDuration(); d > 0 {
		src.Client = &http.Client{Timeout: d}
	}
	return src
}

// translator builds the translation service for the configured provider.
// It returns nil when translation is disabled.
func (r *runtime) translator() (*translate.Service, error) {
	opts := []translate.Option{translate.WithLogger(r.logger(logging.TranslateModule))}
	if r.cfg.Translation.Cache {
		opts = append(opts, translate.WithCache(translate.NewCache()))
	}
	if r.env.Translator != nil {
		return translate.NewService(r.env.Translator, opts...), nil
	}

	tc := r.cfg.Translation
	getenv := func(key string) string { return config.LookupEnv(r.vars, key) }

	var t translate.Translator
	switch tc.Provider {
	case config.ProviderNone:
		return nil, nil
	case "", config.ProviderGlossary:
		t = translate.NewGlossaryTranslator(translate.DefaultGlossary)
	case config.ProviderLibre:
		t = r.libre(getenv)
	case config.ProviderOpenAI:
		o, err := r.openai(getenv)
		if err != nil {
			return nil, err
		}
		t = o
	case config.ProviderChain:
		var chain translate.Chain
		if o, err := r.openai(getenv); err == nil {
			chain = append(chain, o)
		}
		chain = append(chain, r.libre(getenv), translate.NewGlossaryTranslator(translate.DefaultGlossary))
		t = chain
	}
	return translate.NewService(t, opts...), nil
}

func (r *runtime) libre(getenv func(string) string) *translate.LibreTranslator {
	lc := r.cfg.Translation.LibreTranslate
	apiKey := ""
	if lc.APIKeyEnv != "" {
		apiKey = getenv(lc.APIKeyEnv)
	}
	return translate.NewLibreTranslator(lc.URL, apiKey)
}

func (r *runtime) openai(getenv func(string) string) (*translate.OpenAITranslator, error) {
	oc := r.cfg.Translation.OpenAI
	t, err := translate.NewOpenAITranslator(oc.APIKey(getenv), oc.BaseURL, oc.Model)
	if err != nil {
		return nil, withHint(fmt.Errorf("%w: %v", ErrTranslatorSetup, err), hints.ForTranslator(config.ProviderOpenAI))
	}
	return t, nil
}

// engine returns the injected speech engine, the configured command, or
// the first synthesizer found on PATH.
func (r *runtime) engine() (speech.Engine, error) {
	if r.env.Engine != nil {
		return r.env.Engine, nil
	}
	sc := r.cfg.Speech
	if sc.Command != "" {
		args := sc.Args
		if len(args) == 0 {
			args = speech.EspeakArgs
		}
		return &speech.CommandEngine{Path: sc.Command, Args: args}, nil
	}
	e, err := speech.DetectEngine()
	if err != nil {
		return nil, withHint(err, hints.ForSpeechEngine())
	}
	return e, nil
}

// clipboards returns the primary and legacy clipboards. The legacy path
// writes an OSC 52 sequence to stdout.
func (r *runtime) clipboards(osc52 bool) (primary, legacy render.Clipboard) {
	legacy = &render.TerminalClipboard{W: r.env.Stdout}
	switch {
	case r.env.Clipboard != nil:
		return r.env.Clipboard, legacy
	case osc52:
		return legacy, nil
	}
	if c, err := render.DetectClipboard(); err == nil {
		return c, legacy
	}
	r.logger(logging.RenderModule).Debug("no clipboard helper, using the terminal")
	return nil, legacy
}

// assets returns the injected loader, or the embedded assets with an
// optional override directory.
func (r *runtime) assets() (assets.AssetLoader, error) {
	if r.env.AssetLoader != nil {
		return r.env.AssetLoader, nil
	}
	if r.cfg.Assets.BasePath == "" {
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(r.cfg.Assets.BasePath)
	if err != nil {
		return nil, usageError(err)
	}
	return resolver, nil
}
