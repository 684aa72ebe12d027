package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/speech"
)

type speakFlags struct {
	common commonFlags
	lang   string
	gender string
	voice  string
	rate   float64
	pitch  float64
	volume float64
}

func speakFlagSet(f *speakFlags) *flag.FlagSet {
	fs := newFlagSet("speak")
	fs.StringVarP(&f.lang, "lang", "l", "", "reading language (default language.target)")
	fs.StringVar(&f.gender, "gender", "", "preferred voice gender: female, male")
	fs.StringVar(&f.voice, "voice", "", "synthesizer voice name")
	fs.Float64Var(&f.rate, "rate", 0, "speaking rate (1.0 = normal, 0 = language default)")
	fs.Float64Var(&f.pitch, "pitch", 0, "pitch (1.0 = normal, 0 = language default)")
	fs.Float64Var(&f.volume, "volume", 0, "volume 0-1 (0 = default)")
	addCommonFlags(fs, &f.common)
	return fs
}

// orDefault returns v, or fallback when v is zero.
func orDefault(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func runSpeak(ctx context.Context, args []string, env *Environment) error {
	var f speakFlags
	positional, err := parseFlags(speakFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, func(c *config.Config) {
		if f.lang != "" {
			c.Language.Target = f.lang
		}
		if f.gender != "" {
			c.Speech.Gender = f.gender
		}
		c.Speech.Rate = orDefault(f.rate, c.Speech.Rate)
		c.Speech.Pitch = orDefault(f.pitch, c.Speech.Pitch)
		c.Speech.Volume = orDefault(f.volume, c.Speech.Volume)
	})
	if err != nil {
		return err
	}
	name, raw, err := readInput(positional, env)
	if err != nil {
		return err
	}
	engine, err := rt.engine()
	if err != nil {
		return err
	}

	code := rt.cfg.Language.Target
	logger := rt.logger(logging.SpeechModule)
	opts := []speech.PlayerOption{
		speech.WithGender(speech.ParseGender(rt.cfg.Speech.Gender)),
		speech.WithPlayerLogger(logger),
	}
	if f.voice != "" {
		opts = append(opts, speech.WithVoices([]speech.Voice{{Name: f.voice, Locale: lang.VoiceLocale(code)}}))
	}
	player := speech.NewPlayer(engine, opts...)
	defer player.Close()

	var (
		mu      sync.Mutex
		playErr error
	)
	unsubscribe := player.Subscribe(func(c speech.Change) {
		logger.Debug("speech state changed",
			"from", c.From.String(), "to", c.To.String(), "transition", c.Transition.String())
		if c.Transition == speech.Error {
			mu.Lock()
			playErr = c.Err
			mu.Unlock()
		}
	})
	defer unsubscribe()

	override := speech.Params{Rate: rt.cfg.Speech.Rate, Pitch: rt.cfg.Speech.Pitch, Volume: rt.cfg.Speech.Volume}
	if _, err := player.Speak(ctx, raw, code, override); err != nil {
		return err
	}
	rt.infof("speaking %s in %s", name, lang.Name(code))

	if err := player.Wait(ctx); err != nil {
		// Interrupted: stop the synthesizer before exiting.
		_ = player.Stop()
		rt.infof("stopped")
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	if playErr != nil && !errors.Is(playErr, speech.ErrEngineUnavailable) {
		return fmt.Errorf("%w: %v", speech.ErrEngineUnavailable, playErr)
	}
	return playErr
}
