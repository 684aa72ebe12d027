// Package speech reads tutorial text aloud through a pluggable engine.
//
// Player is a single-flight state machine over an Engine: starting a new
// utterance stops the one in flight, and every state change is delivered
// to subscribers.
package speech

import (
	"context"
	"errors"
)

// Sentinel errors for speech playback.
var (
	ErrEngineUnavailable = errors.New("speech engine unavailable")
	ErrNotPlaying        = errors.New("nothing is playing")
	ErrNotPaused         = errors.New("playback is not paused")
	ErrPlayerClosed      = errors.New("speech player closed")
	ErrNothingToSay      = errors.New("no speakable text")
)

// Utterance is one request to the speech engine.
type Utterance struct {
	ID     string
	Text   string
	Locale string // BCP 47 tag, e.g. "hi-IN"
	Voice  string // engine voice name, empty for the engine default
	Params Params
}

// Engine is the speech capability.
type Engine interface {
	// Speak starts reading u and returns without waiting for it to finish.
	Speak(ctx context.Context, u Utterance) (Session, error)
}

// Session controls one started utterance.
type Session interface {
	Pause() error
	Resume() error
	Stop() error

	// Done receives exactly one value when playback finishes: nil for a
	// natural end, otherwise the failure.
	Done() <-chan error
}
