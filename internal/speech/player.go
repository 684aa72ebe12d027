package speech

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/pipeline"
)

// State is the playback state.
type State int

// Playback states.
const (
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Transition names the event that moved the player between states.
type Transition int

// Transitions.
const (
	Play Transition = iota
	Pause
	Resume
	Stop
	Error
	End
)

func (t Transition) String() string {
	switch t {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Stop:
		return "stop"
	case Error:
		return "error"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers on every transition.
type Change struct {
	From        State
	To          State
	Transition  Transition
	UtteranceID string
	Err         error
}

type playback struct {
	id      string
	session Session
}

// Player drives an Engine as a single-flight state machine. It is safe for
// concurrent use. Subscribers are called synchronously in transition order
// and must not call back into the Player.
type Player struct {
	mu      sync.Mutex
	engine  Engine
	state   State
	current *playback
	subs    map[int]func(Change)
	nextSub int
	closed  bool

	// notifyMu keeps delivery in the order transitions were applied.
	notifyMu sync.Mutex

	voices []Voice
	gender Gender
	logger logging.Logger
	newID  func() string
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithVoices sets the installed voices used by Speak to pick a voice.
func WithVoices(voices []Voice) PlayerOption {
	return func(p *Player) { p.voices = voices }
}

// WithGender sets the preferred voice gender. The default is Female.
func WithGender(g Gender) PlayerOption {
	return func(p *Player) { p.gender = g }
}

// WithPlayerLogger sets the logger for engine failures.
func WithPlayerLogger(l logging.Logger) PlayerOption {
	return func(p *Player) { p.logger = l }
}

// NewPlayer creates an idle Player over engine. A nil engine makes every
// playback fail with ErrEngineUnavailable.
func NewPlayer(engine Engine, opts ...PlayerOption) *Player {
	p := &Player{
		engine: engine,
		subs:   make(map[int]func(Change)),
		gender: Female,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNoOp(p.logger)
	return p
}

// Subscribe registers fn for state changes and returns a function that
// removes it. The returned function is idempotent.
func (p *Player) Subscribe(fn func(Change)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the ID of the utterance in flight, or "".
func (p *Player) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	return p.current.id
}

// Speak converts raw markdown to speech text for the language and plays
// it. Zero fields of override take the language defaults.
func (p *Player) Speak(ctx context.Context, raw, code string, override Params) (string, error) {
	code = lang.Normalize(code)
	text := pipeline.SpeechText(raw, code)
	if text == "" {
		return "", ErrNothingToSay
	}

	u := Utterance{
		Text:   text,
		Locale: lang.VoiceLocale(code),
		Params: ParamsFor(code, override),
	}
	if v, ok := SelectVoice(p.voices, code, p.gender); ok {
		u.Voice = v.Name
	}
	return p.Play(ctx, u)
}

// Play stops any playback in flight and starts u. It returns the utterance
// ID, generated when u.ID is empty.
func (p *Player) Play(ctx context.Context, u Utterance) (string, error) {
	if u.ID == "" {
		u.ID = p.newID()
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrPlayerClosed
	}

	var changes []Change
	if c, ok := p.stopLocked(); ok {
		changes = append(changes, c)
	}

	if p.engine == nil {
		changes = append(changes, Change{From: Idle, To: Idle, Transition: Error, UtteranceID: u.ID, Err: ErrEngineUnavailable})
		p.publish(changes)
		return "", ErrEngineUnavailable
	}

	session, err := p.engine.Speak(ctx, u)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
		p.logger.Warn("speech engine failed to start", "utterance", u.ID, "error", err)
		changes = append(changes, Change{From: Idle, To: Idle, Transition: Error, UtteranceID: u.ID, Err: err})
		p.publish(changes)
		return "", err
	}

	pb := &playback{id: u.ID, session: session}
	p.current = pb
	p.state = Playing
	changes = append(changes, Change{From: Idle, To: Playing, Transition: Play, UtteranceID: u.ID})
	p.publish(changes)

	go p.watch(pb)
	return u.ID, nil
}

// Pause suspends the current playback.
func (p *Player) Pause() error {
	p.mu.Lock()
	if p.state != Playing {
		p.mu.Unlock()
		return ErrNotPlaying
	}
	if err := p.current.session.Pause(); err != nil {
		p.fail(err)
		return err
	}
	p.state = Paused
	p.publish([]Change{{From: Playing, To: Paused, Transition: Pause, UtteranceID: p.current.id}})
	return nil
}

// Resume continues paused playback.
func (p *Player) Resume() error {
	p.mu.Lock()
	if p.state != Paused {
		p.mu.Unlock()
		return ErrNotPaused
	}
	if err := p.current.session.Resume(); err != nil {
		p.fail(err)
		return err
	}
	p.state = Playing
	p.publish([]Change{{From: Paused, To: Playing, Transition: Resume, UtteranceID: p.current.id}})
	return nil
}

// Stop ends the current playback. Stopping an idle player is a no-op.
func (p *Player) Stop() error {
	p.mu.Lock()
	c, ok := p.stopLocked()
	if !ok {
		p.mu.Unlock()
		return nil
	}
	p.publish([]Change{c})
	return nil
}

// Close stops playback and drops every subscriber. Close is idempotent.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	var changes []Change
	if c, ok := p.stopLocked(); ok {
		changes = append(changes, c)
	}
	p.publish(changes)

	p.mu.Lock()
	p.subs = make(map[int]func(Change))
	p.mu.Unlock()
	return nil
}

// Wait blocks until the player is idle or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	done := make(chan struct{})
	var once sync.Once
	unsubscribe := p.Subscribe(func(c Change) {
		if c.To == Idle {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	if p.State() == Idle {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stopLocked stops the current session. The caller holds p.mu.
func (p *Player) stopLocked() (Change, bool) {
	if p.current == nil {
		return Change{}, false
	}
	pb := p.current
	from := p.state
	p.current = nil
	p.state = Idle

	if err := pb.session.Stop(); err != nil {
		p.logger.Debug("speech engine stop failed", "utterance", pb.id, "error", err)
	}
	return Change{From: from, To: Idle, Transition: Stop, UtteranceID: pb.id}, true
}

// fail stops the current session after a control error and reports it as
// an Error transition. The caller holds p.mu; fail releases it.
func (p *Player) fail(err error) {
	pb := p.current
	from := p.state
	p.current = nil
	p.state = Idle
	_ = pb.session.Stop()

	p.logger.Warn("speech control failed", "utterance", pb.id, "error", err)
	p.publish([]Change{{From: from, To: Idle, Transition: Error, UtteranceID: pb.id, Err: err}})
}

// watch waits for pb to finish naturally. Superseded playbacks are ignored.
func (p *Player) watch(pb *playback) {
	err := <-pb.session.Done()

	p.mu.Lock()
	if p.current != pb {
		p.mu.Unlock()
		return
	}
	from := p.state
	p.current = nil
	p.state = Idle

	c := Change{From: from, To: Idle, Transition: End, UtteranceID: pb.id}
	if err != nil {
		c.Transition = Error
		c.Err = err
		p.logger.Warn("speech playback failed", "utterance", pb.id, "error", err)
	}
	p.publish([]Change{c})
}

// publish delivers changes to a snapshot of the subscribers. The caller
// holds p.mu; publish releases it.
func (p *Player) publish(changes []Change) {
	subs := make([]func(Change), 0, len(p.subs))
	for id := 0; id < p.nextSub; id++ {
		if fn, ok := p.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	p.notifyMu.Lock()
	p.mu.Unlock()
	defer p.notifyMu.Unlock()

	for _, c := range changes {
		for _, fn := range subs {
			fn(c)
		}
	}
}
