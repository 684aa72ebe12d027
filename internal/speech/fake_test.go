package speech

import (
	"context"
	"errors"
	"sync"
)

// fakeEngine records utterances and hands out controllable sessions.
type fakeEngine struct {
	mu        sync.Mutex
	spoken    []Utterance
	sessions  []*fakeSession
	startErr  error
	pauseErr  error
	resumeErr error
}

func (e *fakeEngine) Speak(_ context.Context, u Utterance) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.startErr != nil {
		return nil, e.startErr
	}
	s := &fakeSession{done: make(chan error, 1), pauseErr: e.pauseErr, resumeErr: e.resumeErr}
	e.spoken = append(e.spoken, u)
	e.sessions = append(e.sessions, s)
	return s, nil
}

func (e *fakeEngine) last() *fakeSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[len(e.sessions)-1]
}

func (e *fakeEngine) utterances() []Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Utterance(nil), e.spoken...)
}

type fakeSession struct {
	mu        sync.Mutex
	done      chan error
	finished  bool
	stopped   bool
	paused    bool
	pauseErr  error
	resumeErr error
}

func (s *fakeSession) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pauseErr != nil {
		return s.pauseErr
	}
	s.paused = true
	return nil
}

func (s *fakeSession) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resumeErr != nil {
		return s.resumeErr
	}
	s.paused = false
	return nil
}

func (s *fakeSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.finishLocked(nil)
	return nil
}

func (s *fakeSession) Done() <-chan error { return s.done }

// finish ends the session as the engine would.
func (s *fakeSession) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked(err)
}

func (s *fakeSession) finishLocked(err error) {
	if s.finished {
		return
	}
	s.finished = true
	s.done <- err
}

func (s *fakeSession) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// changeLog collects changes from a subscription.
type changeLog struct {
	mu      sync.Mutex
	changes []Change
	notify  chan Change
}

func newChangeLog() *changeLog {
	return &changeLog{notify: make(chan Change, 64)}
}

func (l *changeLog) record(c Change) {
	l.mu.Lock()
	l.changes = append(l.changes, c)
	l.mu.Unlock()
	l.notify <- c
}

func (l *changeLog) transitions() []Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transition, len(l.changes))
	for i, c := range l.changes {
		out[i] = c.Transition
	}
	return out
}

var errBoom = errors.New("boom")
