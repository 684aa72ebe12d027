package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/alnah/go-codestory/internal/process"
)

// Argument placeholders expanded by CommandEngine.
const (
	placeholderVoice = "{voice}"
	placeholderWPM   = "{wpm}"
	placeholderPitch = "{pitch}"
	placeholderAmp   = "{amp}"
	placeholderText  = "{text}"
)

// BaseWPM is the words-per-minute speed for rate 1.0.
const BaseWPM = 175

// EspeakArgs is the argument template for espeak-ng and espeak.
var EspeakArgs = []string{"-v", placeholderVoice, "-s", placeholderWPM, "-p", placeholderPitch, "-a", placeholderAmp, placeholderText}

// SayArgs is the argument template for the macOS say command.
var SayArgs = []string{"-v", placeholderVoice, "-r", placeholderWPM, placeholderText}

// CommandEngine speaks by running an external TTS program in its own process
// group. Stop kills the group and pause/resume suspend it, which is not
// available on every platform.
type CommandEngine struct {
	Path string
	Args []string
}

var _ Engine = (*CommandEngine)(nil)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectEngine returns an engine for the first TTS program found on PATH.
func DetectEngine() (*CommandEngine, error) {
	candidates := []struct {
		name string
		args []string
	}{
		{"espeak-ng", EspeakArgs},
		{"espeak", EspeakArgs},
		{"say", SayArgs},
	}
	for _, c := range candidates {
		if path, err := lookPath(c.name); err == nil {
			return &CommandEngine{Path: path, Args: c.args}, nil
		}
	}
	return nil, fmt.Errorf("%w: no espeak-ng, espeak or say on PATH", ErrEngineUnavailable)
}

// Expand fills the argument template for u.
func (e *CommandEngine) Expand(u Utterance) []string {
	voice := u.Voice
	if voice == "" {
		voice = strings.ToLower(u.Locale)
	}
	replacer := strings.NewReplacer(
		placeholderVoice, voice,
		placeholderWPM, strconv.Itoa(scale(u.Params.Rate, BaseWPM, 80, 500)),
		placeholderPitch, strconv.Itoa(scale(u.Params.Pitch, 50, 0, 99)),
		placeholderAmp, strconv.Itoa(scale(u.Params.Volume, 100, 0, 200)),
	)

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		// Text is substituted last and whole so it can never be re-expanded.
		if a == placeholderText {
			args[i] = u.Text
			continue
		}
		args[i] = replacer.Replace(a)
	}
	return args
}

func scale(factor float64, base, lo, hi int) int {
	if factor <= 0 {
		factor = 1
	}
	v := int(math.Round(factor * float64(base)))
	return min(max(v, lo), hi)
}

// Speak implements Engine.
func (e *CommandEngine) Speak(ctx context.Context, u Utterance) (Session, error) {
	if e.Path == "" {
		return nil, ErrEngineUnavailable
	}

	cmd := exec.CommandContext(ctx, e.Path, e.Expand(u)...)
	process.Isolate(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", e.Path, err)
	}

	s := &commandSession{cmd: cmd, done: make(chan error, 1)}
	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			err = nil
		}
		s.done <- err
	}()
	return s, nil
}

type commandSession struct {
	cmd     *exec.Cmd
	done    chan error
	mu      sync.Mutex
	stopped bool
}

func (s *commandSession) pid() int { return s.cmd.Process.Pid }

func (s *commandSession) Pause() error  { return process.SuspendGroup(s.pid()) }
func (s *commandSession) Resume() error { return process.ResumeGroup(s.pid()) }

func (s *commandSession) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	err := process.KillGroup(s.pid())
	if err != nil && !errors.Is(err, process.ErrUnsupported) {
		return err
	}
	return nil
}

func (s *commandSession) Done() <-chan error { return s.done }

// ParseEspeakVoices reads the table printed by `espeak-ng --voices`.
func ParseEspeakVoices(r io.Reader) ([]Voice, error) {
	var voices []Voice
	sc := bufio.NewScanner(r)
	header := true
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if header {
			header = false
			if len(fields) > 0 && fields[0] == "Pty" {
				continue
			}
		}
		// Pty Language Age/Gender VoiceName File [Other Languages]
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Locale: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading voice list: %w", err)
	}
	return voices, nil
}
