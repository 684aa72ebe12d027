package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func TestClipboardCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos    string
		wayland bool
		want    string
	}{
		{"darwin", false, "pbcopy"},
		{"windows", false, "clip"},
		{"linux", false, "xclip"},
		{"linux", true, "wl-copy"},
		{"freebsd", false, "xclip"},
	}
	for _, tt := range tests {
		got := clipboardCandidates(tt.goos, tt.wayland)
		if len(got) == 0 || got[0].name != tt.want {
			t.Errorf("clipboardCandidates(%q, %v)[0] = %v, want %s", tt.goos, tt.wayland, got, tt.want)
		}
	}
}

func TestDetectClipboard(t *testing.T) {
	original := lookPath
	t.Cleanup(func() { lookPath = original })

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	if _, err := DetectClipboard(); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("DetectClipboard() error = %v, want ErrClipboardUnavailable", err)
	}

	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	c, err := DetectClipboard()
	if err != nil {
		t.Fatalf("DetectClipboard() error: %v", err)
	}
	if c.Path == "" {
		t.Error("detected clipboard has no path")
	}
}

func TestCommandClipboard(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a unix shell")
	}

	ok := &CommandClipboard{Path: "sh", Args: []string{"-c", "cat >/dev/null"}}
	if err := ok.WriteText(context.Background(), "text"); err != nil {
		t.Errorf("WriteText() error: %v", err)
	}

	fail := &CommandClipboard{Path: "sh", Args: []string{"-c", "exit 3"}}
	if err := fail.WriteText(context.Background(), "text"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("WriteText() error = %v, want ErrClipboardUnavailable", err)
	}
}

func TestTerminalClipboard(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := &TerminalClipboard{W: &buf}
	if err := c.WriteText(context.Background(), "hi"); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if got, want := buf.String(), "\x1b]52;c;aGk=\a"; got != want {
		t.Errorf("sequence = %q, want %q", got, want)
	}

	if err := (&TerminalClipboard{}).WriteText(context.Background(), "x"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("nil writer error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WriteText(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled error = %v", err)
	}
}
