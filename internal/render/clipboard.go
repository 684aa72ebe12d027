package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// CommandClipboard writes to the system clipboard through a helper command
// that reads the text on stdin.
type CommandClipboard struct {
	Path string
	Args []string
}

var _ Clipboard = (*CommandClipboard)(nil)

// WriteText runs the helper with text on stdin.
func (c *CommandClipboard) WriteText(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrClipboardUnavailable, c.Path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

type clipboardCandidate struct {
	name string
	args []string
}

func clipboardCandidates(goos string, wayland bool) []clipboardCandidate {
	switch goos {
	case "darwin":
		return []clipboardCandidate{{name: "pbcopy"}}
	case "windows":
		return []clipboardCandidate{{name: "clip"}}
	}
	candidates := []clipboardCandidate{
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
	}
	if wayland {
		candidates = append([]clipboardCandidate{{name: "wl-copy"}}, candidates...)
	}
	return candidates
}

// DetectClipboard returns the first clipboard helper found on PATH.
func DetectClipboard() (*CommandClipboard, error) {
	wayland := os.Getenv("WAYLAND_DISPLAY") != ""
	for _, c := range clipboardCandidates(runtime.GOOS, wayland) {
		if path, err := lookPath(c.name); err == nil {
			return &CommandClipboard{Path: path, Args: c.args}, nil
		}
	}
	return nil, fmt.Errorf("%w: no clipboard helper on PATH", ErrClipboardUnavailable)
}

// TerminalClipboard copies through the terminal with an OSC 52 escape
// sequence. It is the legacy path for sessions without a clipboard helper,
// such as remote shells.
type TerminalClipboard struct {
	W io.Writer
}

var _ Clipboard = (*TerminalClipboard)(nil)

// WriteText emits the OSC 52 sequence carrying text.
func (c *TerminalClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.W == nil {
		return ErrClipboardUnavailable
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(c.W, seq); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}
