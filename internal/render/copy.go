package render

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alnah/go-codestory/internal/logging"
)

// Sentinel errors for the copy affordance.
var (
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrNothingToCopy        = errors.New("nothing to copy")
)

// DefaultAckDuration is how long a successful copy stays acknowledged.
const DefaultAckDuration = 2 * time.Second

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// CopyButton is the copy-to-clipboard affordance of one code node.
//
// Copy prefers the text the node currently displays over the content it was
// built with, writes it to the primary clipboard and falls back to the
// legacy clipboard with the built content. Failures are logged and never
// returned. A successful copy sets Copied for the acknowledgment duration.
type CopyButton struct {
	node     CodeNode
	source   TextSource
	primary  Clipboard
	legacy   Clipboard
	logger   logging.Logger
	ack      time.Duration
	onChange func(copied bool)

	mu     sync.Mutex
	copied bool
	timer  *time.Timer
	epoch  int
}

// CopyOption configures a CopyButton.
type CopyOption func(*CopyButton)

// WithTextSource sets where the displayed text is read from.
func WithTextSource(src TextSource) CopyOption {
	return func(b *CopyButton) { b.source = src }
}

// WithPrimary sets the primary clipboard.
func WithPrimary(c Clipboard) CopyOption {
	return func(b *CopyButton) { b.primary = c }
}

// WithLegacy sets the fallback clipboard.
func WithLegacy(c Clipboard) CopyOption {
	return func(b *CopyButton) { b.legacy = c }
}

// WithCopyLogger sets the logger for copy failures.
func WithCopyLogger(l logging.Logger) CopyOption {
	return func(b *CopyButton) { b.logger = l }
}

// WithAckDuration overrides DefaultAckDuration. Non-positive values are ignored.
func WithAckDuration(d time.Duration) CopyOption {
	return func(b *CopyButton) {
		if d > 0 {
			b.ack = d
		}
	}
}

// WithOnChange registers a callback invoked on every Copied transition.
func WithOnChange(fn func(copied bool)) CopyOption {
	return func(b *CopyButton) { b.onChange = fn }
}

// NewCopyButton creates the affordance for node.
func NewCopyButton(node CodeNode, opts ...CopyOption) *CopyButton {
	b := &CopyButton{node: node, ack: DefaultAckDuration}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.WithFields(b.logger, map[string]any{"code_node": node.ID})
	return b
}

// Copy copies the node text and reports whether a clipboard accepted it.
func (b *CopyButton) Copy(ctx context.Context) bool {
	text := b.displayed()
	if text == "" {
		b.logger.Debug("copy skipped", "error", ErrNothingToCopy)
		return false
	}

	err := ErrClipboardUnavailable
	if b.primary != nil {
		err = b.primary.WriteText(ctx, text)
	}
	if err == nil {
		b.acknowledge()
		return true
	}
	b.logger.Warn("copy failed, trying legacy clipboard", "error", err)

	if b.legacy == nil || b.node.Content == "" {
		b.logger.Error("copy failed", "error", ErrClipboardUnavailable)
		return false
	}
	if err := b.legacy.WriteText(ctx, b.node.Content); err != nil {
		b.logger.Error("legacy copy failed", "error", err)
		return false
	}
	b.acknowledge()
	return true
}

// Copied reports whether a copy is currently acknowledged.
func (b *CopyButton) Copied() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copied
}

// Close stops a pending acknowledgment reset.
func (b *CopyButton) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *CopyButton) displayed() string {
	if b.source != nil {
		if s, ok := b.source.DisplayedText(b.node.ID); ok && s != "" {
			return s
		}
	}
	return b.node.Content
}

// acknowledge sets Copied and schedules its reset. A copy during an
// acknowledgment restarts the window.
func (b *CopyButton) acknowledge() {
	b.mu.Lock()
	wasCopied := b.copied
	b.copied = true
	b.epoch++
	epoch := b.epoch
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ack, func() { b.expire(epoch) })
	b.mu.Unlock()

	if !wasCopied {
		b.notify(true)
	}
}

func (b *CopyButton) expire(epoch int) {
	b.mu.Lock()
	if epoch != b.epoch || !b.copied {
		b.mu.Unlock()
		return
	}
	b.copied = false
	b.timer = nil
	b.mu.Unlock()

	b.notify(false)
}

func (b *CopyButton) notify(copied bool) {
	if b.onChange != nil {
		b.onChange(copied)
	}
}
