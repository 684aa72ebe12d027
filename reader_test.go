package codestory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-codestory/internal/logging/logtest"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

type sourceFunc func(ctx context.Context, taskID string) ([]tasks.File, error)

func (f sourceFunc) Files(ctx context.Context, taskID string) ([]tasks.File, error) {
	return f(ctx, taskID)
}

func staticSource(files ...tasks.File) sourceFunc {
	return func(context.Context, string) ([]tasks.File, error) {
		return files, nil
	}
}

// upperTranslator uppercases text and fails any text containing "fail".
type upperTranslator struct {
	mu    sync.Mutex
	calls int
}

func (u *upperTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	u.mu.Lock()
	u.calls++
	u.mu.Unlock()
	if strings.Contains(text, "fail") {
		return "", errors.New("backend down")
	}
	return strings.ToUpper(text), nil
}

func (u *upperTranslator) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

func TestReader_Open(t *testing.T) {
	t.Parallel()

	source := staticSource(
		tasks.File{Name: "02_usage.md", Content: "# Usage\n\nRun it.\n"},
		tasks.File{Name: "index.md", Content: "- 01_intro.md\n"},
		tasks.File{Name: "01_intro__.md", Content: "Hello\n```sh\necho hi\n```\n"},
	)
	tr := &upperTranslator{}
	reader := NewReader(source, WithTranslator(translate.NewService(tr)))

	tut, err := reader.Open(context.Background(), " task-1 ", "hi")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if tut.TaskID != "task-1" || tut.Language != "hi" {
		t.Errorf("tutorial = %s/%s", tut.TaskID, tut.Language)
	}

	names := make([]string, len(tut.Pages))
	for i, p := range tut.Pages {
		names[i] = p.Name
	}
	if strings.Join(names, ",") != "index.md,01_intro.md,02_usage.md" {
		t.Errorf("page order = %v", names)
	}

	intro := tut.Pages[1]
	if intro.Content != "HELLO\n```sh\necho hi\n```\n" {
		t.Errorf("intro content = %q", intro.Content)
	}
	if intro.Original != "Hello\n```sh\necho hi\n```\n" {
		t.Errorf("intro original = %q", intro.Original)
	}
	if codes := intro.Tree.CodeNodes(); len(codes) != 1 || codes[0].Content != "echo hi" {
		t.Errorf("intro code nodes = %#v", codes)
	}
	if len(tut.Notices) != 0 || tut.Err() != nil {
		t.Errorf("unexpected notices: %v", tut.Notices)
	}
}

func TestReader_OpenNotices(t *testing.T) {
	t.Parallel()

	source := staticSource(
		tasks.File{Name: "a.md", Content: "please fail\n\n```\ncode\n```\n"},
		tasks.File{Name: "b.md", Content: "works\n"},
	)
	rec := logtest.New()
	reader := NewReader(source,
		WithTranslator(translate.NewService(&upperTranslator{})),
		WithLogger(rec),
	)

	tut, err := reader.Open(context.Background(), "t", "te")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(tut.Notices) != 1 || tut.Notices[0].File != "a.md" {
		t.Fatalf("Notices = %v, want one for a.md", tut.Notices)
	}
	if got := tut.Notices[0].Error(); got != "translation unavailable in Telugu" {
		t.Errorf("Notice.Error() = %q", got)
	}
	if !errors.Is(tut.Err(), ErrTranslationUnavailable) {
		t.Errorf("Err() = %v, want ErrTranslationUnavailable", tut.Err())
	}
	if tut.Pages[0].Content != tut.Pages[0].Original {
		t.Errorf("failed page changed: %q", tut.Pages[0].Content)
	}
	if tut.Pages[1].Content != "WORKS\n" {
		t.Errorf("sibling page = %q, want translated", tut.Pages[1].Content)
	}
	if rec.Count("warn") == 0 {
		t.Error("expected a warning for the untranslated page")
	}
}

func TestReader_TranslateBackToSource(t *testing.T) {
	t.Parallel()

	tr := &upperTranslator{}
	reader := NewReader(staticSource(tasks.File{Name: "a.md", Content: "hello\n"}),
		WithTranslator(translate.NewService(tr)))

	hindi, err := reader.Open(context.Background(), "t", "hinglish")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if hindi.Pages[0].Content != "HELLO\n" {
		t.Fatalf("translated = %q", hindi.Pages[0].Content)
	}
	calls := tr.Calls()

	english, err := reader.Translate(context.Background(), hindi, "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if english.Pages[0].Content != "hello\n" {
		t.Errorf("english = %q, want the original", english.Pages[0].Content)
	}
	if tr.Calls() != calls {
		t.Errorf("switching to English called the translator")
	}
	if hindi.Pages[0].Content != "HELLO\n" {
		t.Error("Translate modified its input")
	}
}

func TestReader_WithoutTranslator(t *testing.T) {
	t.Parallel()

	reader := NewReader(staticSource(tasks.File{Name: "a.md", Content: "hello\n"}))
	tut, err := reader.Open(context.Background(), "t", "hi")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if tut.Pages[0].Content != "hello\n" || len(tut.Notices) != 0 {
		t.Errorf("page = %q, notices = %v", tut.Pages[0].Content, tut.Notices)
	}
}

func TestReader_OpenErrors(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("boom")
	tests := []struct {
		name    string
		reader  *Reader
		taskID  string
		target  string
		wantErr error
	}{
		{name: "no source", reader: NewReader(nil), taskID: "t", target: "en", wantErr: ErrNoTaskSource},
		{name: "blank task", reader: NewReader(staticSource()), taskID: "  ", target: "en", wantErr: ErrEmptyTaskID},
		{name: "unknown language", reader: NewReader(staticSource()), taskID: "t", target: "fr", wantErr: ErrUnsupportedLanguage},
		{name: "no files", reader: NewReader(staticSource()), taskID: "t", target: "en", wantErr: ErrNoFiles},
		{
			name: "source error",
			reader: NewReader(sourceFunc(func(context.Context, string) ([]tasks.File, error) {
				return nil, backendErr
			})),
			taskID:  "t",
			target:  "en",
			wantErr: backendErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.reader.Open(context.Background(), tt.taskID, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTutorial_Sections(t *testing.T) {
	t.Parallel()

	reader := NewReader(staticSource(
		tasks.File{Name: "b.md", Content: "B"},
		tasks.File{Name: "a.md", Content: "A", Title: "Alpha"},
	))
	tut, err := reader.Open(context.Background(), "t", "en")
	if err != nil {
		t.Fatal(err)
	}
	sections := tut.Sections()
	if len(sections) != 2 || sections[0].Title != "Alpha" || sections[1].Title != "b" {
		t.Errorf("Sections() = %#v", sections)
	}
	if (*Tutorial)(nil).Sections() != nil || (*Tutorial)(nil).Err() != nil {
		t.Error("nil tutorial should be empty")
	}
}
