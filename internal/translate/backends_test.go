package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
)

func TestLibreTranslator_Translate(t *testing.T) {
	t.Parallel()

	var got libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			http.Error(w, "unexpected route", http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"translatedText":"नमस्ते"}`)
	}))
	defer srv.Close()

	tr := NewLibreTranslator(srv.URL+"/", "key")
	out, err := tr.Translate(context.Background(), "hello", "en", "hinglish")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "नमस्ते" {
		t.Errorf("Translate() = %q, want %q", out, "नमस्ते")
	}

	want := libreRequest{Q: "hello", Source: "en", Target: "hi", Format: "text", APIKey: "key"}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestLibreTranslator_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "status with message", status: http.StatusBadRequest, body: `{"error":"bad language"}`, wantMsg: "bad language"},
		{name: "status without body", status: http.StatusBadGateway, body: ``, wantMsg: "Bad Gateway"},
		{name: "error on success", status: http.StatusOK, body: `{"error":"quota"}`, wantMsg: "quota"},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantMsg: "decoding response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewLibreTranslator(srv.URL, "").Translate(context.Background(), "x", "en", "hi")
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Translate() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLibreTranslator_DefaultURL(t *testing.T) {
	t.Parallel()

	if got := NewLibreTranslator("  ", "").BaseURL; got != DefaultLibreURL {
		t.Errorf("BaseURL = %q, want %q", got, DefaultLibreURL)
	}
}

func TestOpenAITranslator_Translate(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.Error(w, "unexpected route", http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"m",`+
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"నమస్కారం"}}]}`)
	}))
	defer srv.Close()

	tr, err := NewOpenAITranslator("sk-test", srv.URL+"/", "m", option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}
	out, err := tr.Translate(context.Background(), "hello", "en", "te")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "నమస్కారం" {
		t.Errorf("Translate() = %q", out)
	}
	if body["model"] != "m" {
		t.Errorf("model = %v, want m", body["model"])
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want 2", len(msgs))
	}
	system, _ := msgs[0].(map[string]any)
	if content, _ := system["content"].(string); !strings.Contains(content, "English to Telugu") {
		t.Errorf("system prompt = %q, want language names", content)
	}
}

func TestOpenAITranslator_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	tr, _ := NewOpenAITranslator("sk-test", srv.URL+"/", "", option.WithMaxRetries(0))
	if tr.Model != DefaultOpenAIModel {
		t.Errorf("Model = %q, want default", tr.Model)
	}
	if _, err := tr.Translate(context.Background(), "hello", "en", "hi"); err == nil {
		t.Error("Translate() with no choices returned nil error")
	}
}

func TestNewOpenAITranslator_RequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAITranslator("", "", "m"); err == nil {
		t.Error("NewOpenAITranslator() without key returned nil error")
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	fail := TranslatorFunc(func(context.Context, string, string, string) (string, error) {
		return "", errors.New("first down")
	})
	blank := TranslatorFunc(func(context.Context, string, string, string) (string, error) {
		return " ", nil
	})
	ok := TranslatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		return "ok:" + text, nil
	})

	out, err := Chain{fail, blank, ok}.Translate(context.Background(), "x", "en", "hi")
	if err != nil || out != "ok:x" {
		t.Errorf("Translate() = (%q, %v), want (ok:x, nil)", out, err)
	}

	_, err = Chain{fail, blank}.Translate(context.Background(), "x", "en", "hi")
	if err == nil || !errors.Is(err, ErrEmptyTranslation) || !strings.Contains(err.Error(), "first down") {
		t.Errorf("Translate() error = %v, want joined failures", err)
	}

	if _, err := (Chain{}).Translate(context.Background(), "x", "en", "hi"); err == nil {
		t.Error("empty chain returned nil error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Chain{ok}).Translate(ctx, "x", "en", "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled chain error = %v, want context.Canceled", err)
	}
}

func TestGlossaryTranslator(t *testing.T) {
	t.Parallel()

	g := NewGlossaryTranslator(DefaultGlossary)
	tests := []struct {
		name   string
		text   string
		target string
		want   string
	}{
		{name: "hindi term", text: "Tutorial", target: "hi", want: "ट्यूटोरियल"},
		{name: "case insensitive", text: "an EXAMPLE of code", target: "hi", want: "an उदाहरण of कोड"},
		{name: "multi word first", text: "Getting Started", target: "te", want: "ప్రారంభించడం"},
		{name: "mixed language uses base", text: "Chapter 1", target: "hinglish", want: "अध्याय 1"},
		{name: "no table", text: "Tutorial", target: "fr", want: "Tutorial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := g.Translate(context.Background(), tt.text, "en", tt.target)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
