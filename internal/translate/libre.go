package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alnah/go-codestory/internal/lang"
)

// DefaultLibreURL is the public LibreTranslate instance.
const DefaultLibreURL = "https://libretranslate.com"

// DefaultRequestTimeout bounds a single translation request.
const DefaultRequestTimeout = 30 * time.Second

const maxLibreResponse = 4 << 20

// LibreTranslator calls a LibreTranslate compatible HTTP endpoint.
type LibreTranslator struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewLibreTranslator returns a translator for baseURL. An empty baseURL uses
// DefaultLibreURL.
func NewLibreTranslator(baseURL, apiKey string) *LibreTranslator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultLibreURL
	}
	return &LibreTranslator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: DefaultRequestTimeout},
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate implements Translator.
func (l *LibreTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(libreRequest{
		Q:      text,
		Source: lang.TranslatorCode(source),
		Target: lang.TranslatorCode(target),
		Format: "text",
		APIKey: l.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxLibreResponse))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var decoded libreResponse
	if err := json.Unmarshal(raw, &decoded); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decoded.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("libretranslate status %d: %s", resp.StatusCode, msg)
	}
	if decoded.Error != "" {
		return "", errors.New(decoded.Error)
	}
	return decoded.TranslatedText, nil
}

var _ Translator = (*LibreTranslator)(nil)
