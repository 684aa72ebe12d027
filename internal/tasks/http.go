package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-codestory/internal/logging"
)

// DefaultBaseURL is the local backend address.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds one backend request.
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 64 << 20

// HTTPSource reads task output from the backend job API.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Logger  logging.Logger
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource returns a source for baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewHTTPSource(baseURL string, logger logging.Logger) *HTTPSource {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: DefaultTimeout},
		Logger:  logging.OrNoOp(logger),
	}
}

type outputResponse struct {
	Files []struct {
		Filename string `json:"filename"`
		Path     string `json:"path"`
		Content  string `json:"content"`
	} `json:"files"`
	OutputDirectory string `json:"output_directory"`
}

// Status is the progress of a generation task.
type Status struct {
	TaskID     string `json:"task_id"`
	State      string `json:"status"`
	Progress   int    `json:"progress"`
	Message    string `json:"message"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Completed reports whether the task finished successfully.
func (s Status) Completed() bool {
	return s.State == "completed"
}

// Files implements Source with GET {base}/output/{taskID}.
func (s *HTTPSource) Files(ctx context.Context, taskID string) ([]File, error) {
	var resp outputResponse
	if err := s.get(ctx, "output", taskID, &resp); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, File{Name: f.Filename, Path: f.Path, Content: f.Content})
	}
	logging.OrNoOp(s.Logger).Debug("task files loaded", "task", taskID, "files", len(files))
	return Normalize(files), nil
}

// Status returns the task progress with GET {base}/status/{taskID}.
func (s *HTTPSource) Status(ctx context.Context, taskID string) (Status, error) {
	var st Status
	if err := s.get(ctx, "status", taskID, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

func (s *HTTPSource) get(ctx context.Context, endpoint, taskID string, out any) error {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return ErrEmptyTaskID
	}

	target := s.BaseURL + "/" + endpoint + "/" + url.PathEscape(taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", ErrBackend, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return fmt.Errorf("%w: %w: %v", ErrBackend, ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrBackend, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrTaskNotReady, detail(body, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: HTTP %d: %s", ErrBackend, resp.StatusCode, detail(body, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrBackend, err)
	}
	return nil
}

// detail extracts the backend's "detail" message, falling back to the
// status text.
func detail(body []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return http.StatusText(status)
}
