package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var taskFiles = map[string]string{
	"index.md":    "---\ntitle: Overview\n---\n# Overview\n\n1. [Intro](01_intro.md)\n",
	"01_intro.md": "# Intro\n\nHello reader.\n\n```go\nfmt.Println(\"hi\")\n```\n",
}

// ---------------------------------------------------------------------------
// files
// ---------------------------------------------------------------------------

func TestFiles_Dir(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	env := newTestEnv("")
	if code := env.run(t, "files", "--dir", root, "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}

	lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and 2 files:\n%s", len(lines), env.stdout)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(env.stdout.String(), "Overview") {
		t.Errorf("stdout = %q, want the front matter title", env.stdout)
	}
}

func TestFiles_Errors(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	tests := []struct {
		name     string
		taskID   string
		wantCode int
	}{
		{name: "unknown task", taskID: "missing", wantCode: ExitIO},
		{name: "path traversal", taskID: "../../etc", wantCode: ExitIO},
		{name: "blank id", taskID: "  ", wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if code := env.run(t, "files", "--dir", root, tt.taskID); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
		})
	}
}

func TestFiles_HTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/output/t1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"files":[{"filename":"01_intro.md","path":"out/01_intro.md","content":"# Intro"}]}`))
		case "/output/busy":
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name       string
		taskID     string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "files", taskID: "t1", wantCode: ExitSuccess, wantStdout: "01_intro.md"},
		{name: "not ready", taskID: "busy", wantCode: ExitExternal, wantStderr: "codestory status busy"},
		{name: "backend error", taskID: "boom", wantCode: ExitExternal, wantStderr: "hint:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if code := env.run(t, "files", "--backend", srv.URL, tt.taskID); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func TestStatus_HTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status/t1":
			_, _ = w.Write([]byte(`{"task_id":"t1","status":"running","progress":40,"message":"writing"}`))
		case "/status/t2":
			_, _ = w.Write([]byte(`{"task_id":"t2","status":"failed","progress":10,"error":"model timeout"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	env := newTestEnv("")
	if code := env.run(t, "status", "--backend", srv.URL, "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}
	if got := env.stdout.String(); got != "t1\trunning\t40%\twriting\n" {
		t.Errorf("stdout = %q", got)
	}

	failed := newTestEnv("")
	if code := failed.run(t, "status", "--backend", srv.URL, "t2"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, failed.stderr)
	}
	if !strings.Contains(failed.stderr.String(), "task error: model timeout") {
		t.Errorf("stderr = %q, want the task error", failed.stderr)
	}

	missing := newTestEnv("")
	if code := missing.run(t, "status", "--backend", srv.URL, "nope"); code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
}

func TestStatus_DirUnsupported(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := env.run(t, "status", "--dir", t.TempDir(), "t1"); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// open
// ---------------------------------------------------------------------------

func TestOpen_ListsPages(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	env := newTestEnv("")
	if code := env.run(t, "open", "--dir", root, "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "index.md") || !strings.Contains(out, "01_intro.md") {
		t.Errorf("stdout = %q, want both pages", out)
	}
}

func TestOpen_WritesPages(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	out := filepath.Join(t.TempDir(), "site")
	env := newTestEnv("")
	env.Translator = &upperTranslator{}
	if code := env.run(t, "open", "--dir", root, "-l", "hi", "-o", out, "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}

	data, err := os.ReadFile(filepath.Join(out, "01_intro.html"))
	if err != nil {
		t.Fatalf("reading page: %v", err)
	}
	page := string(data)
	if !strings.Contains(page, "HELLO READER.") {
		t.Errorf("page not translated:\n%s", page)
	}
	if !strings.Contains(page, "fmt.Println") {
		t.Errorf("page lost its code block:\n%s", page)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Errorf("index page: %v", err)
	}
}

func TestOpen_NoticePerPage(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", map[string]string{"01_fail.md": "this will fail"})
	env := newTestEnv("")
	env.Translator = &upperTranslator{}
	if code := env.run(t, "open", "--dir", root, "--lang", "te", "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stderr.String(), "warning: 01_fail.md: translation unavailable in Telugu") {
		t.Errorf("stderr = %q, want a notice", env.stderr)
	}
}

func TestOpen_EmptyTask(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", map[string]string{"notes.txt": "not markdown"})
	env := newTestEnv("")
	if code := env.run(t, "open", "--dir", root, "t1"); code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

func TestExport_Dir(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	output := filepath.Join(t.TempDir(), "tutorial.html")
	env := newTestEnv("")
	code := env.run(t, "export", "--dir", root, "--title", "Go Basics", "--date", "auto", "-o", output, "t1")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	doc := string(data)
	for _, want := range []string{"<title>Go Basics</title>", "2025-03-14", "Hello reader.", "fmt"} {
		if !strings.Contains(doc, want) {
			t.Errorf("export missing %q", want)
		}
	}
	if !strings.Contains(env.stderr.String(), "exported 2 sections") {
		t.Errorf("stderr = %q, want a summary", env.stderr)
	}
}

func TestExport_Stdout(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	env := newTestEnv("")
	if code := env.run(t, "export", "--dir", root, "t1"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "<title>t1</title>") {
		t.Errorf("stdout missing the default title")
	}
}

func TestExport_Errors(t *testing.T) {
	t.Parallel()

	root := writeTask(t, "t1", taskFiles)
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "unknown highlight", args: []string{"--highlight", "no-such-style"}, wantCode: ExitUsage, wantStderr: "hint:"},
		{name: "empty date pattern", args: []string{"--date", "auto:"}, wantCode: ExitUsage},
		{name: "unsupported language", args: []string{"--lang", "xx"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			args := append([]string{"export", "--dir", root}, tt.args...)
			if code := env.run(t, append(args, "t1")...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}
