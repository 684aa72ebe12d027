// Package hints provides actionable hints for common codestory failures.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-codestory/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// goos is swapped in tests.
var goos = runtime.GOOS

// ForConfigNotFound suggests --config or creating a file in the user
// config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "codestory") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForBackend returns hints for an unreachable tutorial generator.
func ForBackend(baseURL string) string {
	return formatHints([]string{
		"check the generator is running at " + baseURL,
		"set CODESTORY_BACKEND_URL or read local files with --dir",
	})
}

// ForTaskNotReady suggests polling the job before reading its output.
func ForTaskNotReady(taskID string) string {
	return format("run `codestory status " + taskID + "` and retry once it reports completed")
}

// ForTimeout returns a hint about increasing the backend timeout.
func ForTimeout() string {
	return format("increase backend.timeout in the config file")
}

// ForSpeechEngine returns install hints for a missing speech synthesizer.
func ForSpeechEngine() string {
	var hints []string
	switch goos {
	case "darwin":
		hints = append(hints, "the built-in `say` command was not found on PATH")
	case "windows":
		hints = append(hints, "install espeak-ng and add it to PATH")
	default:
		if IsInContainer() {
			hints = append(hints, "install espeak-ng in the image (apt-get install espeak-ng)")
		} else {
			hints = append(hints, "install espeak-ng or espeak")
		}
	}
	hints = append(hints, "or set speech.command in the config file")
	return formatHints(hints)
}

// ForClipboard returns hints for a missing clipboard helper.
func ForClipboard() string {
	switch {
	case goos == "darwin":
		return format("pbcopy was not found on PATH")
	case goos == "windows":
		return format("clip.exe was not found on PATH")
	case os.Getenv("SSH_TTY") != "":
		return format("over SSH, use --osc52 to copy through the terminal")
	case os.Getenv("WAYLAND_DISPLAY") != "":
		return format("install wl-clipboard, or use --osc52")
	default:
		return format("install xclip or xsel, or use --osc52")
	}
}

// ForTranslator returns hints for a failing translation provider.
func ForTranslator(provider string) string {
	switch provider {
	case "openai":
		return format("set OPENAI_API_KEY or translation.openai.apiKeyEnv")
	case "libretranslate":
		return format("check translation.libretranslate.url points at a running server")
	case "chain":
		return format("every provider in the chain failed; pages are shown untranslated")
	default:
		return ""
	}
}

// ForUnknownLanguage lists the supported language codes.
func ForUnknownLanguage(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("supported: " + strings.Join(supported, ", "))
}

// ForStyleNotFound lists the available highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
