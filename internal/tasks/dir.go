package tasks

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-codestory/internal/fileutil"
)

// DirSource reads task output from a local directory. A task ID names a
// subdirectory of Root; "." reads Root itself.
type DirSource struct {
	Root string
}

var _ Source = DirSource{}

type frontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Files implements Source by walking every *.md file under the task
// directory. Front matter is stripped and its title kept.
func (d DirSource) Files(ctx context.Context, taskID string) ([]File, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, ErrEmptyTaskID
	}
	dir, err := fileutil.SafeJoin(d.Root, taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTaskNotFound, err)
	}
	if !fileutil.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, dir)
	}

	var files []File
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			return nil
		}

		f, err := readFile(dir, path)
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading task directory: %w", err)
	}
	return Normalize(files), nil
}

func readFile(root, path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return File{}, err
	}

	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Malformed front matter is left in the content.
		body, meta = data, frontMatter{}
	}

	return File{
		Name:    filepath.Base(path),
		Path:    filepath.ToSlash(rel),
		Content: string(body),
		Title:   strings.TrimSpace(meta.Title),
	}, nil
}
