package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from an override directory laid out like
// the embedded one. Symlinks may not lead outside the directory.
type FilesystemLoader struct {
	root string
	fsys fs.FS
}

var _ AssetLoader = (*FilesystemLoader)(nil)

// NewFilesystemLoader opens dir. It fails with ErrInvalidBasePath unless
// dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, root, err)
	}
	return &FilesystemLoader{root: root, fsys: os.DirFS(root)}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := f.contained(filepath.Join(f.root, filepath.FromSlash(k.path(name)))); err != nil {
		return "", err
	}
	return k.read(f.fsys, name)
}

// contained resolves symlinks in path and checks the target stays under
// the root. Missing files pass and fail later as not found.
func (f *FilesystemLoader) contained(path string) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(resolved, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}
	return nil
}
