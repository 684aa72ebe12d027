package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// Built-in asset names.
const (
	ReaderStyle   = "reader"
	PrintStyle    = "print"
	CoverTemplate = "cover"
)

// kind describes where one sort of asset lives inside an asset root.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// path returns the slash-separated location of name under an asset root.
func (k kind) path(name string) string {
	return k.dir + "/" + name + k.ext
}

func (k kind) read(fsys fs.FS, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, k.path(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

var builtinLoader = NewEmbeddedLoader()

// LoadStyle returns a built-in stylesheet.
func LoadStyle(name string) (string, error) {
	return builtinLoader.LoadStyle(name)
}

// LoadTemplate returns a built-in template.
func LoadTemplate(name string) (string, error) {
	return builtinLoader.LoadTemplate(name)
}
