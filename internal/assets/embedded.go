package assets

import "embed"

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

var _ AssetLoader = (*EmbeddedLoader)(nil)

// NewEmbeddedLoader returns the built-in loader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return styleKind.read(builtin, name)
}

func (*EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return templateKind.read(builtin, name)
}
