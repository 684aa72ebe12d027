package assets

// AssetLoader returns stylesheets and templates by bare name, without
// directory or extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
