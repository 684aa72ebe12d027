package assets

// AssetResolver looks assets up in an optional override directory and
// falls back to the embedded ones for names the directory lacks.
type AssetResolver struct {
	loaders []AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver returns a resolver over dir and the embedded assets.
// An empty dir means embedded only.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if dir != "" {
		custom, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// first returns the first loader's result that is not a not-found error.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil || !IsNotFound(err) {
			return content, err
		}
	}
	return "", err
}

// HasCustomLoader reports whether an override directory is in use.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.loaders) > 1
}
