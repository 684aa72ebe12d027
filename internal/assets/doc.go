// Package assets serves the stylesheets of the reader view and the print
// export, and the cover template of the export.
//
// Assets are addressed by bare name. Styles live under styles/{name}.css
// and templates under templates/{name}.html, both in the embedded tree and
// in an optional override directory:
//
//	EmbeddedLoader    built-in files compiled into the binary
//	FilesystemLoader  an override directory on disk
//	AssetResolver     the override directory first, then the built-ins
//
// Names are validated so they cannot address other files, and the
// filesystem loader refuses symlinks that lead out of its directory.
package assets
