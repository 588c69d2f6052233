// Package assets provides the stylesheets and the HTML document template
// used for standalone HTML and PDF output.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - assets from a user directory
//	    └── AssetResolver     - user directory first, built-ins as fallback
//
// Overriding a single asset is enough: anything missing from the user
// directory is served from the built-in set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Templates are html/template sources executed with .Title, .Lang and
// .Body.
//
// # Security
//
// Asset names may not contain separators or dots. FilesystemLoader resolves
// symlinks and refuses paths that leave basePath.
package assets
