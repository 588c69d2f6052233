package assets

// AssetLoader loads CSS styles and HTML document templates by name.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound or ErrInvalidAssetName on failure.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound or ErrInvalidAssetName on failure.
	LoadTemplate(name string) (string, error)
}
