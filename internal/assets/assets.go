package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// DefaultTemplateName is the name of the built-in document template.
const DefaultTemplateName = "document"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name (without .css).
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in document template by name (without .html).
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// StyleNames lists the built-in styles, sorted.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
