package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations must be safe to reuse across requests.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// FrontMatter models the metadata block that prefixes a content file.
// Recognised keys are typed; anything else lands in Custom untouched.
type FrontMatter struct {
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Spoiler string   `json:"spoiler"`
	Tags    []string `json:"tags"`
	Author  string   `json:"author,omitempty"`
	Draft   bool     `json:"draft"`
	// Indexed defaults to true when the key is absent.
	Indexed bool           `json:"indexed"`
	Custom  map[string]any `json:"custom,omitempty"`
	// Raw holds every key that was present in the source block.
	Raw map[string]any `json:"-"`
}
