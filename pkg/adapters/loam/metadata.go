package loam

// ExampleMetadata is the frontmatter of a snippet document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ExampleMetadata struct {
	ID          string         `json:"id" mapstructure:"id"`
	Title       string         `json:"title" mapstructure:"title"`
	Description string         `json:"description" mapstructure:"description"`
	State       map[string]any `json:"state" mapstructure:"state"`
}
