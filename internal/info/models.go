package info

// Topic is a single help entry, usually one command
type Topic struct {
	Name        string `yaml:"-" json:"name"`
	Command     string `yaml:"command,omitempty" json:"command,omitempty"`
	Description string `yaml:"description" json:"description" validate:"required"`
}

// Feature groups related help topics
type Feature struct {
	Name        string `yaml:"name" json:"name" validate:"required,max=32"`
	Title       string `yaml:"title" json:"title" validate:"required,max=100"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"`
	Order       int    `yaml:"order,omitempty" json:"order,omitempty"`
	Description string `yaml:"description" json:"description" validate:"required"`

	Topics map[string]Topic `yaml:"topics,omitempty" json:"topics,omitempty" validate:"dive"`
}

// TopicNames returns the feature's topic names in a stable order
func (f *Feature) TopicNames() []string {
	return sortedKeys(f.Topics)
}
