package importfile

// Entry is a single favorite in the import file.
// Input accepts anything the resolver accepts: watch URLs, youtu.be links,
// shorts/embed paths or a bare 11-character id.
type Entry struct {
	Input string `yaml:"input"`
	Note  string `yaml:"note,omitempty"`
}

// Group maps a group name to its entries.
// The YAML structure is: - GroupName: [ { input, note } ]
type Group map[string][]Entry

// Config is the root structure of the import file
type Config []Group
