package subsets

// ChangeType tells whether an entity was added or removed.
type ChangeType string

const (
	Added   ChangeType = "added"
	Removed ChangeType = "removed"
)

// Change is published for every entity added to or removed from a
// Registry.
type Change struct {
	Type   ChangeType `json:"type" yaml:"type"`
	Entity Entity     `json:"entity" yaml:"entity"`
}

// Publisher receives registry changes. Publish is called outside the
// registry lock and must not block for long.
type Publisher interface {
	Publish(Change) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Change) error

func (f PublisherFunc) Publish(c Change) error { return f(c) }
