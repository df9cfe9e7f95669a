package domain

// Icon describes how an item or section should be rendered visually.
// Exactly one of the two fields is normally set: Symbol names a glyph
// from the host's symbol set, Path points at a resource on disk.
// The zero value means "no icon".
type Icon struct {
	// Symbol is a symbolic glyph name (e.g. "doc", "folder", "clock").
	Symbol string

	// Path is a filesystem location of an icon resource.
	Path string
}

// IsZero reports whether the icon carries no information.
func (i Icon) IsZero() bool {
	return i.Symbol == "" && i.Path == ""
}

// Item is the capability every searchable entity must provide.
// Identity is carried by ID and must stay stable across mutations of
// the display attributes; two items are the same entity iff their IDs
// are equal. The overlay core never inspects concrete item types.
type Item interface {
	// ID returns the stable, comparable identity of the item.
	ID() string

	// Title returns the display name, which is also the primary
	// search key for snapshot filtering.
	Title() string

	// Subtitle returns optional secondary text. May be empty.
	Subtitle() string

	// Icon returns the icon descriptor for the item.
	Icon() Icon
}

// StaticItem is a plain value implementation of Item, convenient for
// in-memory sources and tests.
type StaticItem struct {
	// Key is the stable identity.
	Key string

	// Name is the display name.
	Name string

	// Detail is the optional subtitle.
	Detail string

	// Glyph is the icon descriptor.
	Glyph Icon
}

// Ensure StaticItem implements Item.
var _ Item = StaticItem{}

// ID implements Item.
func (s StaticItem) ID() string { return s.Key }

// Title implements Item.
func (s StaticItem) Title() string { return s.Name }

// Subtitle implements Item.
func (s StaticItem) Subtitle() string { return s.Detail }

// Icon implements Item.
func (s StaticItem) Icon() Icon { return s.Glyph }
