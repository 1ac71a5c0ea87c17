// Package model defines the core data types shared across dirjump:
// visited-path entries, shortcuts, the list-function contract between data
// sources and consumers, and the change-notification payload emitted by the
// windowed result cache.
package model

// PathEntry represents one directory occurrence, either read from storage
// or synthesized by the smart suggester.
type PathEntry struct {
	ID        int64
	Path      string
	Timestamp int64 // unix seconds of the visit

	// Shortcut is a derived annotation computed at read time; it is never
	// persisted. Nil when no shortcut covers the path.
	Shortcut *Shortcut

	// IsPredicted marks entries produced by sequence mining rather than
	// read directly from the current-path set.
	IsPredicted bool
}

// Shortcut is a named bookmark binding a short identifier to a directory.
// At most one shortcut exists per name. Description may be empty.
type Shortcut struct {
	ID          int64
	Name        string
	Path        string
	Description string
}

// Lister is the contract every listable data source implements. It is the
// sole coupling point between the storage/index layer and any interactive
// consumer: a paginated, filterable, optionally fuzzy listing.
type Lister[T any] interface {
	List(offset, limit int, filter string, fuzzy bool) ([]T, error)
}

// ListerFunc adapts a plain function to the Lister interface.
type ListerFunc[T any] func(offset, limit int, filter string, fuzzy bool) ([]T, error)

// List implements Lister.
func (f ListerFunc[T]) List(offset, limit int, filter string, fuzzy bool) ([]T, error) {
	return f(offset, limit, filter, fuzzy)
}

// Notification is the payload emitted when a windowed cache's content
// changes. The transport is supplied by the consumer; the core only defines
// the shape.
type Notification struct {
	ObjectsType string
	IsEmpty     bool
}
