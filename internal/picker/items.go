package picker

import (
	"github.com/runger/dirjump/internal/model"
)

// Item is one selectable row, uniform across tabs so every tab can share
// the same windowed cache machinery.
type Item struct {
	ID         int64  // storage id; 0 for predicted entries
	Path       string // the directory Enter resolves to
	Annotation string // shortcut name or description shown next to the row
	Predicted  bool
}

// PathItems adapts a PathEntry lister to an Item lister.
func PathItems(l model.Lister[model.PathEntry]) model.Lister[Item] {
	return model.ListerFunc[Item](func(offset, limit int, filter string, fuzzy bool) ([]Item, error) {
		entries, err := l.List(offset, limit, filter, fuzzy)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(entries))
		for _, e := range entries {
			it := Item{ID: e.ID, Path: e.Path, Predicted: e.IsPredicted}
			if e.Shortcut != nil {
				it.Annotation = e.Shortcut.Name
			}
			items = append(items, it)
		}
		return items, nil
	})
}

// ShortcutItems adapts a Shortcut lister to an Item lister.
func ShortcutItems(l model.Lister[model.Shortcut]) model.Lister[Item] {
	return model.ListerFunc[Item](func(offset, limit int, filter string, fuzzy bool) ([]Item, error) {
		shortcuts, err := l.List(offset, limit, filter, fuzzy)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(shortcuts))
		for _, sc := range shortcuts {
			it := Item{ID: sc.ID, Path: sc.Path, Annotation: sc.Name}
			if sc.Description != "" {
				it.Annotation = sc.Name + ": " + sc.Description
			}
			items = append(items, it)
		}
		return items, nil
	})
}
