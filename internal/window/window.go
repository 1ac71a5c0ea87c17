// Package window implements a generic incremental pagination/filter cache.
// It sits in front of any Lister and lets an interactive consumer scroll
// and filter without re-querying storage on every keystroke or cursor move.
package window

import (
	"github.com/runger/dirjump/internal/model"
)

// NotifyFunc receives a change notification whenever the cached content
// changes. The transport (channel, pub/sub, direct UI update) is the
// consumer's business.
type NotifyFunc func(model.Notification)

// Window caches one contiguous slice of a Lister's results. It is not safe
// for concurrent use; it assumes ordered, single-threaded request/response
// from its owner.
type Window[T any] struct {
	lister      model.Lister[T]
	objectsType string
	notify      NotifyFunc

	entries []T
	first   int // absolute offset of entries[0]
	length  int // last requested window length
	hasData bool

	filter string
	fuzzy  bool
}

// New creates a Window over lister. objectsType tags notifications so a
// consumer can route them; notify may be nil.
func New[T any](lister model.Lister[T], objectsType string, notify NotifyFunc) *Window[T] {
	return &Window[T]{lister: lister, objectsType: objectsType, notify: notify}
}

// Entries returns the cached slice. Callers must not mutate it.
func (w *Window[T]) Entries() []T { return w.entries }

// First returns the absolute offset of the first cached entry.
func (w *Window[T]) First() int { return w.first }

// Filter returns the current filter text.
func (w *Window[T]) Filter() string { return w.filter }

// FuzzyMatch reports whether fuzzy matching is active.
func (w *Window[T]) FuzzyMatch() bool { return w.fuzzy }

// IsSubsetOf reports whether [offset, offset+length) is fully contained in
// the cached window.
func (w *Window[T]) IsSubsetOf(offset, length int) bool {
	return w.hasData && offset >= w.first && offset+length <= w.first+len(w.entries)
}

// Update makes [offset, offset+length) the cached window.
//
// When the request is already a subset of the cache (and neither force nor
// fuzzy matching demand a refetch), the cached data is sliced locally with
// no storage round trip. Otherwise the lister runs; a non-forced result
// that came back shorter than requested and fits inside the previous window
// is discarded, because it means the consumer scrolled past the end of the
// data and replacing the window would make the view clamp against stale,
// shorter results.
func (w *Window[T]) Update(offset, length int, force bool) error {
	if !force && !w.fuzzy && w.IsSubsetOf(offset, length) {
		rel := offset - w.first
		w.entries = w.entries[rel : rel+length]
		w.first = offset
		w.length = length
		w.notifyChanged()
		return nil
	}

	res, err := w.lister.List(offset, length, w.filter, w.fuzzy)
	if err != nil {
		return err
	}

	if !force && len(res) < length && w.IsSubsetOf(offset, len(res)) {
		// Scrolled past the end; keep the current window.
		return nil
	}

	if force && len(res) == 0 {
		w.clear()
	} else {
		w.entries = res
		w.first = offset
		w.hasData = true
	}
	w.length = length
	w.notifyChanged()
	return nil
}

// UpdateToOffset moves the window by rel entries relative to its current
// position, clamping the new absolute offset at zero.
func (w *Window[T]) UpdateToOffset(rel, length int) error {
	offset := w.first + rel
	if offset < 0 {
		offset = 0
	}
	return w.Update(offset, length, false)
}

// UpdateFilter replaces the filter and fuzzy flag and refetches from offset
// zero unconditionally.
func (w *Window[T]) UpdateFilter(length int, filter string, fuzzy bool) error {
	w.filter = filter
	w.fuzzy = fuzzy
	return w.Update(0, length, true)
}

// SetFuzzyMatch toggles fuzzy matching. A change forces a refetch of the
// current window.
func (w *Window[T]) SetFuzzyMatch(fuzzy bool) error {
	if w.fuzzy == fuzzy {
		return nil
	}
	w.fuzzy = fuzzy
	return w.Update(w.first, w.length, true)
}

// Reload refetches the current window with the current filter, replacing
// the cache unconditionally. Used after an external mutation such as a
// delete.
func (w *Window[T]) Reload() error {
	res, err := w.lister.List(w.first, w.length, w.filter, w.fuzzy)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		w.clear()
	} else {
		w.entries = res
		w.hasData = true
	}
	w.notifyChanged()
	return nil
}

func (w *Window[T]) clear() {
	w.entries = nil
	w.first = 0
	w.hasData = false
}

func (w *Window[T]) notifyChanged() {
	if w.notify != nil {
		w.notify(model.Notification{
			ObjectsType: w.objectsType,
			IsEmpty:     len(w.entries) == 0,
		})
	}
}
