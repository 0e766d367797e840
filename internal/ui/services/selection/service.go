// Package selection tracks which items of an externally owned list are selected.
//
// A Controller supports two interaction modes: independent toggling of single items and
// range extension from a pivot item, the way ctrl-click and shift-click behave in file managers.
package selection

import (
	"iter"
	"maps"

	"modgrip/internal/ui/services/events"
)

// Controller holds the selection map and pivot index for one list.
// It is not safe for concurrent use; it belongs to the UI update loop.
type Controller[T comparable, K comparable, D any] struct {
	source    func() []T
	keyOf     func(T) K
	payloadOf func(T) D
	reference func() (T, bool)

	selected map[K]D
	pivot    int
	bus      events.EventBus
}

// New creates a controller over source. reference may be nil.
func New[T comparable, K comparable, D any](
	source func() []T,
	keyOf func(T) K,
	payloadOf func(T) D,
	reference func() (T, bool),
) *Controller[T, K, D] {
	return &Controller[T, K, D]{
		source:    source,
		keyOf:     keyOf,
		payloadOf: payloadOf,
		reference: reference,
		selected:  make(map[K]D),
		pivot:     noPivot,
		bus:       &events.NullBus{},
	}
}

// SetBus sets the bus selection changes are published on
func (c *Controller[T, K, D]) SetBus(bus events.EventBus) {
	if bus == nil {
		bus = &events.NullBus{}
	}
	c.bus = bus
}

// Toggle flips the membership of item and makes index the new pivot
func (c *Controller[T, K, D]) Toggle(item T, index int) {
	key := c.keyOf(item)

	var added, removed int
	if _, ok := c.selected[key]; ok {
		delete(c.selected, key)
		removed = 1
	} else {
		c.selected[key] = c.payloadOf(item)
		added = 1
	}

	c.pivot = index

	c.bus.Publish(ChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   len(c.selected),
	})
}

// SelectRange replaces the selection with every item between the effective pivot and index,
// inclusive. The pivot itself is left untouched so repeated calls re-anchor on it.
func (c *Controller[T, K, D]) SelectRange(item T, index int) {
	pivot, ok := c.effectivePivot()
	if !ok || pivot == item {
		return
	}

	items := c.source()
	pivotIndex := -1
	for i, candidate := range items {
		if candidate == pivot {
			pivotIndex = i
			break
		}
	}
	if pivotIndex < 0 {
		return
	}

	start, end := pivotIndex, index
	if start > end {
		start, end = end, start
	}
	if end >= len(items) {
		end = len(items) - 1
	}
	if start < 0 {
		start = 0
	}

	next := make(map[K]D, end-start+1)
	for _, it := range items[start : end+1] {
		next[c.keyOf(it)] = c.payloadOf(it)
	}

	var added, removed int
	for key := range next {
		if _, ok := c.selected[key]; !ok {
			added++
		}
	}
	for key := range c.selected {
		if _, ok := next[key]; !ok {
			removed++
		}
	}

	c.selected = next

	c.bus.Publish(ChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   len(c.selected),
	})
}

// Clear empties the selection and unsets the pivot
func (c *Controller[T, K, D]) Clear() {
	clear(c.selected)
	c.pivot = noPivot

	c.bus.Publish(ClearedEvent{})
}

// IsPivot reports whether item is the current anchor for range selection
func (c *Controller[T, K, D]) IsPivot(item T) bool {
	pivot, ok := c.effectivePivot()
	return ok && pivot == item
}

// Pivot returns the pivot index set by the last toggle
func (c *Controller[T, K, D]) Pivot() (int, bool) {
	return c.pivot, c.pivot != noPivot
}

// effectivePivot is the item at the pivot index, or the reference item when no pivot is set
func (c *Controller[T, K, D]) effectivePivot() (T, bool) {
	var zero T
	if c.pivot != noPivot {
		items := c.source()
		if c.pivot < 0 || c.pivot >= len(items) {
			return zero, false
		}
		return items[c.pivot], true
	}
	if c.reference == nil {
		return zero, false
	}
	return c.reference()
}

// Has reports whether key is selected
func (c *Controller[T, K, D]) Has(key K) bool {
	_, ok := c.selected[key]
	return ok
}

// Get returns the payload retained for key
func (c *Controller[T, K, D]) Get(key K) (D, bool) {
	d, ok := c.selected[key]
	return d, ok
}

// Len returns the number of selected keys
func (c *Controller[T, K, D]) Len() int {
	return len(c.selected)
}

// All iterates over the live selection
func (c *Controller[T, K, D]) All() iter.Seq2[K, D] {
	return maps.All(c.selected)
}

// Keys iterates over the selected keys
func (c *Controller[T, K, D]) Keys() iter.Seq[K] {
	return maps.Keys(c.selected)
}

// Snapshot returns a copy of the selection map
func (c *Controller[T, K, D]) Snapshot() map[K]D {
	return maps.Clone(c.selected)
}
