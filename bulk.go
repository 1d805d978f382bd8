package recttree

import (
	"fmt"
	"sort"
)

// InsertItem is an item that can be inserted for bulk loading.
type InsertItem struct {
	Rect      Rect
	DataIndex int
}

// BoundsFor returns the smallest rectangle covering every item, widened to
// MinBoundsLength in each dimension if needed. It fails on an empty or
// non-positive item.
func BoundsFor(items []InsertItem) (Rect, error) {
	if len(items) == 0 {
		return Rect{}, fmt.Errorf("%w: no items", ErrInvalidArgument)
	}
	var bounds Rect
	for i, item := range items {
		if err := checkPositive(item.Rect); err != nil {
			return Rect{}, fmt.Errorf("item %d: %w", i, err)
		}
		if i == 0 {
			bounds = item.Rect
		} else {
			bounds = bounds.Union(item.Rect)
		}
	}
	bounds.Width = max(bounds.Width, MinBoundsLength)
	bounds.Height = max(bounds.Height, MinBoundsLength)
	return bounds, nil
}

// BulkLoad builds a tree over BoundsFor(inserts) and inserts every item. Items
// are inserted in order of their centres along the longer axis of the bounds,
// so neighbouring items tend to fill the same bucket together.
func BulkLoad(inserts []InsertItem, settings Settings) (*Tree, error) {
	bounds, err := BoundsFor(inserts)
	if err != nil {
		return nil, err
	}
	t, err := New(bounds, settings)
	if err != nil {
		return nil, err
	}

	items := make([]InsertItem, len(inserts))
	copy(items, inserts)

	var sortBy func(i, j int) bool
	if bounds.Width > bounds.Height {
		sortBy = func(i, j int) bool {
			ri := items[i].Rect
			rj := items[j].Rect
			return ri.Left()+ri.Right() < rj.Left()+rj.Right()
		}
	} else {
		sortBy = func(i, j int) bool {
			ri := items[i].Rect
			rj := items[j].Rect
			return ri.Top()+ri.Bottom() < rj.Top()+rj.Bottom()
		}
	}
	sort.SliceStable(items, sortBy)

	for _, item := range items {
		t.insert(t.RootIndex, item.Rect, item.DataIndex)
	}
	return t, nil
}
