package recttree

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned when a Settings value has a non-positive
// field. It matches ErrInvalidArgument under errors.Is.
var ErrInvalidSettings = fmt.Errorf("%w: settings", ErrInvalidArgument)

// Settings controls bucket allocation and when buckets are promoted to child
// nodes. A tree keeps its own copy, so changing a Settings value after New
// has no effect on the tree.
type Settings struct {
	// ListInitialCapacity is the capacity a bucket is allocated with.
	ListInitialCapacity int
	// EachListToNodeThreshold promotes a quadrant bucket once it holds this
	// many records.
	EachListToNodeThreshold int
	// TotalListToNodeThreshold promotes all quadrant buckets of a node once
	// together they hold this many records.
	TotalListToNodeThreshold int
}

// DefaultSettings returns the settings used by the scroll-stitching tools.
func DefaultSettings() Settings {
	return Settings{
		ListInitialCapacity:      4,
		EachListToNodeThreshold:  16,
		TotalListToNodeThreshold: 64,
	}
}

// Validate checks that every field is positive.
func (s Settings) Validate() error {
	var errs []error
	if s.ListInitialCapacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: list initial capacity %d", ErrInvalidSettings, s.ListInitialCapacity))
	}
	if s.EachListToNodeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: each list threshold %d", ErrInvalidSettings, s.EachListToNodeThreshold))
	}
	if s.TotalListToNodeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: total list threshold %d", ErrInvalidSettings, s.TotalListToNodeThreshold))
	}
	return errors.Join(errs...)
}
