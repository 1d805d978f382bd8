// Package featurewin hashes fixed-size windows of a screenshot and indexes
// them by position, in a recttree, and by hash value, in a btree. Two frames'
// indexes can then be matched window by window to find how far content moved.
package featurewin

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/corona10/goimagehash"
	"github.com/google/btree"

	"github.com/kinchungwong/recttree"
)

// HashKind selects the perceptual hash computed for each window.
type HashKind int

const (
	Average HashKind = iota
	Difference
	Perception
)

func (k HashKind) String() string {
	switch k {
	case Average:
		return "average"
	case Difference:
		return "difference"
	case Perception:
		return "perception"
	}
	return fmt.Sprintf("HashKind(%d)", int(k))
}

// ParseHashKind parses the names produced by HashKind.String.
func ParseHashKind(s string) (HashKind, error) {
	switch strings.ToLower(s) {
	case "average", "ahash":
		return Average, nil
	case "difference", "dhash":
		return Difference, nil
	case "perception", "phash":
		return Perception, nil
	}
	return 0, fmt.Errorf("featurewin: unknown hash kind %q", s)
}

func (k HashKind) hash(img image.Image) (*goimagehash.ImageHash, error) {
	switch k {
	case Average:
		return goimagehash.AverageHash(img)
	case Difference:
		return goimagehash.DifferenceHash(img)
	case Perception:
		return goimagehash.PerceptionHash(img)
	}
	return nil, fmt.Errorf("featurewin: unknown hash kind %d", int(k))
}

// ErrKindMismatch is returned when matching indexes built with different hash
// kinds.
var ErrKindMismatch = errors.New("featurewin: hash kinds differ")

// Options controls how windows are laid out and indexed.
type Options struct {
	Size     int // window width and height in pixels
	Step     int // distance between window origins
	Kind     HashKind
	Settings recttree.Settings
	Logger   *slog.Logger
}

// Window is one hashed region of an image, in image coordinates.
type Window struct {
	Rect recttree.Rect
	Hash *goimagehash.ImageHash
}

// Distance is the Hamming distance between the hashes of two windows.
func (w Window) Distance(o Window) (int, error) {
	return w.Hash.Distance(o.Hash)
}

type hashEntry struct {
	hash  uint64
	index int
}

func lessHashEntry(a, b hashEntry) bool {
	if a.hash != b.hash {
		return a.hash < b.hash
	}
	return a.index < b.index
}

// Index holds the hashed windows of one image.
type Index struct {
	kind    HashKind
	windows []Window
	tree    *recttree.Tree
	byHash  *btree.BTreeG[hashEntry]
}

const btreeDegree = 32

// Build tiles img into windows, hashes each one and indexes the result.
// Windows with a flat hash (all bits equal) carry no features and are left
// out.
func Build(img image.Image, opts Options) (*Index, error) {
	if opts.Size <= 0 || opts.Step <= 0 {
		return nil, fmt.Errorf("featurewin: window size %d and step %d must be positive", opts.Size, opts.Step)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := img.Bounds()
	tree, err := recttree.New(recttree.NewRect(b.Min.X, b.Min.Y, b.Dx(), b.Dy()), opts.Settings)
	if err != nil {
		return nil, fmt.Errorf("featurewin: image %v: %w", b, err)
	}
	ix := &Index{
		kind:   opts.Kind,
		tree:   tree,
		byHash: btree.NewG[hashEntry](btreeDegree, lessHashEntry),
	}

	var skipped int
	for y := b.Min.Y; y+opts.Size <= b.Max.Y; y += opts.Step {
		for x := b.Min.X; x+opts.Size <= b.Max.X; x += opts.Step {
			r := image.Rect(x, y, x+opts.Size, y+opts.Size)
			h, err := opts.Kind.hash(crop(img, r))
			if err != nil {
				return nil, fmt.Errorf("featurewin: hash window %v: %w", r, err)
			}
			if v := h.GetHash(); v == 0 || v == math.MaxUint64 {
				skipped++
				continue
			}
			ix.add(Window{Rect: recttree.NewRect(x, y, opts.Size, opts.Size), Hash: h})
		}
	}

	stats := tree.Stats()
	logger.Debug("feature index built",
		"bounds", b, "kind", opts.Kind, "windows", len(ix.windows), "flat", skipped,
		"nodes", stats.Nodes, "depth", stats.Depth, "straddling", stats.Straddling)
	return ix, nil
}

func (ix *Index) add(w Window) {
	index := len(ix.windows)
	ix.windows = append(ix.windows, w)
	if err := ix.tree.Insert(w.Rect, index); err != nil {
		// Window rects are always positive.
		panic(err)
	}
	ix.byHash.ReplaceOrInsert(hashEntry{hash: w.Hash.GetHash(), index: index})
}

// crop copies r out of img into a new image anchored at the origin.
func crop(img image.Image, r image.Rectangle) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// Kind returns the hash kind the index was built with.
func (ix *Index) Kind() HashKind { return ix.kind }

// Len returns the number of indexed windows.
func (ix *Index) Len() int { return len(ix.windows) }

// Windows returns the indexed windows. The slice must not be modified.
func (ix *Index) Windows() []Window { return ix.windows }

// Tree exposes the spatial index. Payloads are indices into Windows.
func (ix *Index) Tree() *recttree.Tree { return ix.tree }

// Overlapping returns the windows intersecting r, in window order.
func (ix *Index) Overlapping(r recttree.Rect) ([]Window, error) {
	indices, err := ix.tree.QueryIndices(r)
	if err != nil {
		return nil, err
	}
	sort.Ints(indices)
	found := make([]Window, len(indices))
	for i, index := range indices {
		found[i] = ix.windows[index]
	}
	return found, nil
}

// WithHash returns the windows whose hash value is exactly h, in window order.
func (ix *Index) WithHash(h uint64) []Window {
	var found []Window
	ix.byHash.AscendGreaterOrEqual(hashEntry{hash: h, index: math.MinInt}, func(e hashEntry) bool {
		if e.hash != h {
			return false
		}
		found = append(found, ix.windows[e.index])
		return true
	})
	return found
}
