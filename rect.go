package recttree

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a rectangle or bounds argument is
// malformed, e.g. has a non-positive width or height.
var ErrInvalidArgument = errors.New("recttree: invalid argument")

// Point is an integer position.
type Point struct {
	X, Y int
}

// Size is an integer extent.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned integer rectangle. The right and bottom edges are
// exclusive.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a Rect from its position and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{r.X, r.Y} }

// Size returns the width and height.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Positive reports whether both the width and height are greater than zero.
func (r Rect) Positive() bool {
	return r.Width > 0 && r.Height > 0
}

// Intersects reports whether two positive rectangles share any area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return max(r.Left(), o.Left()) < min(r.Right(), o.Right()) &&
		max(r.Top(), o.Top()) < min(r.Bottom(), o.Bottom())
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() &&
		o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// Union gives the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := min(r.Left(), o.Left())
	top := min(r.Top(), o.Top())
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

// Intersect is the validating form of Rect.Intersects. Both rectangles must
// be positive.
func Intersect(a, b Rect) (bool, error) {
	if err := checkPositive(a); err != nil {
		return false, err
	}
	if err := checkPositive(b); err != nil {
		return false, err
	}
	return a.Intersects(b), nil
}

func checkPositive(r Rect) error {
	if !r.Positive() {
		return fmt.Errorf("%w: %v is not positive", ErrInvalidArgument, r)
	}
	return nil
}
