package recttree

import "fmt"

// MinBoundsLength is the smallest width or height a NodeBounds may have.
const MinBoundsLength = 2

// NodeBounds is the immutable region owned by a node, together with the half
// size used to place its midlines.
type NodeBounds struct {
	Rect     Rect
	HalfSize Size
}

// NewNodeBounds validates r and computes its half size. Both dimensions of r
// must be at least MinBoundsLength.
func NewNodeBounds(r Rect) (NodeBounds, error) {
	if r.Width < MinBoundsLength || r.Height < MinBoundsLength {
		return NodeBounds{}, fmt.Errorf("%w: node bounds %v smaller than %dx%d",
			ErrInvalidArgument, r, MinBoundsLength, MinBoundsLength)
	}
	half := Size{Width: r.Width / 2, Height: r.Height / 2}
	if half.Width <= 0 || half.Width >= r.Width || half.Height <= 0 || half.Height >= r.Height {
		return NodeBounds{}, fmt.Errorf("%w: node bounds %v has degenerate half size", ErrInvalidArgument, r)
	}
	return NodeBounds{Rect: r, HalfSize: half}, nil
}

// Center returns the point where the two midlines cross.
func (b NodeBounds) Center() Point {
	return Point{X: b.Rect.X + b.HalfSize.Width, Y: b.Rect.Y + b.HalfSize.Height}
}

// Quadrant returns the sub-rectangle owned by quadrant q. The split is made at
// Center, using the same thresholds as the classifier, so a rectangle that
// classifies into q always lies inside Quadrant(q).
func (b NodeBounds) Quadrant(q Quadrant) Rect {
	r, c := b.Rect, b.Center()
	switch q {
	case TopLeft:
		return Rect{X: r.X, Y: r.Y, Width: c.X - r.X, Height: c.Y - r.Y}
	case TopRight:
		return Rect{X: c.X, Y: r.Y, Width: r.Right() - c.X, Height: c.Y - r.Y}
	case BottomLeft:
		return Rect{X: r.X, Y: c.Y, Width: c.X - r.X, Height: r.Bottom() - c.Y}
	case BottomRight:
		return Rect{X: c.X, Y: c.Y, Width: r.Right() - c.X, Height: r.Bottom() - c.Y}
	}
	panic(fmt.Sprintf("recttree: no sub-rectangle for quadrant %d", int(q)))
}

// ClassifyItemLeft returns the horizontal regions an item could occupy given
// only its left edge.
func (b NodeBounds) ClassifyItemLeft(itemLeft int) ItemFlags {
	left := b.Rect.Left()
	center := left + b.HalfSize.Width
	switch {
	case itemLeft >= b.Rect.Right():
		return OutsideRight
	case itemLeft >= center:
		return RightMask
	case itemLeft >= left:
		return InsideLeft | RightMask
	default:
		return HorizontalMask
	}
}

// ClassifyItemRight returns the horizontal regions an item could occupy given
// only its (exclusive) right edge.
func (b NodeBounds) ClassifyItemRight(itemRight int) ItemFlags {
	left := b.Rect.Left()
	center := left + b.HalfSize.Width
	switch {
	case itemRight <= left:
		return OutsideLeft
	case itemRight <= center:
		return LeftMask
	case itemRight <= b.Rect.Right():
		return LeftMask | InsideRight
	default:
		return HorizontalMask
	}
}

// ClassifyItemTop is ClassifyItemLeft for the vertical axis.
func (b NodeBounds) ClassifyItemTop(itemTop int) ItemFlags {
	top := b.Rect.Top()
	center := top + b.HalfSize.Height
	switch {
	case itemTop >= b.Rect.Bottom():
		return OutsideBottom
	case itemTop >= center:
		return BottomMask
	case itemTop >= top:
		return InsideTop | BottomMask
	default:
		return VerticalMask
	}
}

// ClassifyItemBottom is ClassifyItemRight for the vertical axis.
func (b NodeBounds) ClassifyItemBottom(itemBottom int) ItemFlags {
	top := b.Rect.Top()
	center := top + b.HalfSize.Height
	switch {
	case itemBottom <= top:
		return OutsideTop
	case itemBottom <= center:
		return TopMask
	case itemBottom <= b.Rect.Bottom():
		return TopMask | InsideBottom
	default:
		return VerticalMask
	}
}

// ClassifyItem combines the four edge verdicts. Per axis the AND leaves one
// of: outside one side, inside one half, spanning the midline within bounds
// (both inside bits), or spanning beyond bounds (the whole axis mask).
func (b NodeBounds) ClassifyItem(r Rect) (ItemFlags, error) {
	if err := checkPositive(r); err != nil {
		return 0, err
	}
	return b.classify(r), nil
}

// classify is ClassifyItem without validation, for callers that already
// checked r.
func (b NodeBounds) classify(r Rect) ItemFlags {
	h := b.ClassifyItemLeft(r.Left()) & b.ClassifyItemRight(r.Right())
	v := b.ClassifyItemTop(r.Top()) & b.ClassifyItemBottom(r.Bottom())
	return h | v
}
