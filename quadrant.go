package recttree

import "fmt"

// Quadrant identifies one of the five buckets of a node: the four quadrants,
// which may be promoted to child nodes, and Straddle, which never is.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
	Straddle
)

const (
	// QuadrantCount is the number of buckets that can own a child node.
	QuadrantCount = 4
	// BucketCount includes the Straddle bucket.
	BucketCount = 5
)

var quadrantNames = [BucketCount]string{"TopLeft", "TopRight", "BottomLeft", "BottomRight", "Straddle"}

func (q Quadrant) String() string {
	if q < 0 || q >= BucketCount {
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
	return quadrantNames[q]
}

// FlagToChild maps a classification to the bucket that stores it. Only a
// rectangle confined to one half on both axes goes to a quadrant.
func FlagToChild(f ItemFlags) Quadrant {
	switch f {
	case InsideLeft | InsideTop:
		return TopLeft
	case InsideRight | InsideTop:
		return TopRight
	case InsideLeft | InsideBottom:
		return BottomLeft
	case InsideRight | InsideBottom:
		return BottomRight
	default:
		return Straddle
	}
}

// ChildToFlag gives the flags a query must share with a bucket for that
// bucket to possibly hold a match.
func ChildToFlag(q Quadrant) ItemFlags {
	switch q {
	case TopLeft:
		return InsideLeft | InsideTop
	case TopRight:
		return InsideRight | InsideTop
	case BottomLeft:
		return InsideLeft | InsideBottom
	case BottomRight:
		return InsideRight | InsideBottom
	case Straddle:
		return InsideMask
	}
	panic(fmt.Sprintf("recttree: bucket index %d out of range", int(q)))
}
