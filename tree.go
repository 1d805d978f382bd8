// Package recttree is an in-memory quadrant tree for integer rectangles. It
// answers which stored rectangles intersect a query rectangle without
// scanning every rectangle.
//
// Every node classifies an incoming rectangle against its two midlines. A
// rectangle confined to one quadrant is stored in that quadrant's bucket (or
// passed down to the quadrant's child node, if one exists); anything else is
// kept in the node's Straddle bucket. Quadrant buckets are promoted to child
// nodes lazily, once they grow past the thresholds in Settings.
//
// A Tree has no internal locking. Concurrent queries are safe while no Insert
// is running; Insert must be serialised with everything else. Clone gives an
// independent copy that can be published to readers.
package recttree

// NoChild marks an empty child slot in Node.Children.
const NoChild = -1

// MinSubdividableLength is the smallest half size (in both dimensions) a node
// must have to create children. Children of such a node are at least
// MinBoundsLength on each side.
const MinSubdividableLength = 2

// Record is a rectangle and its caller-supplied payload index, held in a
// bucket. Flag is the classification computed against the owning node when
// the record was stored.
type Record struct {
	Rect  Rect
	Index int
	Flag  ItemFlags
}

// Node is a node of the tree. Records and Children are indexed by Quadrant;
// a quadrant either has a child node or a bucket of records, never both.
type Node struct {
	Bounds              NodeBounds
	Records             [BucketCount][]Record
	Children            [QuadrantCount]int
	CanCreateChildNodes bool
}

// Tree is the quadrant tree. Nodes live in a single slice and refer to their
// children by index into it.
type Tree struct {
	RootIndex int
	Nodes     []Node
	Settings  Settings
}

// New creates an empty tree covering bounds. Rectangles outside bounds may
// still be inserted; they are kept at the root.
func New(bounds Rect, settings Settings) (*Tree, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	nb, err := NewNodeBounds(bounds)
	if err != nil {
		return nil, err
	}
	t := &Tree{Settings: settings}
	t.RootIndex = t.addNode(nb)
	return t, nil
}

func (t *Tree) addNode(nb NodeBounds) int {
	t.Nodes = append(t.Nodes, Node{
		Bounds:              nb,
		Children:            [QuadrantCount]int{NoChild, NoChild, NoChild, NoChild},
		CanCreateChildNodes: min(nb.HalfSize.Width, nb.HalfSize.Height) >= MinSubdividableLength,
	})
	return len(t.Nodes) - 1
}

// Bounds returns the root bounds.
func (t *Tree) Bounds() Rect {
	return t.Nodes[t.RootIndex].Bounds.Rect
}

// Child returns the index of the child node owning quadrant q of node n, or
// NoChild.
func (n *Node) Child(q Quadrant) int {
	if q == Straddle {
		return NoChild
	}
	return n.Children[q]
}

// Query calls onMatch for every stored rectangle that intersects q. Results
// are delivered synchronously in no particular order. onMatch must not
// modify the tree.
func (t *Tree) Query(q Rect, onMatch func(r Rect, index int)) error {
	if err := checkPositive(q); err != nil {
		return err
	}
	t.query(t.RootIndex, q, onMatch)
	return nil
}

func (t *Tree) query(n int, q Rect, onMatch func(Rect, int)) {
	node := &t.Nodes[n]
	mask := node.Bounds.classify(q)
	for b := Quadrant(0); b < BucketCount; b++ {
		// The Straddle bucket is always scanned: at the root it may hold
		// rectangles extending past the bounds, which a query lying wholly
		// outside the bounds can still hit.
		if b != Straddle && mask&ChildToFlag(b) == 0 {
			continue
		}
		for _, rec := range node.Records[b] {
			if rec.Rect.Intersects(q) {
				onMatch(rec.Rect, rec.Index)
			}
		}
		if c := node.Child(b); c != NoChild {
			t.query(c, q, onMatch)
		}
	}
}

// QueryIndices collects the payload indices of every stored rectangle that
// intersects q.
func (t *Tree) QueryIndices(q Rect) ([]int, error) {
	var found []int
	err := t.Query(q, func(_ Rect, index int) {
		found = append(found, index)
	})
	return found, err
}

// Len returns the number of stored records.
func (t *Tree) Len() int {
	var count int
	for i := range t.Nodes {
		for _, bucket := range t.Nodes[i].Records {
			count += len(bucket)
		}
	}
	return count
}

// Walk visits every node reachable from the root in pre-order, children in
// quadrant order.
func (t *Tree) Walk(fn func(index int, n *Node, depth int)) {
	var recurse func(int, int)
	recurse = func(n, depth int) {
		node := &t.Nodes[n]
		fn(n, node, depth)
		for _, c := range node.Children {
			if c != NoChild {
				recurse(c, depth+1)
			}
		}
	}
	recurse(t.RootIndex, 0)
}

// Stats summarises the shape of a tree.
type Stats struct {
	Nodes      int
	Depth      int
	Records    int
	Straddling int
}

// Stats walks the tree and reports its shape. Depth counts the root as 1.
func (t *Tree) Stats() Stats {
	var s Stats
	t.Walk(func(_ int, n *Node, depth int) {
		s.Nodes++
		s.Depth = max(s.Depth, depth+1)
		for _, bucket := range n.Records {
			s.Records += len(bucket)
		}
		s.Straddling += len(n.Records[Straddle])
	})
	return s
}

// Clone returns a deep copy of the tree. The copy shares no buckets with t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		RootIndex: t.RootIndex,
		Nodes:     make([]Node, len(t.Nodes)),
		Settings:  t.Settings,
	}
	for i, n := range t.Nodes {
		for b, bucket := range n.Records {
			if bucket != nil {
				n.Records[b] = append([]Record(nil), bucket...)
			}
		}
		c.Nodes[i] = n
	}
	return c
}
