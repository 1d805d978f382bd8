package recttree

import "fmt"

// Insert adds a rectangle with its payload index to the tree. r must be
// positive. The payload is stored as-is and never interpreted.
func (t *Tree) Insert(r Rect, index int) error {
	if err := checkPositive(r); err != nil {
		return err
	}
	t.insert(t.RootIndex, r, index)
	return nil
}

func (t *Tree) insert(n int, r Rect, index int) {
	for {
		node := &t.Nodes[n]
		flag := node.Bounds.classify(r)
		b := FlagToChild(flag)
		if c := node.Child(b); c != NoChild {
			n = c
			continue
		}
		if node.Records[b] == nil {
			node.Records[b] = make([]Record, 0, t.Settings.ListInitialCapacity)
		}
		node.Records[b] = append(node.Records[b], Record{Rect: r, Index: index, Flag: flag})
		t.maybeSplit(n, b)
		return
	}
}

// maybeSplit promotes buckets of node n after an insert into bucket b.
func (t *Tree) maybeSplit(n int, b Quadrant) {
	node := &t.Nodes[n]
	if !node.CanCreateChildNodes || b == Straddle {
		return
	}
	if len(node.Records[b]) >= t.Settings.EachListToNodeThreshold {
		t.promote(n, b)
		return
	}
	var total int
	for q := Quadrant(0); q < QuadrantCount; q++ {
		total += len(node.Records[q])
	}
	if total < t.Settings.TotalListToNodeThreshold {
		return
	}
	for q := Quadrant(0); q < QuadrantCount; q++ {
		// promote may grow t.Nodes, so node is re-read each time.
		if t.Nodes[n].Children[q] == NoChild && len(t.Nodes[n].Records[q]) > 0 {
			t.promote(n, q)
		}
	}
}

// promote turns bucket q of node n into a child node and moves the bucket's
// records into it.
func (t *Tree) promote(n int, q Quadrant) {
	if q < 0 || q >= QuadrantCount {
		panic(fmt.Sprintf("recttree: cannot promote bucket %d", int(q)))
	}
	if t.Nodes[n].Children[q] != NoChild {
		panic("recttree: quadrant already has a child")
	}
	nb, err := NewNodeBounds(t.Nodes[n].Bounds.Quadrant(q))
	if err != nil {
		// CanCreateChildNodes guarantees every quadrant is a valid bound.
		panic(err)
	}
	child := t.addNode(nb)

	records := t.Nodes[n].Records[q]
	t.Nodes[n].Records[q] = nil
	t.Nodes[n].Children[q] = child
	for _, rec := range records {
		t.insert(child, rec.Rect, rec.Index)
	}
}
