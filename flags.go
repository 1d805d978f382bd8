package recttree

import "strings"

// ItemFlags describes where a rectangle lies relative to the midlines of a
// node's bounds. The low nibble holds the horizontal verdict and the high
// nibble the vertical verdict, so the two axes combine with a plain OR.
type ItemFlags uint8

const (
	OutsideLeft ItemFlags = 1 << iota
	InsideLeft
	InsideRight
	OutsideRight
	OutsideTop
	InsideTop
	InsideBottom
	OutsideBottom
)

const (
	LeftMask   = OutsideLeft | InsideLeft
	RightMask  = InsideRight | OutsideRight
	TopMask    = OutsideTop | InsideTop
	BottomMask = InsideBottom | OutsideBottom

	HorizontalMask = LeftMask | RightMask
	VerticalMask   = TopMask | BottomMask

	InsideMask  = InsideLeft | InsideRight | InsideTop | InsideBottom
	OutsideMask = OutsideLeft | OutsideRight | OutsideTop | OutsideBottom
)

// Compile-time layout checks: each expression overflows unless the two axes
// occupy exactly the low and high nibble. The quadrant table depends on it.
const (
	_ = ItemFlags(0) - HorizontalMask&VerticalMask
	_ = HorizontalMask - 0x0f
	_ = 0x0f - HorizontalMask
	_ = VerticalMask - 0xf0
	_ = 0xf0 - VerticalMask
	_ = ItemFlags(0) - InsideMask&OutsideMask
)

var flagNames = [...]string{"OL", "IL", "IR", "OR", "OT", "IT", "IB", "OB"}

// Horizontal returns only the horizontal bits.
func (f ItemFlags) Horizontal() ItemFlags { return f & HorizontalMask }

// Vertical returns only the vertical bits.
func (f ItemFlags) Vertical() ItemFlags { return f & VerticalMask }

func (f ItemFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
