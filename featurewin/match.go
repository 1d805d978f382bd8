package featurewin

import (
	"fmt"
	"sort"

	"github.com/kinchungwong/recttree"
)

// Match pairs a window of one frame with a window of another frame that has
// the same hash.
type Match struct {
	From, To Window
}

// Offset is how far the content moved from From to To.
func (m Match) Offset() recttree.Point {
	return recttree.Point{
		X: m.To.Rect.X - m.From.Rect.X,
		Y: m.To.Rect.Y - m.From.Rect.Y,
	}
}

// Match pairs every window of ix with every window of other that has an
// identical hash. Hashes that occur more than maxRepeat times in other are
// ambiguous and ignored; maxRepeat <= 0 means no limit.
func (ix *Index) Match(other *Index, maxRepeat int) ([]Match, error) {
	if ix.kind != other.kind {
		return nil, fmt.Errorf("%w: %v and %v", ErrKindMismatch, ix.kind, other.kind)
	}
	var matches []Match
	for _, from := range ix.windows {
		candidates := other.WithHash(from.Hash.GetHash())
		if maxRepeat > 0 && len(candidates) > maxRepeat {
			continue
		}
		for _, to := range candidates {
			matches = append(matches, Match{From: from, To: to})
		}
	}
	return matches, nil
}

// OffsetVote counts the matches that agree on one offset.
type OffsetVote struct {
	Offset recttree.Point
	Votes  int
}

// VoteOffsets tallies matches by offset, most votes first. Ties are ordered
// by Y then X.
func VoteOffsets(matches []Match) []OffsetVote {
	counts := make(map[recttree.Point]int)
	for _, m := range matches {
		counts[m.Offset()]++
	}
	votes := make([]OffsetVote, 0, len(counts))
	for off, n := range counts {
		votes = append(votes, OffsetVote{Offset: off, Votes: n})
	}
	sort.Slice(votes, func(i, j int) bool {
		vi, vj := votes[i], votes[j]
		if vi.Votes != vj.Votes {
			return vi.Votes > vj.Votes
		}
		if vi.Offset.Y != vj.Offset.Y {
			return vi.Offset.Y < vj.Offset.Y
		}
		return vi.Offset.X < vj.Offset.X
	})
	return votes
}
