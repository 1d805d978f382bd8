package featurewin

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/kinchungwong/recttree"
)

// makeNoiseCanvas creates a grayscale image of 4x4 pixel blocks with random
// levels, so that every window has a distinct, non-flat hash.
func makeNoiseCanvas(width, height int, seed int64) *image.Gray {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for by := 0; by < height; by += 4 {
		for bx := 0; bx < width; bx += 4 {
			c := color.Gray{Y: uint8(rnd.Intn(256))}
			for y := by; y < by+4 && y < height; y++ {
				for x := bx; x < bx+4 && x < width; x++ {
					img.SetGray(x, y, c)
				}
			}
		}
	}
	return img
}

// scrolledFrames cuts two frames out of one tall canvas, the second one
// scrolled down by dy pixels.
func scrolledFrames(width, height, dy int) (*image.Gray, *image.Gray) {
	canvas := makeNoiseCanvas(width, height+dy, 42)
	frame := func(top int) *image.Gray {
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+width], canvas.Pix[(y+top)*canvas.Stride:])
		}
		return img
	}
	return frame(0), frame(dy)
}

func testOptions(kind HashKind) Options {
	return Options{Size: 16, Step: 8, Kind: kind, Settings: recttree.Settings{
		ListInitialCapacity:      2,
		EachListToNodeThreshold:  4,
		TotalListToNodeThreshold: 16,
	}}
}

func TestBuildTilesImage(t *testing.T) {
	img := makeNoiseCanvas(64, 48, 1)
	ix, err := Build(img, testOptions(Average))
	if err != nil {
		t.Fatal(err)
	}
	// (64-16)/8+1 = 7 columns, (48-16)/8+1 = 5 rows.
	if ix.Len() != 35 {
		t.Fatalf("Len() = %d, want 35", ix.Len())
	}
	if ix.Tree().Len() != 35 {
		t.Errorf("tree holds %d records, want 35", ix.Tree().Len())
	}
	for _, w := range ix.Windows() {
		if w.Rect.Width != 16 || w.Rect.Height != 16 || w.Rect.X%8 != 0 || w.Rect.Y%8 != 0 {
			t.Errorf("unexpected window %v", w.Rect)
		}
	}
}

func TestBuildSkipsFlatWindows(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	for _, kind := range []HashKind{Average, Difference} {
		ix, err := Build(img, testOptions(kind))
		if err != nil {
			t.Fatal(err)
		}
		if ix.Len() != 0 {
			t.Errorf("%v: flat image produced %d windows", kind, ix.Len())
		}
	}
}

func TestBuildRejectsBadOptions(t *testing.T) {
	img := makeNoiseCanvas(32, 32, 1)
	opts := testOptions(Average)
	opts.Step = 0
	if _, err := Build(img, opts); err == nil {
		t.Error("expected error for zero step")
	}
	opts = testOptions(Average)
	opts.Settings.EachListToNodeThreshold = 0
	if _, err := Build(img, opts); !errors.Is(err, recttree.ErrInvalidSettings) {
		t.Errorf("got %v, want ErrInvalidSettings", err)
	}
	if _, err := Build(makeNoiseCanvas(1, 32, 1), testOptions(Average)); !errors.Is(err, recttree.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestOverlapping(t *testing.T) {
	ix, err := Build(makeNoiseCanvas(64, 64, 2), testOptions(Average))
	if err != nil {
		t.Fatal(err)
	}
	q := recttree.NewRect(20, 20, 1, 1)
	got, err := ix.Overlapping(q)
	if err != nil {
		t.Fatal(err)
	}
	var want int
	for _, w := range ix.Windows() {
		if w.Rect.Intersects(q) {
			want++
		}
	}
	if len(got) != want || want == 0 {
		t.Fatalf("got %d windows, want %d", len(got), want)
	}
	for _, w := range got {
		if !w.Rect.Intersects(q) {
			t.Errorf("%v does not intersect %v", w.Rect, q)
		}
	}
	if _, err := ix.Overlapping(recttree.NewRect(0, 0, 0, 0)); !errors.Is(err, recttree.ErrInvalidArgument) {
		t.Errorf("got %v", err)
	}
}

func TestWithHash(t *testing.T) {
	ix, err := Build(makeNoiseCanvas(64, 64, 3), testOptions(Difference))
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range ix.Windows() {
		found := ix.WithHash(w.Hash.GetHash())
		var self bool
		for _, f := range found {
			if f.Hash.GetHash() != w.Hash.GetHash() {
				t.Fatalf("WithHash returned hash %x for %x", f.Hash.GetHash(), w.Hash.GetHash())
			}
			if f.Rect == w.Rect {
				self = true
			}
		}
		if !self {
			t.Errorf("window %v not found by its own hash", w.Rect)
		}
	}
}

func TestMatchFindsScrollOffset(t *testing.T) {
	for _, kind := range []HashKind{Average, Difference} {
		t.Run(kind.String(), func(t *testing.T) {
			before, after := scrolledFrames(96, 96, 24)
			a, err := Build(before, testOptions(kind))
			if err != nil {
				t.Fatal(err)
			}
			b, err := Build(after, testOptions(kind))
			if err != nil {
				t.Fatal(err)
			}
			matches, err := a.Match(b, 4)
			if err != nil {
				t.Fatal(err)
			}
			votes := VoteOffsets(matches)
			if len(votes) == 0 {
				t.Fatal("no matches")
			}
			// Content moved up by 24 pixels.
			if want := (recttree.Point{X: 0, Y: -24}); votes[0].Offset != want {
				t.Errorf("top offset = %v (%d votes), want %v", votes[0].Offset, votes[0].Votes, want)
			}
		})
	}
}

func TestMatchKindMismatch(t *testing.T) {
	img := makeNoiseCanvas(32, 32, 4)
	a, err := Build(img, testOptions(Average))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(img, testOptions(Perception))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Match(b, 0); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("got %v, want ErrKindMismatch", err)
	}
}

func TestVoteOffsetsOrdering(t *testing.T) {
	win := func(x, y int) Window { return Window{Rect: recttree.NewRect(x, y, 8, 8)} }
	matches := []Match{
		{From: win(0, 10), To: win(0, 0)},
		{From: win(8, 10), To: win(8, 0)},
		{From: win(0, 0), To: win(5, 0)},
		{From: win(0, 0), To: win(0, 3)},
	}
	votes := VoteOffsets(matches)
	want := []OffsetVote{
		{Offset: recttree.Point{X: 0, Y: -10}, Votes: 2},
		{Offset: recttree.Point{X: 5, Y: 0}, Votes: 1},
		{Offset: recttree.Point{X: 0, Y: 3}, Votes: 1},
	}
	if len(votes) != len(want) {
		t.Fatalf("got %v", votes)
	}
	for i := range want {
		if votes[i] != want[i] {
			t.Errorf("votes[%d] = %v, want %v", i, votes[i], want[i])
		}
	}
}

func TestParseHashKind(t *testing.T) {
	for _, kind := range []HashKind{Average, Difference, Perception} {
		got, err := ParseHashKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParseHashKind(%q) = %v, %v", kind.String(), got, err)
		}
	}
	if got, err := ParseHashKind("PHASH"); err != nil || got != Perception {
		t.Errorf("ParseHashKind(PHASH) = %v, %v", got, err)
	}
	if _, err := ParseHashKind("sha1"); err == nil {
		t.Error("expected error")
	}
}
