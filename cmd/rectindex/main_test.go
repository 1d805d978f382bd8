package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kinchungwong/recttree"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect("1, 2,30,40")
	if err != nil {
		t.Fatal(err)
	}
	if r != recttree.NewRect(1, 2, 30, 40) {
		t.Errorf("got %v", r)
	}
	for _, s := range []string{"1,2,3", "a,b,c,d", "0,0,0,5"} {
		if _, err := parseRect(s); err == nil {
			t.Errorf("parseRect(%q): expected error", s)
		}
	}
	if _, err := parseRect("0,0,-1,5"); !errors.Is(err, recttree.ErrInvalidArgument) {
		t.Errorf("got %v", err)
	}
}

// writeNoisePNG writes a 64x64 image of 4x4 blocks with random levels.
func writeNoisePNG(t *testing.T, dir string) string {
	t.Helper()
	rnd := rand.New(rand.NewSource(9))
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for by := 0; by < 64; by += 4 {
		for bx := 0; bx < 64; bx += 4 {
			c := color.Gray{Y: uint8(rnd.Intn(256))}
			for y := by; y < by+4; y++ {
				for x := bx; x < bx+4; x++ {
					img.SetGray(x, y, c)
				}
			}
		}
	}
	path := filepath.Join(dir, "shot.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	t.Setenv("FEATURE_WINDOW_SIZE", "16")
	t.Setenv("FEATURE_WINDOW_STEP", "4")
	path := writeNoisePNG(t, t.TempDir())

	var out bytes.Buffer
	if err := run([]string{"-image", path, "-compare", path, "-query", "0,0,4,4"}, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "windows intersect Rect(0,0,4,4)") {
		t.Errorf("missing query report in %q", got)
	}
	if !strings.Contains(got, "offset dx=0 dy=0") {
		t.Errorf("missing zero offset in %q", got)
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}); err == nil {
		t.Error("expected error without -image")
	}
	if err := run([]string{"-image", filepath.Join(t.TempDir(), "missing.png")}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}
