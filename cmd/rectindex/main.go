// rectindex builds a hashed feature-window index of a screenshot, reports
// which windows overlap a query rectangle, and optionally estimates how far
// the content scrolled in a second screenshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kinchungwong/recttree"
	"github.com/kinchungwong/recttree/featurewin"
	"github.com/kinchungwong/recttree/internal/config"
)

const (
	topVotes  = 5
	maxRepeat = 4
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("rectindex failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rectindex", flag.ContinueOnError)
	imagePath := fs.String("image", "", "screenshot to index (PNG or JPEG)")
	comparePath := fs.String("compare", "", "later screenshot to match against -image")
	query := fs.String("query", "", "report windows intersecting x,y,w,h")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" {
		return errors.New("-image is required")
	}

	cfg := config.Load()
	setupLogging(cfg)

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	kind, err := featurewin.ParseHashKind(cfg.HashKind)
	if err != nil {
		return err
	}
	opts := featurewin.Options{
		Size:     cfg.WindowSize,
		Step:     cfg.WindowStep,
		Kind:     kind,
		Settings: settings,
		Logger:   slog.Default(),
	}

	ix, err := buildIndex(*imagePath, opts)
	if err != nil {
		return err
	}
	stats := ix.Tree().Stats()
	slog.Info("indexed screenshot", "path", *imagePath, "windows", ix.Len(),
		"nodes", stats.Nodes, "depth", stats.Depth, "straddling", stats.Straddling)

	if *query != "" {
		r, err := parseRect(*query)
		if err != nil {
			return err
		}
		windows, err := ix.Overlapping(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d windows intersect %v\n", len(windows), r)
		for _, w := range windows {
			fmt.Fprintf(out, "  %v %016x\n", w.Rect, w.Hash.GetHash())
		}
	}

	if *comparePath != "" {
		other, err := buildIndex(*comparePath, opts)
		if err != nil {
			return err
		}
		matches, err := ix.Match(other, maxRepeat)
		if err != nil {
			return err
		}
		votes := featurewin.VoteOffsets(matches)
		slog.Info("matched screenshots", "matches", len(matches), "offsets", len(votes))
		for i, v := range votes {
			if i == topVotes {
				break
			}
			fmt.Fprintf(out, "offset dx=%d dy=%d votes=%d\n", v.Offset.X, v.Offset.Y, v.Votes)
		}
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, hopts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, hopts)
	}
	slog.SetDefault(slog.New(handler))
}

func buildIndex(path string, opts featurewin.Options) (*featurewin.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	slog.Debug("decoded screenshot", "path", path, "format", format, "bounds", img.Bounds())
	return featurewin.Build(img, opts)
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (recttree.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return recttree.Rect{}, fmt.Errorf("rect %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return recttree.Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = n
	}
	r := recttree.NewRect(v[0], v[1], v[2], v[3])
	if !r.Positive() {
		return recttree.Rect{}, fmt.Errorf("rect %q: %w", s, recttree.ErrInvalidArgument)
	}
	return r, nil
}
