package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPlotChannels(t *testing.T) {
	ki := newLandingInterpolator(t)

	img, err := PlotChannels(ki, 320, 200)
	if err != nil {
		t.Fatalf("PlotChannels failed: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	// The opacity curve ends at its minimum in the bottom-right corner of the plot area
	x := plotMargin + (320 - 2*plotMargin) - 1
	y := plotMargin + (200 - 2*plotMargin) - 1
	if got := img.RGBAAt(x, y); got != channelColours[ChannelOpacity] {
		t.Errorf("expected opacity colour at (%d, %d), got %v", x, y, got)
	}

	path := filepath.Join(t.TempDir(), "curves.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a PNG: %v", err)
	}
}

func TestPlotChannelsTooSmall(t *testing.T) {
	ki := newLandingInterpolator(t)
	if _, err := PlotChannels(ki, 40, 40); err == nil {
		t.Error("expected error for a plot smaller than its margins")
	}
}
