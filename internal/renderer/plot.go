package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var channelColours = [channelCount]color.RGBA{
	ChannelRotation:               {R: 0xe6, G: 0x55, B: 0x2e, A: 0xff},
	ChannelZoom:                   {R: 0x2e, G: 0x86, B: 0xde, A: 0xff},
	ChannelCameraVerticalOffset:   {R: 0x3c, G: 0xb3, B: 0x71, A: 0xff},
	ChannelCameraHorizontalOffset: {R: 0xb0, G: 0x5c, B: 0xd6, A: 0xff},
	ChannelOpacity:                {R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff},
}

const plotMargin = 24

// PlotChannels draws every channel over progress 0..1, each scaled to its own
// min/max so curves with different units share one chart.
func PlotChannels(ki *KeyframeInterpolator, width, height int) (*image.RGBA, error) {
	if width <= 2*plotMargin || height <= 2*plotMargin {
		return nil, errors.Errorf("plot size %dx%d is too small", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0x14, G: 0x14, B: 0x18, A: 0xff}}, image.Point{}, draw.Src)

	plotW := width - 2*plotMargin
	plotH := height - 2*plotMargin
	grid := color.RGBA{R: 0x3a, G: 0x3a, B: 0x44, A: 0xff}

	// Section boundaries taken from the rotation curve, all channels share them
	for _, bp := range ki.Table().Breakpoints(ChannelRotation) {
		x := plotMargin + int(bp.Progress*float32(plotW))
		for y := plotMargin; y < plotMargin+plotH; y++ {
			img.SetRGBA(x, y, grid)
		}
	}

	for _, c := range Channels {
		lo, hi := channelRange(ki.Table().Breakpoints(c))
		prevY := -1
		for px := 0; px < plotW; px++ {
			p := float32(px) / float32(plotW-1)
			v := ki.InterpolateChannel(c, p)

			norm := float32(0.5)
			if hi > lo {
				norm = (v - lo) / (hi - lo)
			}
			y := plotMargin + plotH - 1 - int(norm*float32(plotH-1))

			// Join vertical jumps so steep segments stay visible
			from, to := y, y
			if prevY >= 0 {
				from, to = min(prevY, y), max(prevY, y)
			}
			for yy := from; yy <= to; yy++ {
				img.SetRGBA(plotMargin+px, yy, channelColours[c])
			}
			prevY = y
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Face: basicfont.Face7x13,
	}
	for i, c := range Channels {
		lo, hi := channelRange(ki.Table().Breakpoints(c))
		d.Src = image.NewUniform(channelColours[c])
		d.Dot = fixed.P(plotMargin+4, plotMargin+14+i*14)
		d.DrawString(fmt.Sprintf("%s [%.2f, %.2f]", c, lo, hi))
	}

	return img, nil
}

func channelRange(bps []Breakpoint) (lo, hi float32) {
	lo, hi = bps[0].Value, bps[0].Value
	for _, bp := range bps[1:] {
		lo = min(lo, bp.Value)
		hi = max(hi, bp.Value)
	}
	return lo, hi
}

// SavePNG writes img to path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}
