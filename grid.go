package growcut

import (
	"image"
	"image/color"
)

// Pixel is one 4-channel 8-bit sample.
type Pixel struct {
	R, G, B, A uint8
}

// Sentinel returned for out-of-bounds reads: opaque white color channels with
// zero alpha, so border code that reads past the edge sees "no seed, no color
// affinity" rather than failing.
var outsidePixel = Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0x00}

// Grid is a flat, row-major store of 4-channel 8-bit pixel samples.
type Grid struct {
	W, H int
	Pix  []uint8 // interleaved RGBA, len = W*H*4
}

func NewGrid(w, h int) *Grid {
	return &Grid{
		W:   w,
		H:   h,
		Pix: make([]uint8, w*h*4),
	}
}

// FromImage copies img into a new Grid. Colors are taken non-premultiplied so
// that overlay channel thresholds see the authored values, not values scaled
// by a partial alpha.
func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := (y*w + x) * 4
			g.Pix[off] = c.R
			g.Pix[off+1] = c.G
			g.Pix[off+2] = c.B
			g.Pix[off+3] = c.A
		}
	}
	return g
}

// Get returns the sample at (x,y), or the outside sentinel when (x,y) lies
// beyond the grid.
func (g *Grid) Get(x, y int) Pixel {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return outsidePixel
	}
	off := (y*g.W + x) * 4
	return Pixel{
		R: g.Pix[off],
		G: g.Pix[off+1],
		B: g.Pix[off+2],
		A: g.Pix[off+3],
	}
}

// Set writes the sample at (x,y) in place. Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, p Pixel) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	off := (y*g.W + x) * 4
	g.Pix[off] = p.R
	g.Pix[off+1] = p.G
	g.Pix[off+2] = p.B
	g.Pix[off+3] = p.A
}

// SetAlpha replaces only the alpha channel at (x,y); out-of-bounds is a no-op.
func (g *Grid) SetAlpha(x, y int, a uint8) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.Pix[(y*g.W+x)*4+3] = a
}

// Image converts the grid back into a non-premultiplied stdlib image, so
// background colors survive under zero alpha.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return img
}
