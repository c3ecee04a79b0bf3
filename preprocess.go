package growcut

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// 8-connected neighborhood in fixed compass order. Relaxation evaluates
// neighbors in exactly this order so runs are reproducible.
var (
	nx8 = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	ny8 = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// Maximum neighbor distance per color space, used to map distance onto a
// [0,1] barrier weight. √3 is the diagonal of the unit RGB cube; for the
// colorful Lab embedding (L in [0,1], a and b in roughly [-1,1]) the box
// diagonal is 3.
const (
	maxDistRGB = 1.7320508075688772
	maxDistLab = 3.0
)

type colorField struct {
	W, H int
	Pix  []float32 // interleaved 3-float triples, len = W*H*3
}

type weightField struct {
	W, H int
	G    []float32 // 8 weights per pixel, one per neighbor direction, len = W*H*8
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 3
}

func cellOffset(w, x, y int) int {
	return y*w + x
}

// makeColorField normalizes the source grid into [0,1] float triples,
// optionally remapped into CIE-Lab.
func (s *Segmenter) makeColorField(space ColorSpace) {
	w, h := s.Image.W, s.Image.H
	s.Colors = colorField{
		W:   w,
		H:   h,
		Pix: make([]float32, w*h*3),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := (y*w + x) * 4
			r := float64(s.Image.Pix[src]) / 255.0
			g := float64(s.Image.Pix[src+1]) / 255.0
			b := float64(s.Image.Pix[src+2]) / 255.0
			if space == ColorSpaceLab {
				r, g, b = colorful.Color{R: r, G: g, B: b}.Lab()
			}
			off := pixOffset(w, x, y)
			s.Colors.Pix[off] = float32(r)
			s.Colors.Pix[off+1] = float32(g)
			s.Colors.Pix[off+2] = float32(b)
		}
	}
}

// smoothColorField runs one unweighted 3×3 mean pass over the color field,
// dividing by the count of in-bounds samples so edges and corners average
// over what actually exists instead of zero padding. This damps pixel noise
// ahead of the edge-weight computation; output colors are never touched.
func (s *Segmenter) smoothColorField() {
	nx9 := [9]int{0, -1, 0, 1, -1, 1, -1, 0, 1}
	ny9 := [9]int{0, -1, -1, -1, 0, 0, 1, 1, 1}
	w, h := s.Colors.W, s.Colors.H
	smoothed := make([]float32, len(s.Colors.Pix))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := pixOffset(w, x, y)
			var sr, sg, sb float32
			n := 0
			for i := range nx9 {
				nx := x + nx9[i]
				ny := y + ny9[i]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				noff := pixOffset(w, nx, ny)
				sr += s.Colors.Pix[noff]
				sg += s.Colors.Pix[noff+1]
				sb += s.Colors.Pix[noff+2]
				n++
			}
			smoothed[off] = sr / float32(n)
			smoothed[off+1] = sg / float32(n)
			smoothed[off+2] = sb / float32(n)
		}
	}
	s.Colors.Pix = smoothed
}

// computeWeights derives the per-direction edge weights from the smoothed
// color field: 1 at identical neighbor color, 0 at maximal distance.
// Directions leaving the grid keep their zero value and are never read.
func (s *Segmenter) computeWeights(space ColorSpace) {
	maxDist := maxDistRGB
	if space == ColorSpaceLab {
		maxDist = maxDistLab
	}
	w, h := s.Colors.W, s.Colors.H
	s.Weights = weightField{
		W: w,
		H: h,
		G: make([]float32, w*h*8),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := pixOffset(w, x, y)
			cell := cellOffset(w, x, y)
			for i := range nx8 {
				nx := x + nx8[i]
				ny := y + ny8[i]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				noff := pixOffset(w, nx, ny)
				dr := float64(s.Colors.Pix[off] - s.Colors.Pix[noff])
				dg := float64(s.Colors.Pix[off+1] - s.Colors.Pix[noff+1])
				db := float64(s.Colors.Pix[off+2] - s.Colors.Pix[noff+2])
				dist := math.Sqrt(dr*dr + dg*dg + db*db)
				weight := 1.0 - dist/maxDist
				if weight < 0 {
					weight = 0
				}
				s.Weights.G[cell*8+i] = float32(weight)
			}
		}
	}
}
