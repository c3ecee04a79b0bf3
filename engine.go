package growcut

import "fmt"

// Segmenter computes a binary foreground/background matte for an image from a
// sparse seed overlay using GrowCut cellular-automaton relaxation: green
// strokes mark foreground, red strokes mark background, and each sweep lets
// every cell's neighbors invade it with a color-affinity-attenuated copy of
// their own label until no cell changes.
//
// Intermediate fields are exposed for inspection after Run; all of them are
// allocated per run and none persist beyond the Segmenter.
type Segmenter struct {
	Image   *Grid
	Overlay *Grid
	Colors  colorField
	Weights weightField
	// Strength holds the final signed confidence per cell: sign is the label
	// (positive foreground, negative background, zero unlabeled), magnitude
	// the confidence.
	Strength []float32
	// Sweeps is the number of relaxation passes Run executed.
	Sweeps int
	// Converged reports whether relaxation reached a fixed point before the
	// sweep cap.
	Converged bool
}

func New(img, overlay *Grid) *Segmenter {
	return &Segmenter{
		Image:   img,
		Overlay: overlay,
	}
}

// Run executes the full pipeline: preprocess, seed, relax until convergence
// or the sweep cap, then write the matte into the image's alpha channel.
// The image's RGB channels are left untouched unless opt.ShowEffects is set.
func (s *Segmenter) Run(opt Options) error {
	if s.Image.W != s.Overlay.W || s.Image.H != s.Overlay.H {
		return fmt.Errorf("growcut: image is %dx%d but overlay is %dx%d; seed strokes cannot be aligned",
			s.Image.W, s.Image.H, s.Overlay.W, s.Overlay.H)
	}
	if opt.Workers < 1 {
		opt.Workers = 1
	}
	if opt.MaxSweeps < 1 {
		opt.MaxSweeps = 1
	}

	s.makeColorField(opt.ColorSpace)
	s.smoothColorField()
	s.computeWeights(opt.ColorSpace)

	cells := s.Image.W * s.Image.H
	in := make([]float32, cells)
	out := make([]float32, cells)
	s.initSeeds(in)

	// Double-buffered relaxation: each sweep reads in and writes out, then
	// the buffers swap. The outer loop is strictly sequential; a sweep never
	// starts before the previous one's join completes.
	s.Sweeps = 0
	s.Converged = false
	for s.Sweeps < opt.MaxSweeps {
		s.Converged = s.sweep(in, out, opt.Workers)
		s.Sweeps++
		in, out = out, in
		if opt.Verbose && (s.Converged || s.Sweeps == opt.MaxSweeps || s.Sweeps%100 == 0) {
			fmt.Printf("   sweep %d/%d converged=%v\n", s.Sweeps, opt.MaxSweeps, s.Converged)
		}
		if s.Converged {
			break
		}
	}
	s.Strength = in

	s.extractMask(opt)
	return nil
}

// extractMask thresholds the sign of the final strength field into a hard
// alpha matte on the original pixels. Exactly-zero cells were never reached
// by any seed and count as background.
func (s *Segmenter) extractMask(opt Options) {
	w, h := s.Image.W, s.Image.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0x00)
			if s.Strength[cellOffset(w, x, y)] > 0.0 {
				a = 0xff
			}
			s.Image.SetAlpha(x, y, a)
			if opt.ShowEffects {
				off := pixOffset(w, x, y)
				s.Image.Set(x, y, Pixel{
					R: clampByte(s.Colors.Pix[off]),
					G: clampByte(s.Colors.Pix[off+1]),
					B: clampByte(s.Colors.Pix[off+2]),
					A: a,
				})
			}
		}
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255.0)
}
