package growcut

// Overlay thresholds. A stroke counts as a seed once it is reasonably opaque;
// its label comes from red-vs-green channel dominance, so strokes do not have
// to be pure red or pure green.
const (
	seedAlphaMin = 0x80 // strictly above this alpha activates a seed
	redDominance = 128  // red must exceed green by more than this for background
)

// initSeeds writes the initial signed strength field into dst from the
// overlay: +1 foreground, -1 background, 0 unlabeled. Seeds are not pinned;
// relaxation may later overwrite them like any other cell.
func (s *Segmenter) initSeeds(dst []float32) {
	w, h := s.Overlay.W, s.Overlay.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			if s.Overlay.Pix[off+3] <= seedAlphaMin {
				continue
			}
			if int(s.Overlay.Pix[off]) > int(s.Overlay.Pix[off+1])+redDominance {
				dst[cellOffset(w, x, y)] = -1.0
			} else {
				dst[cellOffset(w, x, y)] = 1.0
			}
		}
	}
}
