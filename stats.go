package growcut

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one completed run: how the relaxation terminated and how
// the final strength field is distributed. Pure reporting; computing it never
// changes the matte.
type Summary struct {
	Sweeps    int
	Converged bool

	Foreground int // cells with strength > 0
	Background int // cells with strength < 0
	Unlabeled  int // cells no seed ever reached

	ForegroundFrac float64

	// Moments of |strength| over all cells.
	MeanStrength   float64
	StdDevStrength float64
	MaxStrength    float64
}

// Summarize reports on the most recent Run. Calling it before Run yields a
// zero Summary.
func (s *Segmenter) Summarize() Summary {
	sum := Summary{
		Sweeps:    s.Sweeps,
		Converged: s.Converged,
	}
	if len(s.Strength) == 0 {
		return sum
	}

	magnitudes := make([]float64, len(s.Strength))
	for i, v := range s.Strength {
		switch {
		case v > 0:
			sum.Foreground++
		case v < 0:
			sum.Background++
		default:
			sum.Unlabeled++
		}
		magnitudes[i] = float64(abs32(v))
	}
	sum.ForegroundFrac = float64(sum.Foreground) / float64(len(s.Strength))
	sum.MeanStrength = stat.Mean(magnitudes, nil)
	sum.StdDevStrength = stat.StdDev(magnitudes, nil)
	sum.MaxStrength = floats.Max(magnitudes)
	return sum
}
