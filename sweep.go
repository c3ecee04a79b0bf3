package growcut

import "sync"

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// sweep computes one full relaxation pass from in into out and reports
// whether the pass converged (no cell was invaded).
//
// The interior band (all 8 neighbors in-bounds) is row-striped across
// `workers` goroutines; one extra goroutine handles every border pixel with
// per-direction bounds checks. Write sets are disjoint by construction —
// striping partitions the interior rows exactly and the border worker owns
// the complement — so the only synchronization is the join before returning.
func (s *Segmenter) sweep(in, out []float32, workers int) bool {
	w := s.Weights.W

	// Flat-index offset of each neighbor direction, valid on interior cells.
	var neighborOfs [8]int
	for i := range nx8 {
		neighborOfs[i] = nx8[i] + ny8[i]*w
	}

	converged := make([]bool, workers+1)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			converged[n] = s.sweepInterior(in, out, neighborOfs, n, workers)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		converged[workers] = s.sweepBorder(in, out)
	}()
	wg.Wait()

	all := true
	for _, c := range converged {
		all = all && c
	}
	return all
}

// sweepInterior relaxes interior rows 1+n, 1+n+workers, … of the band
// [1,h-2]×[1,w-2]. No bounds checks: every neighbor of an interior cell
// exists, and every in-bounds direction has a weight.
func (s *Segmenter) sweepInterior(in, out []float32, neighborOfs [8]int, n, workers int) bool {
	w, h := s.Weights.W, s.Weights.H
	converged := true
	for y := 1 + n; y < h-1; y += workers {
		row := y * w
		for x := 1; x < w-1; x++ {
			cell := row + x
			out[cell] = in[cell]
			for i := range neighborOfs {
				candidate := s.Weights.G[cell*8+i] * in[cell+neighborOfs[i]]
				if abs32(candidate) > abs32(out[cell]) {
					out[cell] = candidate
					converged = false
				}
			}
		}
	}
	return converged
}

// sweepBorder relaxes the top and bottom rows plus the left and right columns,
// checking each neighbor direction against the grid bounds.
func (s *Segmenter) sweepBorder(in, out []float32) bool {
	w, h := s.Weights.W, s.Weights.H
	converged := true
	for x := 0; x < w; x++ {
		converged = s.relaxBorderCell(in, out, x, 0) && converged
	}
	if h > 1 {
		for x := 0; x < w; x++ {
			converged = s.relaxBorderCell(in, out, x, h-1) && converged
		}
	}
	for y := 1; y < h-1; y++ {
		converged = s.relaxBorderCell(in, out, 0, y) && converged
	}
	if w > 1 {
		for y := 1; y < h-1; y++ {
			converged = s.relaxBorderCell(in, out, w-1, y) && converged
		}
	}
	return converged
}

func (s *Segmenter) relaxBorderCell(in, out []float32, x, y int) bool {
	w, h := s.Weights.W, s.Weights.H
	cell := cellOffset(w, x, y)
	out[cell] = in[cell]
	converged := true
	for i := range nx8 {
		nx := x + nx8[i]
		ny := y + ny8[i]
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		candidate := s.Weights.G[cell*8+i] * in[cellOffset(w, nx, ny)]
		if abs32(candidate) > abs32(out[cell]) {
			out[cell] = candidate
			converged = false
		}
	}
	return converged
}
