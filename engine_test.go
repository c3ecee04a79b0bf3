package growcut

import "testing"

// noiseGrid builds a deterministic pseudo-random opaque image so parallel
// runs can be compared bit-for-bit.
func noiseGrid(w, h int, seed uint32) *Grid {
	g := NewGrid(w, h)
	state := seed
	next := func() uint8 {
		state = state*1664525 + 1013904223
		return uint8(state >> 24)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, Pixel{R: next(), G: next(), B: next(), A: 255})
		}
	}
	return g
}

func seedOverlay(w, h int, fg, bg []struct{ x, y int }) *Grid {
	o := NewGrid(w, h)
	for _, p := range fg {
		o.Set(p.x, p.y, Pixel{R: 0, G: 255, B: 0, A: 255})
	}
	for _, p := range bg {
		o.Set(p.x, p.y, Pixel{R: 255, G: 0, B: 0, A: 255})
	}
	return o
}

func TestNoSeedsConvergesImmediately(t *testing.T) {
	s := New(noiseGrid(8, 8, 1), NewGrid(8, 8))
	if err := s.Run(Options{Workers: 2, MaxSweeps: 10}); err != nil {
		t.Fatal(err)
	}
	if s.Sweeps != 1 || !s.Converged {
		t.Errorf("sweeps=%d converged=%v, want 1 sweep and converged", s.Sweeps, s.Converged)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a := s.Image.Get(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want fully transparent", x, y, a)
			}
		}
	}
}

func TestUniformColorFlood(t *testing.T) {
	// Identical colors everywhere mean weight-1 edges, so a single foreground
	// seed floods the whole grid without loss.
	img := uniformGrid(16, 16, Pixel{R: 100, G: 150, B: 200, A: 255})
	overlay := seedOverlay(16, 16, []struct{ x, y int }{{8, 8}}, nil)

	s := New(img, overlay)
	if err := s.Run(DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if !s.Converged {
		t.Fatalf("did not converge after %d sweeps", s.Sweeps)
	}
	for i, v := range s.Strength {
		if v <= 0 {
			t.Fatalf("cell %d strength = %v, want > 0", i, v)
		}
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a := s.Image.Get(x, y).A; a != 0xff {
				t.Fatalf("pixel (%d,%d) alpha = %d, want fully opaque", x, y, a)
			}
		}
	}
}

func TestBackgroundSeedMakesTransparent(t *testing.T) {
	img := uniformGrid(8, 8, Pixel{R: 100, G: 100, B: 100, A: 255})
	overlay := seedOverlay(8, 8, nil, []struct{ x, y int }{{4, 4}})

	s := New(img, overlay)
	if err := s.Run(DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a := s.Image.Get(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want transparent", x, y, a)
			}
		}
	}
}

func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	fg := []struct{ x, y int }{{3, 3}, {4, 3}}
	bg := []struct{ x, y int }{{20, 16}, {19, 16}}

	run := func(workers int) *Segmenter {
		s := New(noiseGrid(24, 20, 42), seedOverlay(24, 20, fg, bg))
		if err := s.Run(Options{Workers: workers, MaxSweeps: 300}); err != nil {
			t.Fatal(err)
		}
		return s
	}
	one := run(1)
	four := run(4)

	if one.Sweeps != four.Sweeps || one.Converged != four.Converged {
		t.Errorf("termination differs: N=1 (%d,%v) vs N=4 (%d,%v)",
			one.Sweeps, one.Converged, four.Sweeps, four.Converged)
	}
	for i := range one.Strength {
		if one.Strength[i] != four.Strength[i] {
			t.Fatalf("strength differs at cell %d: %v vs %v", i, one.Strength[i], four.Strength[i])
		}
	}
	for i := range one.Image.Pix {
		if one.Image.Pix[i] != four.Image.Pix[i] {
			t.Fatalf("output pixels differ at byte %d", i)
		}
	}
}

func TestConvergedStateIsFixedPoint(t *testing.T) {
	s := New(uniformGrid(8, 8, Pixel{R: 10, G: 200, B: 10, A: 255}),
		seedOverlay(8, 8, []struct{ x, y int }{{1, 1}}, nil))
	if err := s.Run(DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if !s.Converged {
		t.Fatalf("did not converge after %d sweeps", s.Sweeps)
	}

	// Re-running a sweep on the converged field must change nothing and
	// still report convergence.
	out := make([]float32, len(s.Strength))
	if !s.sweep(s.Strength, out, 2) {
		t.Error("sweep on a converged field reported non-convergence")
	}
	for i := range out {
		if out[i] != s.Strength[i] {
			t.Fatalf("fixed point violated at cell %d: %v -> %v", i, s.Strength[i], out[i])
		}
	}
}

func TestSweepCapTerminatesRun(t *testing.T) {
	// A lossless flood from one corner needs ~31 sweeps to cross a 32x32
	// grid; a cap of 2 must stop it there, unconverged.
	img := uniformGrid(32, 32, Pixel{R: 50, G: 50, B: 50, A: 255})
	overlay := seedOverlay(32, 32, []struct{ x, y int }{{0, 0}}, nil)

	s := New(img, overlay)
	if err := s.Run(Options{Workers: 4, MaxSweeps: 2}); err != nil {
		t.Fatal(err)
	}
	if s.Sweeps != 2 {
		t.Errorf("sweeps = %d, want exactly the cap of 2", s.Sweeps)
	}
	if s.Converged {
		t.Error("run reported convergence at the cap")
	}
}

func TestLabColorSpaceRun(t *testing.T) {
	img := uniformGrid(8, 8, Pixel{R: 180, G: 90, B: 40, A: 255})
	overlay := seedOverlay(8, 8, []struct{ x, y int }{{4, 4}}, nil)

	opt := DefaultOptions()
	opt.ColorSpace = ColorSpaceLab
	s := New(img, overlay)
	if err := s.Run(opt); err != nil {
		t.Fatal(err)
	}
	if !s.Converged {
		t.Fatalf("did not converge after %d sweeps", s.Sweeps)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a := s.Image.Get(x, y).A; a != 0xff {
				t.Fatalf("pixel (%d,%d) alpha = %d, want opaque", x, y, a)
			}
		}
	}
}

func TestMaskLeavesRGBUntouched(t *testing.T) {
	img := noiseGrid(10, 10, 7)
	want := make([]uint8, len(img.Pix))
	copy(want, img.Pix)

	s := New(img, seedOverlay(10, 10, []struct{ x, y int }{{5, 5}}, nil))
	if err := s.Run(DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(want); i += 4 {
		if img.Pix[i] != want[i] || img.Pix[i+1] != want[i+1] || img.Pix[i+2] != want[i+2] {
			t.Fatalf("RGB changed at byte %d", i)
		}
	}
}

func TestTinyGrids(t *testing.T) {
	// Degenerate sizes have no interior; the border worker must cover
	// everything without double-processing.
	for _, dims := range []struct{ w, h int }{{1, 1}, {1, 5}, {5, 1}, {2, 2}} {
		img := uniformGrid(dims.w, dims.h, Pixel{R: 77, G: 77, B: 77, A: 255})
		overlay := seedOverlay(dims.w, dims.h, []struct{ x, y int }{{0, 0}}, nil)
		s := New(img, overlay)
		if err := s.Run(Options{Workers: 4, MaxSweeps: 50}); err != nil {
			t.Fatalf("%dx%d: %v", dims.w, dims.h, err)
		}
		if !s.Converged {
			t.Errorf("%dx%d did not converge", dims.w, dims.h)
		}
		for i, v := range s.Strength {
			if v <= 0 {
				t.Errorf("%dx%d cell %d strength = %v, want > 0", dims.w, dims.h, i, v)
			}
		}
	}
}
