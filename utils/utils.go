// Package utils holds the I/O collaborators around the growcut engine: image
// decode/encode, the explicit overlay resize policy, and palette reporting on
// a finished matte for quick visual QA.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	xdraw "golang.org/x/image/draw"

	"github.com/pixelcut/growcut"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ReadImage decodes the image at path. A failed open or decode is returned as
// an error; there is no default-image fallback.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return img, nil
}

// ReadGrid decodes the image at path into the engine's 4-channel 8-bit grid.
func ReadGrid(path string) (*growcut.Grid, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return growcut.FromImage(img), nil
}

// SaveImage writes img to path as PNG.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}

// ResizeToMatch resamples img to size with nearest-neighbor interpolation.
// Nearest keeps seed strokes hard-edged instead of smearing half-transparent
// label colors across the boundary. Images already at size pass through.
func ResizeToMatch(img image.Image, size image.Point) image.Image {
	if img.Bounds().Dx() == size.X && img.Bounds().Dy() == size.Y {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// MattePalette extracts the k most representative colors of the foreground
// surviving in matte (pixels with nonzero alpha). Useful as a one-glance
// sanity check that a cut kept the subject and not the backdrop.
func MattePalette(matte image.Image, k int, method PaletteMethod) []colorful.Color {
	if k <= 0 {
		return nil
	}
	switch method {
	case PaletteMethodKMeans:
		p := kmeansPalette(matte, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans produced no clusters, falling back to dominantcolor")
		return dominantPalette(matte, k)
	default:
		return dominantPalette(matte, k)
	}
}

// dominantPalette runs the dominant-color search over the matted image and
// keeps the k strongest candidates that are not near-duplicates in Lab space.
func dominantPalette(matte image.Image, k int) []colorful.Color {
	candidates := dominantcolor.FindWeight(matte, max(16, k*4))
	out := make([]colorful.Color, 0, k)
	const minLabSeparation = 0.08
	for _, cand := range candidates {
		col, ok := colorful.MakeColor(cand.RGBA)
		if !ok {
			continue
		}
		col = col.Clamped()
		distinct := true
		for _, picked := range out {
			if col.DistanceLab(picked) < minLabSeparation {
				distinct = false
				break
			}
		}
		if distinct {
			out = append(out, col)
			if len(out) == k {
				break
			}
		}
	}
	return out
}

// kmeansPalette clusters only the pixels the matte kept. Transparent pixels
// are background by definition and never enter the sample set.
func kmeansPalette(matte image.Image, k int) []colorful.Color {
	b := matte.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	// Subsample large mattes to keep the clustering tractable.
	const maxSamples = 12000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := matte.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Dominant clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{
			R: c.Center[0],
			G: c.Center[1],
			B: c.Center[2],
		}.Clamped())
	}
	return out
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ra, ga, ba := a.LinearRgb()
		rb, gb, bb := b.LinearRgb()
		ya := 0.2126*ra + 0.7152*ga + 0.0722*ba
		yb := 0.2126*rb + 0.7152*gb + 0.0722*bb
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

// SavePalette renders the palette as a strip of tiles and writes it to path.
func SavePalette(palette []colorful.Color, tileSize int, path string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		tile := color.RGBA{
			R: uint8(max(0, min(255, c.R*255))),
			G: uint8(max(0, min(255, c.G*255))),
			B: uint8(max(0, min(255, c.B*255))),
			A: 255,
		}
		for y := 0; y < tileSize; y++ {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, tile)
			}
		}
	}
	return SaveImage(img, path)
}
