package growcut

import "image"

// ColorSpace selects the space edge weights are measured in.
type ColorSpace int

const (
	// ColorSpaceRGB measures neighbor distance in the normalized RGB cube.
	ColorSpaceRGB ColorSpace = iota
	// ColorSpaceLab measures neighbor distance in CIE-Lab, which tracks
	// perceived color difference more closely than raw RGB.
	ColorSpaceLab
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceLab:
		return "lab"
	default:
		return "rgb"
	}
}

type Options struct {
	// Number of interior worker goroutines per sweep. The border always gets
	// one extra dedicated worker. Any value below 1 is treated as 1.
	// Output is bit-identical for every worker count.
	Workers int
	// Maximum number of relaxation sweeps before giving up on convergence.
	// Adversarial seedings can oscillate; the cap bounds total work.
	MaxSweeps int
	// Color space for the edge-weight computation.
	ColorSpace ColorSpace
	// ShowEffects writes the smoothed preprocessed color field back into the
	// RGB channels of the output, for inspecting the preprocessing.
	ShowEffects bool
	// Verbose prints sweep progress while relaxing.
	Verbose bool
}

func DefaultOptions() Options {
	return Options{
		Workers:   4,
		MaxSweeps: 2000,
	}
}

// OptionsFromSize scales the worker count to the image: small images cannot
// feed four workers, very large ones can feed more.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	pixels := size.X * size.Y
	if pixels <= 128*128 {
		opt.Workers = 1
	} else if pixels > 1920*1080 {
		opt.Workers = 8
	}
	// Never stripe more workers than there are interior rows.
	if interior := size.Y - 2; interior >= 1 && opt.Workers > interior {
		opt.Workers = interior
	}
	return opt
}
