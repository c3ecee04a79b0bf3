// Command growcut cuts a foreground out of an image using a sparse seed
// overlay: green strokes mark pixels to keep, red strokes mark background.
// The output is the source image with a computed alpha matte.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pixelcut/growcut"
	"github.com/pixelcut/growcut/utils"
)

var (
	flagWorkers = flag.Int("workers", 4, "interior worker goroutines per sweep")
	flagSweeps  = flag.Int("max-sweeps", 2000, "relaxation sweep cap")
	flagLab     = flag.Bool("lab", false, "measure edge weights in CIE-Lab instead of RGB")
	flagResize  = flag.Bool("resize-overlay", false, "resize the overlay to the image size instead of failing on mismatch")
	flagEffects = flag.Bool("show-effects", false, "write the smoothed preprocessed colors into the output RGB")
	flagV       = flag.Bool("v", false, "print sweep progress and a run summary")
)

func main() {
	log.SetFlags(0)
	flag.Parse()
	if flag.NArg() != 3 {
		log.Fatalf("usage: %s [flags] <image.png> <overlay.png> <output.png>", os.Args[0])
	}

	img, err := utils.ReadGrid(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	overlayImg, err := utils.ReadImage(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}
	if *flagResize {
		overlayImg = utils.ResizeToMatch(overlayImg, img.Image().Bounds().Size())
	}

	opt := growcut.DefaultOptions()
	opt.Workers = *flagWorkers
	opt.MaxSweeps = *flagSweeps
	opt.ShowEffects = *flagEffects
	opt.Verbose = *flagV
	if *flagLab {
		opt.ColorSpace = growcut.ColorSpaceLab
	}

	seg := growcut.New(img, growcut.FromImage(overlayImg))
	if err := seg.Run(opt); err != nil {
		log.Fatal(err)
	}
	if *flagV {
		sum := seg.Summarize()
		fmt.Printf("sweeps=%d converged=%v foreground=%.1f%% unlabeled=%d\n",
			sum.Sweeps, sum.Converged, sum.ForegroundFrac*100, sum.Unlabeled)
	}

	if err := utils.SaveImage(seg.Image.Image(), flag.Arg(2)); err != nil {
		log.Fatal(err)
	}
}
