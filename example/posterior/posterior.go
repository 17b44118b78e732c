/*
Example code showing how to build the appearance model of an object and
compute its per pixel foreground and background posterior.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack"
	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
	"github.com/swdee/go-regiontrack/posterior"
	"github.com/swdee/go-regiontrack/preprocess"
	"github.com/swdee/go-regiontrack/render"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "../data/frame.png", "Image file of the current frame")
	maskFile := flag.String("m", "", "Optional silhouette image, object pixels brighter than the threshold")
	box := flag.String("b", "", "Object bounding box x,y,width,height used when no mask is given")
	threshold := flag.Float64("t", 127, "Silhouette threshold")
	outPrefix := flag.String("o", "../data/frame-out", "Output file prefix for the rendered results")
	bins := flag.Int("n", 16, "Histogram bins per color channel")
	workers := flag.Int("w", 0, "Posterior worker goroutines, 0 uses all CPUs")
	show := flag.Bool("s", false, "Show the posterior planes in GUI windows")
	delay := flag.Int("d", 1, "Milliseconds to wait for a key press after showing the windows, 0 waits for a key")
	verbose := flag.Bool("v", false, "Log appearance models and posterior fields")

	flag.Parse()

	logger := zap.NewNop()

	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()

		if err != nil {
			log.Fatal("Error creating logger: ", err)
		}

		defer logger.Sync()
	}

	cfg := regiontrack.DefaultConfig()
	cfg.Appearance.BinCount = *bins
	cfg.Posterior.Workers = *workers

	var observers []posterior.Observer

	if *show {
		windows := render.NewWindows(gocv.ColormapJet, *delay)
		defer windows.Close()

		observers = append(observers, windows)
	}

	pipeline, err := regiontrack.NewPipeline(cfg, logger.Sugar(), observers...)

	if err != nil {
		log.Fatal("Error creating pipeline: ", err)
	}

	// load image
	img := gocv.IMRead(*imgFile, gocv.IMReadColor)

	if img.Empty() {
		log.Fatal("Error reading image from: ", *imgFile)
	}

	defer img.Close()

	seed, mask, err := loadSeed(*maskFile, *box, float32(*threshold))

	if err != nil {
		log.Fatal("Error reading object seed: ", err)
	}

	start := time.Now()

	res, err := pipeline.UpdateMat(img, seed)

	if err != nil {
		log.Fatal("Error updating pipeline: ", err)
	}

	end := time.Now()

	log.Printf("Model region %+v, posterior time=%s\n", res.Model.Region, end.Sub(start).String())

	// save each posterior plane
	for _, plane := range []struct {
		name string
		data *frame.Plane
	}{
		{"pf", res.Field.Foreground},
		{"pb", res.Field.Background},
	} {
		view := gocv.NewMat()

		err = render.PlaneView(plane.data, &view, gocv.ColormapJet)

		if err != nil {
			log.Fatal("Error rendering plane: ", err)
		}

		saveFile := fmt.Sprintf("%s-%s.png", *outPrefix, plane.name)

		if ok := gocv.IMWrite(saveFile, view); !ok {
			log.Fatal("Failed to save the image")
		}

		view.Close()

		log.Printf("Saved %s plane to %s\n", plane.name, saveFile)
	}

	// draw the object footprint of the mask and sampled region over the frame
	overlay := img.Clone()
	defer overlay.Close()

	if mask != nil {
		err = render.OverlayObject(&overlay, mask, render.Pink)

		if err != nil {
			log.Fatal("Error rendering mask overlay: ", err)
		}
	}

	render.RegionBoxes(&overlay, []geometry.Region{res.Model.Region},
		[]string{"region"}, render.DefaultFont(), 1)

	saveFile := *outPrefix + "-region.png"

	if ok := gocv.IMWrite(saveFile, overlay); !ok {
		log.Fatal("Failed to save the image")
	}

	log.Printf("Saved region overlay to %s\n", saveFile)

	res.Release()

	// optional code.  run benchmark to get average time
	if benchmarkEnabled(*show, *delay) {
		runBenchmark(pipeline, img, seed)
	} else {
		log.Println("Skipping benchmark as windows wait for a key press on every update")
	}

	log.Println("done")
}

// loadSeed returns a mask seed when a silhouette file is given, otherwise a
// rectangle seed parsed from the box flag
func loadSeed(maskFile, box string, threshold float32) (appearance.RegionSeed, *frame.Mask, error) {

	if maskFile != "" {
		sil := gocv.IMRead(maskFile, gocv.IMReadGrayScale)

		if sil.Empty() {
			return nil, nil, fmt.Errorf("error reading silhouette from: %s", maskFile)
		}

		defer sil.Close()

		mask, err := preprocess.SilhouetteMask(sil, threshold)

		if err != nil {
			return nil, nil, err
		}

		return appearance.MaskSeed{Mask: mask}, mask, nil
	}

	var x, y, w, h int

	_, err := fmt.Sscanf(strings.ReplaceAll(box, " ", ""), "%d,%d,%d,%d", &x, &y, &w, &h)

	if err != nil {
		return nil, nil, fmt.Errorf("invalid bounding box %q: %w", box, err)
	}

	return appearance.RectSeed{Region: geometry.NewRegion(x, y, w, h)}, nil, nil
}

// benchmarkEnabled reports whether the benchmark can run unattended, which is
// not the case when every update blocks on a key press in the windows
func benchmarkEnabled(show bool, delay int) bool {
	return !show || delay > 0
}

func runBenchmark(pipeline *regiontrack.Pipeline, img gocv.Mat, seed appearance.RegionSeed) {

	count := 100
	start := time.Now()

	for i := 0; i < count; i++ {
		res, err := pipeline.UpdateMat(img, seed)

		if err != nil {
			log.Fatal("Error updating pipeline: ", err)
		}

		res.Release()
	}

	end := time.Now()
	total := end.Sub(start)
	avg := total / time.Duration(count)

	log.Printf("Benchmark time=%s, count=%d, average total time=%s\n",
		total.String(), count, avg.String(),
	)
}
