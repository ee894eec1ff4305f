// Command shimmerdemo renders a live-wallpaper animation strip: a
// synthetic or loaded image run through the blur pyramid and composited
// at a range of blur levels, with a touch ripple and optional duotone.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "image/jpeg"
	_ "image/png"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/blur"
	"github.com/abdusco/shimmer-sub001/compositor"
	"github.com/abdusco/shimmer-sub001/touch"
)

func main() {
	var (
		input     = flag.String("input", "", "input image (PNG or JPEG); synthesized if empty")
		outDir    = flag.String("out", "frames", "output directory for frame PNGs")
		width     = flag.Int("width", 512, "synthesized image width")
		height    = flag.Int("height", 512, "synthesized image height")
		frames    = flag.Int("frames", 12, "number of frames in the strip")
		maxRadius = flag.Float64("max-radius", 80, "maximum blur radius in pixels")
		duotone   = flag.Bool("duotone", false, "apply a duotone preset")
		ripple    = flag.Bool("ripple", true, "animate a touch ripple across the strip")
	)
	flag.Parse()

	if *frames < 2 {
		*frames = 2
	}

	src, err := loadOrSynthesize(*input, *width, *height)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}

	gen := blur.NewPyramidGenerator(blur.NewSoftware())
	start := time.Now()
	set, err := gen.GenerateSet(context.Background(), "demo", src, *maxRadius)
	if err != nil {
		if set == nil {
			log.Fatalf("Failed to generate blur pyramid: %v", err)
		}
		log.Printf("Partial blur pyramid (%d levels): %v", len(set.Blurred), err)
	}
	log.Printf("Generated %d blur keyframes in %v", len(set.Blurred), time.Since(start).Round(time.Millisecond))

	ps, err := compositor.NewPictureSet(nil, nil, set, 0)
	if err != nil {
		log.Fatalf("Failed to build picture set: %v", err)
	}
	defer ps.Release()

	comp := compositor.New()
	comp.SetPicture(ps)

	tracker := touch.NewTracker(shimmer.DefaultAberrationSettings())
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	w := src.Width()
	h := src.Height()
	target := shimmer.NewPixmap(w, h)
	for i := range *frames {
		t := float64(i) / float64(*frames-1)

		params := compositor.FrameParams{
			BlurPercent:  t,
			ImageAlpha:   1,
			ScreenWidth:  w,
			ScreenHeight: h,
		}
		if *duotone {
			params.Duotone = shimmer.Duotone{
				Light:   shimmer.RGB(0.95, 0.85, 0.55),
				Dark:    shimmer.RGB(0.15, 0.1, 0.35),
				Opacity: 0.8,
				Mode:    shimmer.BlendSoftLight,
			}
		}
		if *ripple {
			tracker.SetActiveTouches([]touch.Data{{
				ID: 0,
				X:  float64(w) * t,
				Y:  float64(h) / 2,
			}})
			tracker.Tick()
			params.TouchPoints = tracker.Points()
			params.TouchIntensities = tracker.Intensities()
		}

		if err := comp.DrawFrame(target, params); err != nil {
			log.Fatalf("Failed to draw frame %d: %v", i, err)
		}

		path := filepath.Join(*outDir, fmt.Sprintf("frame_%02d.png", i))
		if err := target.SavePNG(path); err != nil {
			log.Fatalf("Failed to save %s: %v", path, err)
		}
	}

	log.Printf("Wrote %d frames to %s", *frames, *outDir)
}

// loadOrSynthesize decodes the input file, or builds a colorful test
// pattern when no input is given.
func loadOrSynthesize(path string, w, h int) (*shimmer.Pixmap, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, err
		}
		return shimmer.FromImage(img), nil
	}

	pm := shimmer.NewPixmap(w, h)
	for y := range h {
		for x := range w {
			fx := float64(x) / float64(w)
			fy := float64(y) / float64(h)
			pm.SetPixel(x, y, shimmer.RGB(
				0.5+0.5*math.Sin(fx*12),
				0.5+0.5*math.Sin(fy*9+2),
				0.5+0.5*math.Sin((fx+fy)*7+4),
			))
		}
	}
	return pm, nil
}
