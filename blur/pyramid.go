package blur

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// Pyramid parameters.
const (
	// MaxKeyframes is the maximum number of blur levels generated for one
	// image.
	MaxKeyframes = 5

	// radiusPerLevel is the blur radius one keyframe is worth: small max
	// radii produce fewer levels, since a barely blurred image needs few
	// intermediate keyframes.
	radiusPerLevel = 20.0

	// downsampleFactor is the scale reduction applied before blurring.
	downsampleFactor = 4

	// finalDownsampleFactor is the gentler reduction for the last, most
	// blurred level, which is the most visible at full blur.
	finalDownsampleFactor = 2
)

// Levels is an ordered sequence of progressively blurred images and their
// effective radii. Radii are strictly increasing.
type Levels struct {
	Images []*shimmer.Pixmap
	Radii  []float64
}

// PyramidGenerator produces blur keyframe sequences through a Backend.
//
// Generation is expensive (hundreds of milliseconds for large images) and
// must run off the render context; the generator is safe to call from a
// background worker.
type PyramidGenerator struct {
	backend Backend

	// downScaler and upScaler perform the pre-blur reduction and the
	// post-blur restoration to full size.
	downScaler draw.Scaler
	upScaler   draw.Scaler
}

// NewPyramidGenerator creates a generator using the given blur backend.
func NewPyramidGenerator(backend Backend) *PyramidGenerator {
	return &PyramidGenerator{
		backend: backend,
		// Bilinear down, Catmull-Rom up: the upsample dominates the
		// perceived quality of the restored keyframe.
		downScaler: draw.ApproxBiLinear,
		upScaler:   draw.CatmullRom,
	}
}

// Generate produces up to MaxKeyframes progressively blurred copies of src
// with their effective radii. maxRadius is in source pixels.
//
// Failures degrade gracefully: a failed level ends generation and whatever
// levels succeeded are returned, with the error describing the first
// failure. maxRadius <= 0 returns empty levels and no error.
func (g *PyramidGenerator) Generate(ctx context.Context, src *shimmer.Pixmap, maxRadius float64) (Levels, error) {
	var out Levels

	if src == nil {
		return out, ErrNilSource
	}
	if src.Width() <= 0 || src.Height() <= 0 {
		return out, ErrEmptySource
	}
	if maxRadius > MaxRadius {
		maxRadius = MaxRadius
	}

	levels := levelCount(maxRadius)
	if levels == 0 {
		return out, nil
	}

	srcImg := src.ToImage()
	log := shimmer.Logger()

	for i := 1; i <= levels; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		// Quadratic radius ramp: perceptual blur difference is most
		// pronounced at low radii, so early keyframes stay close
		// together.
		frac := float64(i) / float64(levels)
		radius := math.Ceil(maxRadius * frac * frac)
		if radius < 1 {
			radius = 1
		}

		factor := downsampleFactor
		if i == levels {
			factor = finalDownsampleFactor
		}

		img, err := g.generateLevel(srcImg, src.Width(), src.Height(), radius, factor)
		if err != nil {
			if i == 1 {
				// Nothing succeeded; the image renders unblurred.
				return Levels{}, fmt.Errorf("blur: level 1 failed: %w", err)
			}
			log.Warn("blur: pyramid truncated",
				"level", i, "of", levels, "error", err)
			return out, fmt.Errorf("blur: level %d failed: %w", i, err)
		}

		out.Images = append(out.Images, img)
		out.Radii = append(out.Radii, radius)
	}

	return out, nil
}

// GenerateSet runs Generate and wraps the result in a validated ImageSet.
func (g *PyramidGenerator) GenerateSet(ctx context.Context, id string, src *shimmer.Pixmap, maxRadius float64) (*shimmer.ImageSet, error) {
	levels, err := g.Generate(ctx, src, maxRadius)
	if err != nil && len(levels.Images) == 0 && ctx.Err() != nil {
		return nil, err
	}

	set := &shimmer.ImageSet{
		Original:  src,
		Blurred:   levels.Images,
		BlurRadii: levels.Radii,
		ID:        id,
		Width:     src.Width(),
		Height:    src.Height(),
	}
	if verr := set.Validate(); verr != nil {
		return nil, verr
	}
	return set, err
}

// generateLevel downsamples the source, blurs it at the scaled radius, and
// upsamples back to the original dimensions. The intermediate buffers are
// local to the call so peak memory stays bounded at one level's worth.
func (g *PyramidGenerator) generateLevel(src *image.RGBA, width, height int, radius float64, factor int) (*shimmer.Pixmap, error) {
	smallW := width / factor
	smallH := height / factor
	if smallW <= 1 || smallH <= 1 {
		return nil, fmt.Errorf("%w: %dx%d at 1/%d scale", ErrEmptySource, width, height, factor)
	}

	small := image.NewRGBA(image.Rect(0, 0, smallW, smallH))
	g.downScaler.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)

	// The blur radius scales down with the image: blurring sigma/4 at
	// quarter resolution approximates sigma at full resolution.
	scaledRadius := int(math.Ceil(radius / float64(factor)))
	if scaledRadius < 1 {
		scaledRadius = 1
	}

	blurred, err := g.backend.Blur(shimmer.FromImage(small), scaledRadius)
	if err != nil {
		return nil, err
	}

	blurredImg := blurred.ToImage()
	full := image.NewRGBA(image.Rect(0, 0, width, height))
	g.upScaler.Scale(full, full.Bounds(), blurredImg, blurredImg.Bounds(), draw.Src, nil)

	return shimmer.FromImage(full), nil
}

// levelCount returns how many keyframes a max radius warrants, capped at
// MaxKeyframes.
func levelCount(maxRadius float64) int {
	if maxRadius <= 0 {
		return 0
	}
	n := int(math.Ceil(maxRadius / radiusPerLevel))
	if n > MaxKeyframes {
		n = MaxKeyframes
	}
	return n
}
