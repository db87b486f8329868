package imaging

import (
	"errors"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"noteboard/internal/domain"
)

// ErrEmptyImage is returned when an image has no opaque pixels to sample.
var ErrEmptyImage = errors.New("image has no opaque pixels")

// PaletteOptions tunes palette extraction.
type PaletteOptions struct {
	Count         int     // Maximum number of swatches returned
	SampleSize    int     // Longest edge after downscaling, in pixels
	MergeDistance float64 // CIE Lab distance under which two buckets merge
}

// DefaultPaletteOptions returns a five-color palette sampled at 64px.
func DefaultPaletteOptions() PaletteOptions {
	return PaletteOptions{Count: 5, SampleSize: 64, MergeDistance: 0.08}
}

type bucket struct {
	r, g, b uint64
	n       int
	key     uint32
}

type cluster struct {
	color colorful.Color
	n     int
	key   uint32
}

// ExtractPalette returns up to opts.Count representative colors of img,
// most common first.
//
// The image is downscaled to opts.SampleSize on its longest edge, pixels
// with alpha below 50% are skipped, and the remaining colors are quantized
// to 4 bits per channel. Buckets whose average colors lie within
// opts.MergeDistance in Lab space are merged into the larger one.
func ExtractPalette(img image.Image, opts PaletteOptions) ([]domain.Swatch, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultPaletteOptions().Count
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultPaletteOptions().SampleSize
	}

	small := imaging.Fit(img, opts.SampleSize, opts.SampleSize, imaging.Box)
	bounds := small.Bounds()

	buckets := make(map[uint32]*bucket)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := small.NRGBAAt(x, y)
			if c.A < 128 {
				continue
			}
			key := uint32(c.R>>4)<<8 | uint32(c.G>>4)<<4 | uint32(c.B>>4)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{key: key}
				buckets[key] = bk
			}
			bk.r += uint64(c.R)
			bk.g += uint64(c.G)
			bk.b += uint64(c.B)
			bk.n++
			total++
		}
	}
	if total == 0 {
		return nil, ErrEmptyImage
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		sorted = append(sorted, bk)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].n != sorted[j].n {
			return sorted[i].n > sorted[j].n
		}
		return sorted[i].key < sorted[j].key
	})

	var clusters []*cluster
	for _, bk := range sorted {
		n := float64(bk.n)
		c := colorful.Color{
			R: float64(bk.r) / n / 255,
			G: float64(bk.g) / n / 255,
			B: float64(bk.b) / n / 255,
		}
		merged := false
		for _, cl := range clusters {
			if cl.color.DistanceLab(c) < opts.MergeDistance {
				cl.n += bk.n
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, &cluster{color: c, n: bk.n, key: bk.key})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].n > clusters[j].n
	})
	if len(clusters) > opts.Count {
		clusters = clusters[:opts.Count]
	}

	swatches := make([]domain.Swatch, len(clusters))
	for i, cl := range clusters {
		c := cl.color.Clamped()
		r, g, b := c.RGB255()
		swatches[i] = domain.Swatch{
			Hex:   c.Hex(),
			R:     r,
			G:     g,
			B:     b,
			Share: float64(cl.n) / float64(total),
		}
	}
	return swatches, nil
}
