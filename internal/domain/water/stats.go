package water

import (
	"math"

	imgdomain "aquasight-server-go/internal/domain/image"
	"aquasight-server-go/internal/platform/errors"
)

// ComputeColorAverages runs the two-pass statistics scan over a pixel
// buffer. Pass one accumulates per-channel sums plus per-pixel brightness
// and saturation; pass two accumulates squared deviations against the pass
// one averages. The second pass cannot be folded into the first because the
// deviations depend on averages that are unknown until the full buffer has
// been seen.
func ComputeColorAverages(buf *imgdomain.PixelBuffer) (ColorAverages, error) {
	if err := buf.Validate(); err != nil {
		return ColorAverages{}, errors.Wrap(errors.KindAnalysis, "stats.compute", "invalid pixel buffer", err)
	}

	totalPixels := float64(buf.PixelCount())

	var sumR, sumG, sumB, sumBrightness, sumSaturation float64
	for i := 0; i < len(buf.Pix); i += 4 {
		r := float64(buf.Pix[i])
		g := float64(buf.Pix[i+1])
		b := float64(buf.Pix[i+2])

		sumR += r
		sumG += g
		sumB += b
		sumBrightness += (r + g + b) / 3

		maxC := math.Max(r, math.Max(g, b))
		minC := math.Min(r, math.Min(g, b))
		if maxC > 0 {
			sumSaturation += (maxC - minC) / maxC
		}
	}

	avg := ColorAverages{
		Red:        sumR / totalPixels,
		Green:      sumG / totalPixels,
		Blue:       sumB / totalPixels,
		Brightness: sumBrightness / totalPixels,
		Saturation: sumSaturation / totalPixels,
	}

	var sumSquaredDev float64
	for i := 0; i < len(buf.Pix); i += 4 {
		dr := float64(buf.Pix[i]) - avg.Red
		dg := float64(buf.Pix[i+1]) - avg.Green
		db := float64(buf.Pix[i+2]) - avg.Blue
		sumSquaredDev += dr*dr + dg*dg + db*db
	}

	// Pooled standard deviation over all three channels combined.
	avg.Variance = math.Sqrt(sumSquaredDev / (totalPixels * 3))

	return avg, nil
}
