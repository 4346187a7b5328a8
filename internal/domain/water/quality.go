package water

import "math"

// metricRange is the acceptable window a single metric is scored against.
type metricRange struct {
	min float64
	max float64
}

// Scoring covers six of the eight metrics. Temperature and conductivity
// vary too much with lighting to carry weight in the overall label.
var qualityRanges = struct {
	ph        metricRange
	turbidity metricRange
	oxygen    metricRange
	tds       metricRange
	chlorine  metricRange
	hardness  metricRange
}{
	ph:        metricRange{6.5, 8.5},
	turbidity: metricRange{0, 5},
	oxygen:    metricRange{6, 8},
	tds:       metricRange{0, 500},
	chlorine:  metricRange{0.2, 2},
	hardness:  metricRange{60, 180},
}

// rangeScore rates a value against its acceptable range. In-range values
// score 1; outside the range the score decays linearly with distance from
// the range midpoint, floored at 0.
func rangeScore(value float64, r metricRange) float64 {
	if value >= r.min && value <= r.max {
		return 1
	}
	midpoint := (r.min + r.max) / 2
	return math.Max(0, 1-math.Abs(value-midpoint)/(r.max-r.min))
}

// QualityScore averages the six per-metric scores with equal weight,
// yielding a value in [0,1].
func QualityScore(m WaterQualityMetrics) float64 {
	sum := rangeScore(m.PH, qualityRanges.ph) +
		rangeScore(m.Turbidity, qualityRanges.turbidity) +
		rangeScore(m.DissolvedOxygen, qualityRanges.oxygen) +
		rangeScore(m.TotalDissolvedSolids, qualityRanges.tds) +
		rangeScore(m.Chlorine, qualityRanges.chlorine) +
		rangeScore(m.Hardness, qualityRanges.hardness)
	return sum / 6
}

// ClassifyQuality maps an aggregate score to the four-tier label. The
// 0.9, 0.7 and 0.5 boundaries are inclusive lower bounds.
func ClassifyQuality(score float64) QualityLevel {
	switch {
	case score >= 0.9:
		return QualityExcellent
	case score >= 0.7:
		return QualityGood
	case score >= 0.5:
		return QualityFair
	default:
		return QualityPoor
	}
}
