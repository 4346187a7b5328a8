package water

// clamp truncates v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DeriveMetrics maps color statistics to the eight water-quality
// indicators. The formulas are heuristic color correlations, not calibrated
// photometric models, but their exact arithmetic is the contract callers and
// tests observe, so every coefficient here is load-bearing.
func DeriveMetrics(avg ColorAverages) WaterQualityMetrics {
	// A zero green average would blow up the red/green ratio. Treat the
	// ratio as neutral (1) so the term drops out and pH stays finite.
	redGreenRatio := 1.0
	if avg.Green > 0 {
		redGreenRatio = avg.Red / avg.Green
	}

	return WaterQualityMetrics{
		PH:                   clamp(7+(redGreenRatio-1)*3.5+(avg.Blue/255-0.5), 0, 14),
		Turbidity:            clamp((255-avg.Brightness)/6.375+avg.Variance/30, 0, 40),
		DissolvedOxygen:      clamp((avg.Blue/255)*10+avg.Saturation*5, 0, 15),
		Temperature:          clamp((avg.Red/255)*40, 0, 40),
		Conductivity:         clamp(avg.Variance*5+(avg.Brightness/255)*1000, 0, 2000),
		TotalDissolvedSolids: clamp((avg.Brightness/255)*500+avg.Variance*2, 0, 1000),
		Chlorine:             clamp(((avg.Green-avg.Blue)/255)*4, 0, 4),
		Hardness:             clamp(((avg.Red+avg.Green)/(2*255))*300, 0, 300),
	}
}
