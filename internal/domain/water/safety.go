package water

// AssessSafety evaluates the three usage gates. Each predicate is a pure
// conjunction of its own threshold checks; failing one gate says nothing
// about the others.
func AssessSafety(m WaterQualityMetrics) SafetyStatus {
	return SafetyStatus{
		IsDrinkable: m.PH >= 6.5 && m.PH <= 8.5 &&
			m.Turbidity <= 1 &&
			m.DissolvedOxygen >= 6 &&
			m.TotalDissolvedSolids <= 500 &&
			m.Chlorine >= 0.2 && m.Chlorine <= 4,
		IsSwimmable: m.PH >= 6.0 && m.PH <= 9.0 &&
			m.Turbidity <= 5 &&
			m.DissolvedOxygen >= 4,
		IsIrrigationSafe: m.PH >= 6.0 && m.PH <= 8.5 &&
			m.TotalDissolvedSolids <= 2000,
	}
}
