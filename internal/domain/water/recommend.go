package water

import "fmt"

// GenerateRecommendations builds the advisory list from metrics and safety
// flags. Conditions are checked in a fixed order and every firing condition
// appends its message; nothing is deduplicated or reordered. When no
// condition fires a single all-clear message is returned.
func GenerateRecommendations(m WaterQualityMetrics, safety SafetyStatus) []string {
	var recommendations []string

	if !safety.IsDrinkable {
		if m.PH < 6.5 || m.PH > 8.5 {
			recommendations = append(recommendations,
				fmt.Sprintf("pH level of %.1f is outside the safe drinking range (6.5-8.5); treat the water before consumption", m.PH))
		}
		if m.Turbidity > 1 {
			recommendations = append(recommendations,
				"High turbidity detected; filter the water to remove suspended particles before drinking")
		}
		if m.Chlorine < 0.2 {
			recommendations = append(recommendations,
				"Chlorine level is too low for safe disinfection; consider chlorination treatment")
		}
	}

	if m.Hardness > 180 {
		recommendations = append(recommendations,
			"Water is very hard; a water softener is recommended to prevent scale buildup")
	}

	if m.TotalDissolvedSolids > 500 {
		recommendations = append(recommendations,
			"Total dissolved solids exceed recommended levels; a reverse osmosis system is recommended")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Water quality parameters are within acceptable ranges; regular monitoring recommended")
	}

	return recommendations
}
