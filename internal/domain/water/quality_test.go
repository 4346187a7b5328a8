package water

import "testing"

// idealMetrics sits inside every scored range.
func idealMetrics() WaterQualityMetrics {
	return WaterQualityMetrics{
		PH:                   7.0,
		Turbidity:            0.5,
		DissolvedOxygen:      7,
		Temperature:          20,
		Conductivity:         500,
		TotalDissolvedSolids: 400,
		Chlorine:             1.0,
		Hardness:             120,
	}
}

func TestRangeScore(t *testing.T) {
	r := metricRange{6.5, 8.5}

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"inside range", 7.0, 1},
		{"lower bound inclusive", 6.5, 1},
		{"upper bound inclusive", 8.5, 1},
		{"below range decays from midpoint", 5.5, 1 - 2.0/2.0},
		{"above range decays from midpoint", 9.0, 1 - 1.5/2.0},
		{"far outside floors at zero", 14, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rangeScore(tt.value, r); !approxEqual(got, tt.want) {
				t.Errorf("rangeScore(%f) = %f, want %f", tt.value, got, tt.want)
			}
		})
	}
}

func TestQualityScore_AllInRange(t *testing.T) {
	if got := QualityScore(idealMetrics()); !approxEqual(got, 1) {
		t.Errorf("QualityScore() = %f, want 1", got)
	}
}

func TestQualityScore_IgnoresTemperatureAndConductivity(t *testing.T) {
	m := idealMetrics()
	m.Temperature = 40
	m.Conductivity = 2000

	if got := QualityScore(m); !approxEqual(got, 1) {
		t.Errorf("QualityScore() = %f, want 1 regardless of temperature and conductivity", got)
	}
}

func TestQualityScore_WhiteImageMetrics(t *testing.T) {
	m := DeriveMetrics(ColorAverages{Red: 255, Green: 255, Blue: 255, Brightness: 255})

	// ph, turbidity and TDS score 1; dissolved oxygen 10 and hardness 300
	// floor at 0; chlorine 0 scores 1 - 1.1/1.8.
	want := (1 + 1 + 0 + 1 + (1 - 1.1/1.8) + 0) / 6
	if got := QualityScore(m); !approxEqual(got, want) {
		t.Errorf("QualityScore() = %f, want %f", got, want)
	}
}

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		score float64
		want  QualityLevel
	}{
		{1.0, QualityExcellent},
		{0.9, QualityExcellent}, // boundaries are inclusive lower bounds
		{0.89, QualityGood},
		{0.7, QualityGood},
		{0.69, QualityFair},
		{0.5, QualityFair},
		{0.49, QualityPoor},
		{0, QualityPoor},
	}

	for _, tt := range tests {
		if got := ClassifyQuality(tt.score); got != tt.want {
			t.Errorf("ClassifyQuality(%f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
