package water

import (
	"math"
	"math/rand"
	"testing"
)

func TestDeriveMetrics_PureWhite(t *testing.T) {
	avg := ColorAverages{Red: 255, Green: 255, Blue: 255, Brightness: 255}
	m := DeriveMetrics(avg)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ph", m.PH, 7.5},
		{"turbidity", m.Turbidity, 0},
		{"dissolvedOxygen", m.DissolvedOxygen, 10},
		{"temperature", m.Temperature, 40},
		{"conductivity", m.Conductivity, 1000},
		{"totalDissolvedSolids", m.TotalDissolvedSolids, 500},
		{"chlorine", m.Chlorine, 0},
		{"hardness", m.Hardness, 300},
	}
	for _, tt := range tests {
		if !approxEqual(tt.got, tt.want) {
			t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
		}
	}
}

func TestDeriveMetrics_PureBlack(t *testing.T) {
	m := DeriveMetrics(ColorAverages{})

	// avgG of zero takes the neutral-ratio path, so only the blue term
	// shifts pH off 7.
	if !approxEqual(m.PH, 6.5) {
		t.Errorf("ph = %f, want 6.5", m.PH)
	}
	if !approxEqual(m.Turbidity, 40) {
		t.Errorf("turbidity = %f, want 40", m.Turbidity)
	}
	for name, got := range map[string]float64{
		"dissolvedOxygen":      m.DissolvedOxygen,
		"temperature":          m.Temperature,
		"conductivity":         m.Conductivity,
		"totalDissolvedSolids": m.TotalDissolvedSolids,
		"chlorine":             m.Chlorine,
		"hardness":             m.Hardness,
	} {
		if !approxEqual(got, 0) {
			t.Errorf("%s = %f, want 0", name, got)
		}
	}
}

func TestDeriveMetrics_ClampsExtremes(t *testing.T) {
	// A heavily red, dark, noisy image pushes several formulas past their
	// bounds; every field must stay inside its declared range.
	extreme := ColorAverages{
		Red:        255,
		Green:      1,
		Blue:       0,
		Brightness: 0,
		Saturation: 1,
		Variance:   10000,
	}
	assertMetricRanges(t, DeriveMetrics(extreme))
}

func TestDeriveMetrics_RandomInputsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		avg := ColorAverages{
			Red:        rng.Float64() * 255,
			Green:      rng.Float64() * 255,
			Blue:       rng.Float64() * 255,
			Brightness: rng.Float64() * 255,
			Saturation: rng.Float64(),
			Variance:   rng.Float64() * 500,
		}
		assertMetricRanges(t, DeriveMetrics(avg))
	}
}

func assertMetricRanges(t *testing.T, m WaterQualityMetrics) {
	t.Helper()

	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"ph", m.PH, 0, 14},
		{"turbidity", m.Turbidity, 0, 40},
		{"dissolvedOxygen", m.DissolvedOxygen, 0, 15},
		{"temperature", m.Temperature, 0, 40},
		{"conductivity", m.Conductivity, 0, 2000},
		{"totalDissolvedSolids", m.TotalDissolvedSolids, 0, 1000},
		{"chlorine", m.Chlorine, 0, 4},
		{"hardness", m.Hardness, 0, 300},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			t.Errorf("%s = %f escapes range [%f,%f]", c.name, c.value, c.min, c.max)
		}
	}
}
