package water

import "time"

// QualityLevel is the four-tier overall assessment label.
type QualityLevel string

const (
	QualityExcellent QualityLevel = "Excellent"
	QualityGood      QualityLevel = "Good"
	QualityFair      QualityLevel = "Fair"
	QualityPoor      QualityLevel = "Poor"
)

// ColorAverages holds the statistics extracted from a pixel buffer in one
// analysis pass pair. Red, Green, Blue and Brightness are in [0,255],
// Saturation in [0,1], Variance is the pooled standard deviation across the
// three color channels and is never negative.
type ColorAverages struct {
	Red        float64
	Green      float64
	Blue       float64
	Brightness float64
	Saturation float64
	Variance   float64
}

// WaterQualityMetrics carries the eight derived indicators in physical
// units. Every field is clamped to its declared range by its derivation
// formula, so values never escape these bounds regardless of input.
type WaterQualityMetrics struct {
	PH                   float64 `json:"ph"`                   // [0,14]
	Turbidity            float64 `json:"turbidity"`            // [0,40] NTU
	DissolvedOxygen      float64 `json:"dissolvedOxygen"`      // [0,15] mg/L
	Temperature          float64 `json:"temperature"`          // [0,40] Celsius
	Conductivity         float64 `json:"conductivity"`         // [0,2000] uS/cm
	TotalDissolvedSolids float64 `json:"totalDissolvedSolids"` // [0,1000] mg/L
	Chlorine             float64 `json:"chlorine"`             // [0,4] mg/L
	Hardness             float64 `json:"hardness"`             // [0,300] mg/L
}

// SafetyStatus groups the three independent usage gates. None implies
// another; each is evaluated on its own thresholds.
type SafetyStatus struct {
	IsDrinkable      bool `json:"isDrinkable"`
	IsSwimmable      bool `json:"isSwimmable"`
	IsIrrigationSafe bool `json:"isIrrigationSafe"`
}

// AnalysisResult is the terminal artifact returned to callers. It is built
// once per request and never mutated afterwards.
type AnalysisResult struct {
	ID              string              `json:"id"`
	OverallQuality  QualityLevel        `json:"overallQuality"`
	Metrics         WaterQualityMetrics `json:"metrics"`
	SafetyStatus    SafetyStatus        `json:"safetyStatus"`
	Recommendations []string            `json:"recommendations"`
	AnalyzedAt      time.Time           `json:"analyzedAt"`
}
