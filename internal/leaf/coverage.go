package leaf

// Coverage returns the fraction of true pixels in m, or 0 for an empty mask.
func Coverage(m Mask) float64 {
	total := m.Width * m.Height
	if total <= 0 || len(m.Bits) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(total)
}

// Metrics are the four coverage fractions, each in [0, 1].
type Metrics struct {
	GreenFraction   float64 `json:"green_fraction"`
	SpotFraction    float64 `json:"spot_fraction"`
	PowderyFraction float64 `json:"powdery_fraction"`
	YellowFraction  float64 `json:"yellow_fraction"`
}

// Measure computes Metrics from filtered masks. The brown mask feeds
// SpotFraction.
func Measure(m Masks) Metrics {
	return Metrics{
		GreenFraction:   Coverage(m.Green),
		SpotFraction:    Coverage(m.Brown),
		PowderyFraction: Coverage(m.Powdery),
		YellowFraction:  Coverage(m.Yellow),
	}
}

// maxSymptom is the largest of the three symptom fractions.
func (m Metrics) maxSymptom() float64 {
	return max(m.SpotFraction, m.PowderyFraction, m.YellowFraction)
}
