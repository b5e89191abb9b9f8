package leaf

// Label is a leaf condition.
type Label string

// Condition labels produced by Classify.
const (
	LabelHealthy            Label = "Healthy"
	LabelPowderyMildew      Label = "Powdery Mildew"
	LabelLeafSpot           Label = "Leaf Spot"
	LabelNutrientDeficiency Label = "Nutrient Deficiency"
)

// Labels returns every label Classify can produce, in cascade order.
func Labels() []Label {
	return []Label{LabelPowderyMildew, LabelLeafSpot, LabelNutrientDeficiency, LabelHealthy}
}

// Rule cascade constants. Fractions are in [0, 1].
const (
	PowderyMinFraction = 0.07
	PowderyMinGreen    = 0.10
	PowderyOffset      = 0.05
	PowderyScale       = 0.25
	PowderyBase        = 0.6

	SpotMinFraction = 0.06
	SpotMinGreen    = 0.10
	SpotOffset      = 0.04
	SpotScale       = 0.30
	SpotBase        = 0.55

	YellowMinFraction = 0.15
	YellowMinGreen    = 0.10
	YellowOffset      = 0.10
	YellowScale       = 0.40
	YellowBase        = 0.5

	HealthyMinGreen   = 0.20
	HealthyMaxSymptom = 0.08
	HealthyBase       = 0.7
	HealthyPenalty    = 0.5
	HealthyFloor      = 0.5

	FallbackFloor = 0.4
)

// Rules parameterizes the decision cascade.
type Rules struct {
	PowderyMinFraction float64 `json:"powdery_min_fraction"`
	PowderyMinGreen    float64 `json:"powdery_min_green"`
	PowderyOffset      float64 `json:"powdery_offset"`
	PowderyScale       float64 `json:"powdery_scale"`
	PowderyBase        float64 `json:"powdery_base"`

	SpotMinFraction float64 `json:"spot_min_fraction"`
	SpotMinGreen    float64 `json:"spot_min_green"`
	SpotOffset      float64 `json:"spot_offset"`
	SpotScale       float64 `json:"spot_scale"`
	SpotBase        float64 `json:"spot_base"`

	YellowMinFraction float64 `json:"yellow_min_fraction"`
	YellowMinGreen    float64 `json:"yellow_min_green"`
	YellowOffset      float64 `json:"yellow_offset"`
	YellowScale       float64 `json:"yellow_scale"`
	YellowBase        float64 `json:"yellow_base"`

	HealthyMinGreen   float64 `json:"healthy_min_green"`
	HealthyMaxSymptom float64 `json:"healthy_max_symptom"`
	HealthyBase       float64 `json:"healthy_base"`
	HealthyPenalty    float64 `json:"healthy_penalty"`
	HealthyFloor      float64 `json:"healthy_floor"`

	FallbackFloor float64 `json:"fallback_floor"`
}

// DefaultRules returns the stock cascade built from the package constants.
func DefaultRules() Rules {
	return Rules{
		PowderyMinFraction: PowderyMinFraction,
		PowderyMinGreen:    PowderyMinGreen,
		PowderyOffset:      PowderyOffset,
		PowderyScale:       PowderyScale,
		PowderyBase:        PowderyBase,

		SpotMinFraction: SpotMinFraction,
		SpotMinGreen:    SpotMinGreen,
		SpotOffset:      SpotOffset,
		SpotScale:       SpotScale,
		SpotBase:        SpotBase,

		YellowMinFraction: YellowMinFraction,
		YellowMinGreen:    YellowMinGreen,
		YellowOffset:      YellowOffset,
		YellowScale:       YellowScale,
		YellowBase:        YellowBase,

		HealthyMinGreen:   HealthyMinGreen,
		HealthyMaxSymptom: HealthyMaxSymptom,
		HealthyBase:       HealthyBase,
		HealthyPenalty:    HealthyPenalty,
		HealthyFloor:      HealthyFloor,

		FallbackFloor: FallbackFloor,
	}
}

// rule is one step of the cascade.
type rule struct {
	label      Label
	applies    func(Metrics) bool
	confidence func(Metrics) float64
}

// cascade returns the rules in evaluation order. Order is the tie-break: a
// leaf that qualifies for several conditions gets the earliest one.
func (r Rules) cascade() []rule {
	return []rule{
		{
			label: LabelPowderyMildew,
			applies: func(m Metrics) bool {
				return m.PowderyFraction >= r.PowderyMinFraction && m.GreenFraction >= r.PowderyMinGreen
			},
			confidence: func(m Metrics) float64 {
				return (m.PowderyFraction-r.PowderyOffset)/r.PowderyScale + r.PowderyBase
			},
		},
		{
			label: LabelLeafSpot,
			applies: func(m Metrics) bool {
				return m.SpotFraction >= r.SpotMinFraction && m.GreenFraction >= r.SpotMinGreen
			},
			confidence: func(m Metrics) float64 {
				return (m.SpotFraction-r.SpotOffset)/r.SpotScale + r.SpotBase
			},
		},
		{
			label: LabelNutrientDeficiency,
			applies: func(m Metrics) bool {
				return m.YellowFraction >= r.YellowMinFraction && m.GreenFraction >= r.YellowMinGreen
			},
			confidence: func(m Metrics) float64 {
				return (m.YellowFraction-r.YellowOffset)/r.YellowScale + r.YellowBase
			},
		},
		{
			label: LabelHealthy,
			applies: func(m Metrics) bool {
				return m.GreenFraction >= r.HealthyMinGreen && m.maxSymptom() <= r.HealthyMaxSymptom
			},
			confidence: func(m Metrics) float64 {
				return max(r.HealthyFloor, r.HealthyBase-m.maxSymptom()*r.HealthyPenalty)
			},
		},
		{
			label:   LabelHealthy,
			applies: func(Metrics) bool { return true },
			confidence: func(m Metrics) float64 {
				return max(r.FallbackFloor, 1.0-m.maxSymptom())
			},
		},
	}
}

// Classify runs the cascade and returns the first matching label with its
// confidence clamped to [0, 1].
func (r Rules) Classify(m Metrics) (Label, float64) {
	for _, rl := range r.cascade() {
		if rl.applies(m) {
			return rl.label, clamp01(rl.confidence(m))
		}
	}
	return LabelHealthy, clamp01(r.FallbackFloor)
}

// Classify runs the default cascade.
func Classify(m Metrics) (Label, float64) {
	return DefaultRules().Classify(m)
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
