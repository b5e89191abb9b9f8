package leaf

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one analysis.
type Result struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Metrics    Metrics `json:"metrics"`
}

// Calibration bundles the mask thresholds and the rule cascade constants.
type Calibration struct {
	Thresholds Thresholds `json:"thresholds"`
	Rules      Rules      `json:"rules"`
}

// DefaultCalibration returns the stock thresholds and rules.
func DefaultCalibration() Calibration {
	return Calibration{Thresholds: DefaultThresholds(), Rules: DefaultRules()}
}

// ParseCalibration decodes a JSON calibration document on top of the
// defaults. Fields missing from data keep their default value.
func ParseCalibration(data []byte) (Calibration, error) {
	cal := DefaultCalibration()
	if err := json.Unmarshal(data, &cal); err != nil {
		return Calibration{}, fmt.Errorf("failed to parse calibration: %w", err)
	}
	return cal, nil
}

// Analyzer runs the pipeline with a fixed calibration. The zero value is not
// usable; create one with NewAnalyzer. An Analyzer is safe for concurrent use.
type Analyzer struct {
	cal Calibration
}

// NewAnalyzer creates an analyzer for the given calibration.
func NewAnalyzer(cal Calibration) *Analyzer {
	return &Analyzer{cal: cal}
}

// Calibration returns the analyzer's calibration.
func (a *Analyzer) Calibration() Calibration {
	return a.cal
}

// Masks returns the four filtered masks for b.
func (a *Analyzer) Masks(b Buffer) (Masks, error) {
	if err := b.Validate(); err != nil {
		return Masks{}, err
	}
	return OpenAll(a.cal.Thresholds.Build(ToHSV(b))), nil
}

// Analyze classifies the leaf in b. It never fails: a buffer that does not
// pass Validate is treated as having no pixels and yields zero metrics,
// LabelHealthy and the fallback confidence floor.
func (a *Analyzer) Analyze(b Buffer) Result {
	masks, err := a.Masks(b)
	if err != nil {
		return Result{Label: LabelHealthy, Confidence: clamp01(a.cal.Rules.FallbackFloor)}
	}

	metrics := Measure(masks)
	label, confidence := a.cal.Rules.Classify(metrics)
	return Result{Label: label, Confidence: confidence, Metrics: metrics}
}

var defaultAnalyzer = NewAnalyzer(DefaultCalibration())

// Analyze classifies b with the default calibration.
func Analyze(b Buffer) Result {
	return defaultAnalyzer.Analyze(b)
}
