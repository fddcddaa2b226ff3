package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds every heuristic tuning value used by the forecasting engine.
// None of the numbers have a validated derivation; they are adjustable here
// rather than baked into the computation code.
type Params struct {
	// Similarity
	MinSamples     int `yaml:"min_samples"`
	ComplexityBand int `yaml:"complexity_band"`

	// Base estimate
	FallbackDaysPerComplexity float64 `yaml:"fallback_days_per_complexity"`
	MinAdjustedDays           float64 `yaml:"min_adjusted_days"`

	// Adjustment factors
	PriorityMultipliers   map[string]float64 `yaml:"priority_multipliers"`
	RiskThreshold         float64            `yaml:"risk_threshold"`
	RiskSlope             float64            `yaml:"risk_slope"`
	DependencyOverhead    float64            `yaml:"dependency_overhead"`
	CollaborationOverhead float64            `yaml:"collaboration_overhead"`
	VelocityFactorFloor   float64            `yaml:"velocity_factor_floor"`
	VelocityFactorCeil    float64            `yaml:"velocity_factor_ceil"`

	// Confidence
	ConfidenceBaseline    float64            `yaml:"confidence_baseline"`
	ConfidenceFloor       float64            `yaml:"confidence_floor"`
	ConfidenceCeil        float64            `yaml:"confidence_ceil"`
	FallbackConfidenceCap float64            `yaml:"fallback_confidence_cap"`
	MaxDispersionPenalty  float64            `yaml:"max_dispersion_penalty"`
	SampleBands           []SampleBand       `yaml:"sample_bands"`
	TierBonuses           map[string]float64 `yaml:"tier_bonuses"`
	IntervalZ             float64            `yaml:"interval_z"`
	FallbackSpreadPct     float64            `yaml:"fallback_spread_pct"`

	// Burndown
	VelocityWindowWeeks int     `yaml:"velocity_window_weeks"`
	ProjectionHorizon   int     `yaml:"projection_horizon"`
	MinProjectedPoints  int     `yaml:"min_projected_points"`
	BandZ               float64 `yaml:"band_z"`

	// Freshness
	MaxAgeHours int `yaml:"max_age_hours"`
}

// SampleBand maps a sample-size threshold to its confidence contribution.
// Bands are consulted highest threshold first.
type SampleBand struct {
	MinSamples   int     `yaml:"min_samples"`
	Contribution float64 `yaml:"contribution"`
}

// Default returns Params with the engine's standard tuning values.
func Default() Params {
	return Params{
		MinSamples:     5,
		ComplexityBand: 1,

		FallbackDaysPerComplexity: 1.5,
		MinAdjustedDays:           0.5,

		PriorityMultipliers: map[string]float64{
			"urgent": 0.8,
			"high":   0.9,
			"medium": 1.0,
			"low":    1.2,
		},
		RiskThreshold:         6.0,
		RiskSlope:             0.05,
		DependencyOverhead:    0.10,
		CollaborationOverhead: 1.15,
		VelocityFactorFloor:   0.5,
		VelocityFactorCeil:    1.5,

		ConfidenceBaseline:    0.50,
		ConfidenceFloor:       0.30,
		ConfidenceCeil:        0.95,
		FallbackConfidenceCap: 0.40,
		MaxDispersionPenalty:  0.20,
		SampleBands: []SampleBand{
			{MinSamples: 20, Contribution: 0.30},
			{MinSamples: 10, Contribution: 0.25},
			{MinSamples: 5, Contribution: 0.15},
			{MinSamples: 0, Contribution: 0.05},
		},
		TierBonuses: map[string]float64{
			"assignee": 0.10,
			"board":    0.05,
		},
		IntervalZ:         1.96,
		FallbackSpreadPct: 0.40,

		VelocityWindowWeeks: 8,
		ProjectionHorizon:   16,
		MinProjectedPoints:  10,
		BandZ:               1.645,

		MaxAgeHours: 24,
	}
}

// Load reads params from the YAML file at path (if non-empty), layered over
// defaults, then applies environment overrides.
func Load(path string) (Params, error) {
	p := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("reading params file: %w", err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parsing params file: %w", err)
		}
	}

	applyEnv(&p)

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate rejects parameter combinations the engine cannot run with.
func (p Params) Validate() error {
	if p.MinSamples < 1 {
		return fmt.Errorf("min_samples must be >= 1, got %d", p.MinSamples)
	}
	if p.MinAdjustedDays <= 0 {
		return fmt.Errorf("min_adjusted_days must be positive, got %g", p.MinAdjustedDays)
	}
	if p.ConfidenceFloor > p.ConfidenceCeil {
		return fmt.Errorf("confidence floor %g exceeds ceiling %g", p.ConfidenceFloor, p.ConfidenceCeil)
	}
	if p.ProjectionHorizon < p.MinProjectedPoints {
		return fmt.Errorf("projection_horizon %d below min_projected_points %d", p.ProjectionHorizon, p.MinProjectedPoints)
	}
	if p.VelocityWindowWeeks < 1 {
		return fmt.Errorf("velocity_window_weeks must be >= 1, got %d", p.VelocityWindowWeeks)
	}
	for _, name := range []string{"urgent", "high", "medium", "low"} {
		if _, ok := p.PriorityMultipliers[name]; !ok {
			return fmt.Errorf("priority_multipliers missing %q", name)
		}
	}
	if len(p.SampleBands) == 0 {
		return fmt.Errorf("sample_bands must not be empty")
	}
	return nil
}

// PriorityMultiplier returns the multiplier for the given priority name,
// defaulting to 1.0 for unknown values.
func (p Params) PriorityMultiplier(priority string) float64 {
	if m, ok := p.PriorityMultipliers[priority]; ok {
		return m
	}
	return 1.0
}

// SampleContribution returns the confidence contribution of the first band
// whose threshold the sample size meets.
func (p Params) SampleContribution(n int) float64 {
	for _, b := range p.SampleBands {
		if n >= b.MinSamples {
			return b.Contribution
		}
	}
	return 0
}

// TierBonus returns the confidence bonus for the given similarity tier,
// defaulting to zero for unknown tiers.
func (p Params) TierBonus(tier string) float64 {
	return p.TierBonuses[tier]
}

func applyEnv(p *Params) {
	if v := envInt("PRIZMAI_MIN_SAMPLES"); v != nil {
		p.MinSamples = *v
	}
	if v := envInt("PRIZMAI_MAX_AGE_HOURS"); v != nil {
		p.MaxAgeHours = *v
	}
	if v := envInt("PRIZMAI_VELOCITY_WINDOW_WEEKS"); v != nil {
		p.VelocityWindowWeeks = *v
	}
	if v := envFloat("PRIZMAI_FALLBACK_DAYS_PER_COMPLEXITY"); v != nil {
		p.FallbackDaysPerComplexity = *v
	}
}

func envInt(name string) *int {
	s := os.Getenv(name)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func envFloat(name string) *float64 {
	s := os.Getenv(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
