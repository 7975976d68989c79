package scoring

// Features is the input contract for a Scorer: every field is normalized
// to [0,1] (the seasonal pair to [-1,1]) before scoring, so strategies can
// be swapped without re-deriving the extraction.
type Features struct {
	HourOfDay           float64 // hour / 23
	DayOfWeek           float64 // weekday / 6
	LoadRatio           float64 // currentLoad / maxCapacity
	TypeOrdinal         float64 // appointment-type ordinal / type count
	UrgencyOrdinal      float64 // urgency ordinal / urgency count
	DemandLevel         float64 // forecast demand at the hour, capped and normalized
	SpecializationMatch float64 // 1.0 exact, 0.5 partial, 0.3 default
	BreakProximity      float64 // 0 during break, 0.3 adjacent hour, 1 otherwise
	SeasonSin           float64 // sin of day-of-year angle
	SeasonCos           float64 // cos of day-of-year angle
}

// Scorer maps a feature vector to a suitability confidence in [0,1].
// The scheduling engine treats this as an external capability; a broken
// or absent scorer is fatal for the request rather than silently degraded.
type Scorer interface {
	Score(f Features) float64
}

// WeightedScorer is the in-repo scoring strategy: a deterministic linear
// blend of the features. Quieter hours, idle providers and well-matched
// specializations score higher.
type WeightedScorer struct{}

// NewWeightedScorer returns the default scoring strategy.
func NewWeightedScorer() WeightedScorer {
	return WeightedScorer{}
}

func (WeightedScorer) Score(f Features) float64 {
	score := 0.22*f.SpecializationMatch +
		0.16*f.BreakProximity +
		0.20*(1-f.LoadRatio) +
		0.14*(1-f.DemandLevel) +
		0.10*(1-f.DayOfWeek) +
		0.08*(1-f.HourOfDay) +
		0.05*(0.5+0.5*f.SeasonCos) +
		0.05*f.UrgencyOrdinal
	return Clamp01(score)
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
