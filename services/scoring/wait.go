package scoring

import "medisched/models"

// Wait-time bounds in minutes. Estimates outside the range are clamped;
// an absent estimator yields DefaultWaitMins.
const (
	MinWaitMins     = 0
	MaxWaitMins     = 120
	DefaultWaitMins = 15
)

// WaitEstimator maps a candidate slot to an estimated patient wait in
// minutes. Like Scorer it is a pluggable capability, but its absence is
// recoverable: callers substitute DefaultWaitMins.
type WaitEstimator interface {
	EstimateWait(slot models.CandidateSlot, provider models.Provider) int
}

// LoadWaitEstimator derives the wait deterministically from provider load
// and time of day: a fully loaded provider adds up to an hour, and the
// mid-morning and mid-afternoon peaks add a fixed penalty.
type LoadWaitEstimator struct{}

func (LoadWaitEstimator) EstimateWait(slot models.CandidateSlot, provider models.Provider) int {
	wait := 10 + int(provider.LoadRatio()*60)
	hour := slot.Start.Hour()
	if (hour >= 10 && hour < 12) || (hour >= 14 && hour < 16) {
		wait += 10
	}
	return ClampWait(wait)
}

// ClampWait bounds a wait estimate to [MinWaitMins, MaxWaitMins].
func ClampWait(mins int) int {
	if mins < MinWaitMins {
		return MinWaitMins
	}
	if mins > MaxWaitMins {
		return MaxWaitMins
	}
	return mins
}
