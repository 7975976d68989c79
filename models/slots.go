package models

import "time"

// CandidateSlot is a provisional, unbooked (provider, time) pairing
// considered for recommendation. Score and wait are filled in during
// ranking; generation emits bare placeholders.
type CandidateSlot struct {
	ProviderID    string    `json:"providerId"`
	Start         time.Time `json:"start"`
	Score         float64   `json:"score"`         // in [0,1]
	EstimatedWait int       `json:"estimatedWait"` // minutes, in [0,120]
	Utilization   float64   `json:"utilization"`   // in [0,1]
}

// AlternativeSlot is a fallback proposal offered when primary candidates
// are scarce or a provider is excluded.
type AlternativeSlot struct {
	ProviderID string    `json:"providerId"`
	Start      time.Time `json:"start"`
	Reason     string    `json:"reason"`
}

// Resource availability labels reported in Insights.
const (
	ResourceGood    = "good"
	ResourceLimited = "limited"
)

// Urgency classification labels reported in Insights.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Insights summarizes demand and historical context for a request.
type Insights struct {
	BestHour             int    `json:"bestHour"`             // hour of day with the lowest historical wait
	ExpectedDurationMins int    `json:"expectedDurationMins"` // mean historical duration for the type
	UrgencyLevel         string `json:"urgencyLevel"`         // low | medium | high
	ResourceAvailability string `json:"resourceAvailability"` // good | limited
}

// OptimizationResult is the immutable outcome of one optimization run:
// up to 10 ranked candidates, up to 5 alternatives, and an insight summary.
type OptimizationResult struct {
	Candidates   []CandidateSlot   `json:"candidates"`
	Alternatives []AlternativeSlot `json:"alternatives"`
	Insights     Insights          `json:"insights"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}
