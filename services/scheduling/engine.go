package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medisched/models"
	"medisched/services/forecast"
	"medisched/services/scoring"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// scoreThreshold drops weak candidates: anything at or below it
	// never reaches the primary list.
	scoreThreshold = 0.6
	// maxPrimary caps the ranked list.
	maxPrimary = 10
	// slotDurationMins is the advisory interval width for whole-hour
	// candidate slots.
	slotDurationMins = 60
	// defaultResultTTL applies when no TTL is configured.
	defaultResultTTL = 5 * time.Minute
)

// ProviderSource yields providers with working hours and current load.
type ProviderSource interface {
	GetProviderSchedules(ctx context.Context, department string, appointmentType models.AppointmentType) ([]models.Provider, error)
}

// BookingSource yields the bookings snapshot used for advisory conflict
// filtering. Commit-time admission lives behind the booking store, not here.
type BookingSource interface {
	GetBookingsForProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
}

// HistorySource yields completed visits for insight aggregation.
type HistorySource interface {
	GetVisitsByType(ctx context.Context, appointmentType models.AppointmentType, department string) ([]models.HistoricalVisit, error)
}

// Optimizer is the one operation this core exposes.
type Optimizer interface {
	Optimize(ctx context.Context, req models.SchedulingRequest) (*models.OptimizationResult, error)
}

// EngineConfig collects the engine's collaborators. Providers, Bookings
// and Scorer are mandatory; the rest have degraded-mode substitutes.
type EngineConfig struct {
	Providers     ProviderSource
	Bookings      BookingSource
	History       HistorySource
	Forecaster    forecast.DemandForecaster
	Scorer        scoring.Scorer
	WaitEstimator scoring.WaitEstimator
	Cache         ResultCache
	TTL           time.Duration
	HorizonDays   int
	Logger        *zap.Logger
	Now           func() time.Time
}

// Engine is the slot-optimization engine. Construct it with NewEngine;
// a constructed engine is fully valid and needs no readiness checks.
type Engine struct {
	providers   ProviderSource
	bookings    BookingSource
	history     HistorySource
	forecaster  forecast.DemandForecaster
	scorer      scoring.Scorer
	waits       scoring.WaitEstimator
	cache       ResultCache
	ttl         time.Duration
	horizonDays int
	logger      *zap.Logger
	now         func() time.Time
	flight      singleflight.Group
}

// NewEngine validates the configuration and returns a ready engine.
// A missing scorer, provider source or booking source is a construction
// error; a missing forecaster, estimator, history source or cache only
// degrades the result.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Scorer == nil {
		return nil, ErrScorerRequired
	}
	if cfg.Providers == nil {
		return nil, ErrProviderSourceRequired
	}
	if cfg.Bookings == nil {
		return nil, ErrBookingSourceRequired
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	forecaster := cfg.Forecaster
	if forecaster == nil {
		logger.Warn("no demand forecaster configured, using flat curve")
		forecaster = forecast.FlatForecaster{}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	horizon := cfg.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		providers:   cfg.Providers,
		bookings:    cfg.Bookings,
		history:     cfg.History,
		forecaster:  forecaster,
		scorer:      cfg.Scorer,
		waits:       cfg.WaitEstimator,
		cache:       cfg.Cache,
		ttl:         ttl,
		horizonDays: horizon,
		logger:      logger,
		now:         now,
	}, nil
}

// Optimize returns the ranked slot recommendation for a request. Results
// are memoized by fingerprint with a TTL, and concurrent identical
// requests share a single computation. The shared computation runs on a
// context detached from the leader, so one caller cancelling cannot fail
// the peers waiting on the same fingerprint; each caller still stops
// waiting when its own context ends.
func (e *Engine) Optimize(ctx context.Context, req models.SchedulingRequest) (*models.OptimizationResult, error) {
	fingerprint := req.Fingerprint()

	ch := e.flight.DoChan(fingerprint, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)

		if e.cache != nil {
			cached, ok, err := e.cache.Get(ctx, fingerprint)
			if err != nil {
				e.logger.Warn("result cache read failed", zap.Error(err))
			} else if ok {
				return cached, nil
			}
		}

		result, err := e.compute(ctx, req)
		if err != nil {
			return nil, err
		}

		if e.cache != nil {
			if err := e.cache.Set(ctx, fingerprint, result, e.ttl); err != nil {
				e.logger.Warn("result cache write failed", zap.Error(err))
			}
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.OptimizationResult), nil
	}
}

func (e *Engine) compute(ctx context.Context, req models.SchedulingRequest) (*models.OptimizationResult, error) {
	now := e.now()

	providers, err := e.providers.GetProviderSchedules(ctx, req.Department, req.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider schedules: %w", err)
	}
	if req.ProviderID != "" {
		providers = filterProvider(providers, req.ProviderID)
	}

	demand, err := e.forecaster.PredictDemand(ctx, req.PreferredDate, req.Type, req.Department)
	if err != nil || len(demand) != forecast.Hours {
		e.logger.Warn("demand forecast unavailable, proceeding with flat curve",
			zap.String("department", req.Department), zap.Error(err))
		demand = forecast.FlatCurve(forecast.DefaultDemandLevel)
	}

	candidates := GenerateCandidates(req, providers, now, e.horizonDays)
	candidates = e.filterKnownConflicts(ctx, req, candidates, now)
	primaries := e.rankCandidates(req, candidates, providers, demand)
	alternatives := FindAlternatives(req, providers, primaries, now)

	var visits []models.HistoricalVisit
	if e.history != nil {
		visits, err = e.history.GetVisitsByType(ctx, req.Type, req.Department)
		if err != nil {
			e.logger.Warn("visit history unavailable, insights fall back to defaults", zap.Error(err))
			visits = nil
		}
	}
	insights := Summarize(req, visits, demand, now)

	e.logger.Debug("optimization computed",
		zap.String("patient", req.PatientID),
		zap.Int("candidates", len(primaries)),
		zap.Int("alternatives", len(alternatives)))

	return &models.OptimizationResult{
		Candidates:   primaries,
		Alternatives: alternatives,
		Insights:     insights,
		GeneratedAt:  now,
	}, nil
}

// filterKnownConflicts drops candidates that overlap bookings visible in
// the snapshot read now. This check is advisory: the store re-checks
// atomically at commit time, so a missing snapshot fails open.
func (e *Engine) filterKnownConflicts(ctx context.Context, req models.SchedulingRequest, candidates []models.CandidateSlot, now time.Time) []models.CandidateSlot {
	if len(candidates) == 0 {
		return candidates
	}
	windowEnd := req.PreferredDate.AddDate(0, 0, e.horizonDays+1)

	snapshots := make(map[string][]models.Booking)
	for _, c := range candidates {
		if _, done := snapshots[c.ProviderID]; done {
			continue
		}
		bookings, err := e.bookings.GetBookingsForProvider(ctx, c.ProviderID, now, windowEnd)
		if err != nil {
			e.logger.Warn("bookings snapshot unavailable, conflict check fails open",
				zap.String("provider", c.ProviderID), zap.Error(err))
			bookings = nil
		}
		snapshots[c.ProviderID] = bookings
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if HasConflict(c.ProviderID, c.Start, slotDurationMins, snapshots[c.ProviderID], "") {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// rankCandidates scores candidates concurrently per provider, drops weak
// ones, and returns the top slice sorted by descending score with earlier
// starts breaking ties.
func (e *Engine) rankCandidates(req models.SchedulingRequest, candidates []models.CandidateSlot, providers []models.Provider, demand []float64) []models.CandidateSlot {
	if len(candidates) == 0 {
		return []models.CandidateSlot{}
	}

	byProvider := make(map[string][]models.CandidateSlot)
	for _, c := range candidates {
		byProvider[c.ProviderID] = append(byProvider[c.ProviderID], c)
	}
	providersByID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		providersByID[p.ID] = p
	}

	resultsCh := make(chan models.CandidateSlot, len(candidates))
	var wg sync.WaitGroup
	for providerID, group := range byProvider {
		provider, ok := providersByID[providerID]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(provider models.Provider, group []models.CandidateSlot) {
			defer wg.Done()
			for _, c := range group {
				features := ExtractFeatures(c, req, demand, provider)
				score := scoring.Clamp01(e.scorer.Score(features))
				if score <= scoreThreshold {
					continue
				}
				c.Score = score
				c.Utilization = provider.LoadRatio()
				c.EstimatedWait = e.estimateWait(c, provider)
				resultsCh <- c
			}
		}(provider, group)
	}
	wg.Wait()
	close(resultsCh)

	scored := make([]models.CandidateSlot, 0, len(candidates))
	for c := range resultsCh {
		scored = append(scored, c)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Start.Before(scored[j].Start)
	})
	if len(scored) > maxPrimary {
		scored = scored[:maxPrimary]
	}
	return scored
}

func (e *Engine) estimateWait(c models.CandidateSlot, provider models.Provider) int {
	if e.waits == nil {
		return scoring.DefaultWaitMins
	}
	return scoring.ClampWait(e.waits.EstimateWait(c, provider))
}

func filterProvider(providers []models.Provider, providerID string) []models.Provider {
	var filtered []models.Provider
	for _, p := range providers {
		if p.ID == providerID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
