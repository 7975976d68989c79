package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medisched/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Hours is the length of every demand curve: one estimate per hour of day.
const Hours = 24

// DefaultDemandLevel is the flat per-hour estimate used when no history
// is available or the forecaster is running degraded.
const DefaultDemandLevel = 1.0

// DefaultLookback bounds how far back hourly aggregation reads.
const DefaultLookback = 90 * 24 * time.Hour

// DemandForecaster predicts per-hour appointment demand for a date.
type DemandForecaster interface {
	PredictDemand(ctx context.Context, date time.Time, appointmentType models.AppointmentType, department string) ([]float64, error)
}

// FlatCurve returns a constant demand curve at the given level.
func FlatCurve(level float64) []float64 {
	curve := make([]float64, Hours)
	for i := range curve {
		curve[i] = level
	}
	return curve
}

// FlatForecaster always returns a constant curve. It is the degraded-mode
// stand-in when no history-backed forecaster is available.
type FlatForecaster struct {
	Level float64
}

func (f FlatForecaster) PredictDemand(ctx context.Context, date time.Time, appointmentType models.AppointmentType, department string) ([]float64, error) {
	level := f.Level
	if level <= 0 {
		level = DefaultDemandLevel
	}
	return FlatCurve(level), nil
}

// VisitSource is the slice of the history repository the forecaster needs.
type VisitSource interface {
	GetVisitsByDepartment(ctx context.Context, department string, since time.Time) ([]models.HistoricalVisit, error)
}

// HistoryForecaster derives weekday-bucketed hourly demand from recorded
// visits. The refresh worker keeps per-department curves warm in Redis;
// cold recomputes are bounded by a rate limiter so a burst of cache misses
// cannot hammer the history store.
type HistoryForecaster struct {
	history  VisitSource
	cache    *redis.Client
	limiter  *rate.Limiter
	lookback time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewHistoryForecaster builds a history-backed forecaster. cache may be
// nil, in which case every prediction recomputes (still rate-limited).
func NewHistoryForecaster(history VisitSource, cache *redis.Client, logger *zap.Logger) *HistoryForecaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryForecaster{
		history:  history,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Every(10*time.Second), 6),
		lookback: DefaultLookback,
		logger:   logger,
		now:      time.Now,
	}
}

// WarmKey is the Redis key holding the warmed curve for a department and
// weekday. The refresh worker writes these keys.
func WarmKey(department string, weekday time.Weekday) string {
	return fmt.Sprintf("forecast:hourly:%s:%d", department, int(weekday))
}

func (f *HistoryForecaster) PredictDemand(ctx context.Context, date time.Time, appointmentType models.AppointmentType, department string) ([]float64, error) {
	weekday := date.Weekday()

	if f.cache != nil {
		if curve, ok := f.readWarm(ctx, department, weekday); ok {
			return curve, nil
		}
	}

	if !f.limiter.Allow() {
		f.logger.Warn("demand recompute rate-limited, serving flat curve",
			zap.String("department", department))
		return FlatCurve(DefaultDemandLevel), nil
	}

	since := f.now().Add(-f.lookback)
	visits, err := f.history.GetVisitsByDepartment(ctx, department, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit history for %s: %w", department, err)
	}
	curve := HourlyAverages(visits, weekday)

	if f.cache != nil {
		f.writeWarm(ctx, department, weekday, curve)
	}
	return curve, nil
}

func (f *HistoryForecaster) readWarm(ctx context.Context, department string, weekday time.Weekday) ([]float64, bool) {
	val, err := f.cache.Get(ctx, WarmKey(department, weekday)).Result()
	if err != nil {
		return nil, false
	}
	var curve []float64
	if err := json.Unmarshal([]byte(val), &curve); err != nil || len(curve) != Hours {
		return nil, false
	}
	return curve, true
}

func (f *HistoryForecaster) writeWarm(ctx context.Context, department string, weekday time.Weekday, curve []float64) {
	data, err := json.Marshal(curve)
	if err != nil {
		return
	}
	if err := f.cache.Set(ctx, WarmKey(department, weekday), data, time.Hour).Err(); err != nil {
		f.logger.Warn("failed to warm demand curve",
			zap.String("department", department), zap.Error(err))
	}
}

// HourlyAverages aggregates visits into an average per-hour visit count
// for the given weekday: total visits observed at each hour divided by
// the number of distinct dates seen. Visits on other weekdays are
// ignored. With no matching history it returns the default flat curve.
func HourlyAverages(visits []models.HistoricalVisit, weekday time.Weekday) []float64 {
	totals := make([]float64, Hours)
	dates := make(map[string]struct{})
	for _, v := range visits {
		if v.Date.Weekday() != weekday {
			continue
		}
		if v.Hour < 0 || v.Hour >= Hours {
			continue
		}
		totals[v.Hour]++
		dates[v.Date.Format("2006-01-02")] = struct{}{}
	}
	if len(dates) == 0 {
		return FlatCurve(DefaultDemandLevel)
	}
	curve := make([]float64, Hours)
	for h := range totals {
		curve[h] = totals[h] / float64(len(dates))
	}
	return curve
}
