package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medisched/config"
	providerRepo "medisched/database/repository/provider"
	"medisched/services/forecast"
	"medisched/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeForecastRefresh = "forecast:refresh"

// ForecastRefreshPayload names the department whose demand curves are
// recomputed by one task.
type ForecastRefreshPayload struct {
	Department string `json:"department"`
}

// NewForecastRefreshTask builds the asynq task for a department refresh.
func NewForecastRefreshTask(department string) (*asynq.Task, error) {
	payload, err := json.Marshal(ForecastRefreshPayload{Department: department})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeForecastRefresh, payload), nil
}

// InitForecastWorker runs the async worker in background. Tasks recompute
// per-department hourly demand curves from visit history and warm them in
// Redis, so the request path never pays aggregation cost.
func InitForecastWorker(visits forecast.VisitSource) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeForecastRefresh, handleForecastRefreshTask(visits))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ForecastWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ForecastWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ForecastWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleForecastRefreshTask(visits forecast.VisitSource) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ForecastRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ForecastHandler] Invalid payload: %v", err)
			return err
		}

		since := time.Now().Add(-forecast.DefaultLookback)
		history, err := visits.GetVisitsByDepartment(ctx, p.Department, since)
		if err != nil {
			log.Printf("[ForecastHandler] Failed to load visits for %s: %v", p.Department, err)
			return err
		}

		cache := utils.GetForecastCacheClient()
		ttl := 2 * time.Duration(config.AppConfig.ForecastRefreshMinutes) * time.Minute
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			curve := forecast.HourlyAverages(history, wd)
			data, err := json.Marshal(curve)
			if err != nil {
				return err
			}
			if err := cache.Set(ctx, forecast.WarmKey(p.Department, wd), data, ttl).Err(); err != nil {
				log.Printf("[ForecastHandler] Failed to warm %s/%s: %v", p.Department, wd, err)
				return err
			}
		}

		log.Printf("[ForecastHandler] Warmed demand curves for department %s (%d visits)", p.Department, len(history))
		return nil
	}
}

// StartForecastScheduler periodically enqueues a refresh task per known
// department. It blocks until ctx is cancelled; run it in a goroutine.
func StartForecastScheduler(ctx context.Context, providers providerRepo.ProviderRepository) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	interval := time.Duration(config.AppConfig.ForecastRefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	enqueue := func() {
		departments, err := providers.ListDepartments(ctx)
		if err != nil {
			log.Printf("[ForecastScheduler] Failed to list departments: %v", err)
			return
		}
		for _, dept := range departments {
			task, err := NewForecastRefreshTask(dept)
			if err != nil {
				continue
			}
			if _, err := client.EnqueueContext(ctx, task); err != nil {
				log.Printf("[ForecastScheduler] Failed to enqueue refresh for %s: %v", dept, err)
			}
		}
	}

	enqueue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ForecastWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
