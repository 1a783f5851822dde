package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"futsal/config"
	"futsal/services/subscription"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeMaterializeSubscription = "subscription:materialize"

// MaterializePayload identifies the subscription whose bookings need
// (re)creating.
type MaterializePayload struct {
	SubscriptionID string `json:"subscriptionId"`
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitMaterializeWorker runs the async worker in background. It replays
// materialization tasks so a crash between payment and booking creation
// leaves no subscription without its bookings.
func InitMaterializeWorker(subSvc subscription.SubscriptionService) {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMaterializeSubscription, handleMaterializeTask(subSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[MaterializeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MaterializeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MaterializeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleMaterializeTask(subSvc subscription.SubscriptionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p MaterializePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MaterializeHandler] Invalid payload: %v", err)
			return err
		}

		created, err := subSvc.MaterializeBookings(ctx, p.SubscriptionID)
		if err != nil {
			log.Printf("[MaterializeHandler] Subscription %s: %v", p.SubscriptionID, err)
			return err
		}
		if created > 0 {
			log.Printf("[MaterializeHandler] Subscription %s: created %d missing bookings", p.SubscriptionID, created)
		}
		return nil
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
			log.Printf("[MaterializeWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
