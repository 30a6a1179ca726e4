package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"carepro/config"
	"carepro/services/tasks"
	"carepro/services/upstream"

	"github.com/hibiken/asynq"
)

// InitRevokeWorker runs the async token-revocation worker in background.
func InitRevokeWorker(client upstream.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTokenRevoke, handleRevokeTask(client))

	// Start async worker with retry logic
	go func() {
		log.Println("[RevokeWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RevokeWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RevokeWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleRevokeTask(client upstream.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.RevokePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RevokeHandler] invalid payload: %v", err)
			return err
		}

		// The session is already gone locally; this only tells the upstream
		// to stop honoring the token.
		if err := client.Logout(ctx, p.AccessToken); err != nil {
			log.Printf("[RevokeHandler] upstream logout failed: %v", err)
			return err
		}
		return nil
	}
}
