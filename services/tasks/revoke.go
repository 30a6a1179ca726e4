// File: services/tasks/revoke.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"carepro/config"

	"github.com/hibiken/asynq"
)

const TypeTokenRevoke = "auth:revoke"

// RevokePayload carries the access token to invalidate upstream.
type RevokePayload struct {
	AccessToken string `json:"accessToken"`
}

// AsynqRevoker enqueues revocation tasks onto the background queue. Logout
// never waits on the upstream call; the worker retries it out of band.
type AsynqRevoker struct {
	client *asynq.Client
}

// NewAsynqRevoker creates a revoker backed by the configured Redis queue.
func NewAsynqRevoker() *AsynqRevoker {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqRevoker{client: client}
}

// EnqueueRevoke schedules a best-effort upstream token invalidation.
func (r *AsynqRevoker) EnqueueRevoke(ctx context.Context, accessToken string) error {
	payload, err := json.Marshal(RevokePayload{AccessToken: accessToken})
	if err != nil {
		return fmt.Errorf("failed to marshal revoke payload: %w", err)
	}
	task := asynq.NewTask(TypeTokenRevoke, payload, asynq.MaxRetry(3))
	if _, err := r.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue token revocation: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (r *AsynqRevoker) Close() error {
	return r.client.Close()
}
