package cron

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// asynqReconcileDelay spaces the queued reconciliation run behind the
// inline materialization pass.
const asynqReconcileDelay = 30 * time.Second

// QueueClient enqueues materialization tasks. It satisfies
// subscription.Enqueuer.
type QueueClient struct {
	client *asynq.Client
}

// NewQueueClient connects a task producer to the queue Redis DB.
func NewQueueClient() *QueueClient {
	return &QueueClient{client: asynq.NewClient(queueRedisOpt())}
}

func (q *QueueClient) EnqueueMaterialize(subscriptionID string) error {
	b, err := json.Marshal(MaterializePayload{SubscriptionID: subscriptionID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeMaterializeSubscription, b)
	// A short delay gives the inline materialization pass time to finish
	// before the reconciliation run.
	_, err = q.client.Enqueue(task, asynq.ProcessIn(asynqReconcileDelay), asynq.MaxRetry(5))
	return err
}

// Close releases the underlying queue connection.
func (q *QueueClient) Close() error {
	return q.client.Close()
}
