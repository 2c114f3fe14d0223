package applications

import (
	"context"
	"fmt"

	"flux-backend/src/jobs"
	"flux-backend/src/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier queues a confirmation email for the worker.
type AsynqNotifier struct {
	client Enqueuer
	queue  string
}

func NewAsynqNotifier(client Enqueuer) *AsynqNotifier {
	return &AsynqNotifier{client: client, queue: jobs.QueueNotifications}
}

func (n *AsynqNotifier) ApplicationReceived(ctx context.Context, app *models.Application) error {
	task, err := jobs.NewApplicationReceivedTask(app.ID.Hex(), app.Name, app.Email)
	if err != nil {
		return err
	}
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.TaskID(jobs.ApplicationReceivedTaskID(app.ID.Hex())),
		asynq.Queue(n.queue),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", jobs.TypeApplicationReceived, err)
	}
	return nil
}
