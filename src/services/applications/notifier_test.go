package applications_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"flux-backend/src/jobs"
	"flux-backend/src/models"
	"flux-backend/src/services/applications"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestAsynqNotifierEnqueuesConfirmation(t *testing.T) {
	enq := new(MockEnqueuer)
	app := &models.Application{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@x.com"}

	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		var p jobs.ApplicationReceivedPayload
		if task.Type() != jobs.TypeApplicationReceived || json.Unmarshal(task.Payload(), &p) != nil {
			return false
		}
		return p.ApplicationID == app.ID.Hex() && p.Email == "asha@x.com"
	}), mock.Anything).Return(&asynq.TaskInfo{}, nil)

	require.NoError(t, applications.NewAsynqNotifier(enq).ApplicationReceived(context.Background(), app))
	enq.AssertExpectations(t)

	opts := enq.Calls[0].Arguments.Get(2).([]asynq.Option)
	types := map[asynq.OptionType]interface{}{}
	for _, o := range opts {
		types[o.Type()] = o.Value()
	}
	assert.Equal(t, jobs.QueueNotifications, types[asynq.QueueOpt])
	assert.Equal(t, 3, types[asynq.MaxRetryOpt])
	assert.Equal(t, jobs.ApplicationReceivedTaskID(app.ID.Hex()), types[asynq.TaskIDOpt])
}

func TestAsynqNotifierWrapsEnqueueError(t *testing.T) {
	enq := new(MockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, asynq.ErrTaskIDConflict)

	err := applications.NewAsynqNotifier(enq).ApplicationReceived(context.Background(), &models.Application{ID: primitive.NewObjectID()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.ErrTaskIDConflict))
	assert.Contains(t, err.Error(), jobs.TypeApplicationReceived)
}
