package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	TypeApplicationReceived = "application:received"
	QueueNotifications      = "notifications"
)

type ApplicationReceivedPayload struct {
	ApplicationID string `json:"applicationId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

func (p *ApplicationReceivedPayload) Normalize() {
	p.ApplicationID = strings.TrimSpace(p.ApplicationID)
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

func NewApplicationReceivedTask(applicationID, name, email string) (*asynq.Task, error) {
	payload := ApplicationReceivedPayload{
		ApplicationID: applicationID,
		Name:          name,
		Email:         email,
	}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeApplicationReceived, b), nil
}

// ApplicationReceivedTaskID deduplicates confirmations for one record.
func ApplicationReceivedTaskID(applicationID string) string {
	return "application-received-" + strings.TrimSpace(applicationID)
}
