package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(to, subject, html string) error {
	args := m.Called(to, subject, html)
	return args.Error(0)
}

func TestNewApplicationReceivedTask(t *testing.T) {
	task, err := NewApplicationReceivedTask(" 64ab ", " Asha ", " Asha@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, TypeApplicationReceived, task.Type())

	var p ApplicationReceivedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, ApplicationReceivedPayload{ApplicationID: "64ab", Name: "Asha", Email: "asha@example.com"}, p)
	assert.Equal(t, "application-received-64ab", ApplicationReceivedTaskID(" 64ab"))
}

func TestHandleApplicationReceivedSendsMail(t *testing.T) {
	sender := new(MockMailSender)
	sender.On("Send", "asha@example.com", receivedEmailSubject, mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "Hi Asha,") && strings.Contains(html, "64ab")
	})).Return(nil)

	task, err := NewApplicationReceivedTask("64ab", "Asha", "asha@example.com")
	require.NoError(t, err)

	err = HandleApplicationReceived(sender, zap.NewNop())(context.Background(), task)
	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestHandleApplicationReceivedPropagatesSendError(t *testing.T) {
	sender := new(MockMailSender)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	task, err := NewApplicationReceivedTask("64ab", "Asha", "asha@example.com")
	require.NoError(t, err)

	err = HandleApplicationReceived(sender, zap.NewNop())(context.Background(), task)
	assert.EqualError(t, err, "smtp down")
}

func TestHandleApplicationReceivedBadPayloadSkipsRetry(t *testing.T) {
	sender := new(MockMailSender)
	task := asynq.NewTask(TypeApplicationReceived, []byte("{not json"))

	err := HandleApplicationReceived(sender, zap.NewNop())(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleApplicationReceivedWithoutEmail(t *testing.T) {
	sender := new(MockMailSender)
	task, err := NewApplicationReceivedTask("64ab", "Asha", "")
	require.NoError(t, err)

	assert.NoError(t, HandleApplicationReceived(sender, zap.NewNop())(context.Background(), task))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderReceivedEmailEscapesName(t *testing.T) {
	html, err := RenderReceivedEmailHTML(ReceivedEmailData{Name: "<b>x</b>", ApplicationID: "1"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
}

func TestNewSMTPSenderRequiresEverySetting(t *testing.T) {
	_, err := NewSMTPSender("", 0, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM")

	s, err := NewSMTPSender("smtp.example.com", 587, "u", "p", "flux@example.com")
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", s.Host)
}

func TestRegisterHandlers(t *testing.T) {
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, new(MockMailSender), zap.NewNop())

	h, pattern := mux.Handler(asynq.NewTask(TypeApplicationReceived, nil))
	assert.Equal(t, TypeApplicationReceived, pattern)
	assert.NotNil(t, h)
}
