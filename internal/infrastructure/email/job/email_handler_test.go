package job_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/email/job"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func TestSendEmailHandler(t *testing.T) {
	msg := email.Message{To: "jo@example.com", Subject: "Hi", Text: "Hello"}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, msg).Return(nil).Once()

	h := job.NewSendEmailHandler(sender)
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask("email:send", payload)))
	sender.AssertExpectations(t)
}

func TestSendEmailHandler_RetriesSendFailures(t *testing.T) {
	payload, _ := json.Marshal(email.Message{To: "jo@example.com"})

	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := job.NewSendEmailHandler(sender).ProcessTask(context.Background(), asynq.NewTask("email:send", payload))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestSendEmailHandler_SkipsRetryOnBadPayload(t *testing.T) {
	err := job.NewSendEmailHandler(new(mockSender)).ProcessTask(context.Background(), asynq.NewTask("email:send", []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
