package job_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/newsletter/job"
	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, req model.SendRequest) (*model.Tally, error) {
	args := m.Called(ctx, req)
	tally, _ := args.Get(0).(*model.Tally)
	return tally, args.Error(1)
}

func task(t *testing.T, p shared.NewsletterPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeSendNewsletter, data)
}

func TestSendNewsletterHandler(t *testing.T) {
	svc := new(mockSender)
	svc.On("Send", mock.Anything, model.SendRequest{Subject: "S", Content: "C"}).
		Return(&model.Tally{Total: 2, Sent: 1, Failed: 1}, nil)

	err := job.NewSendNewsletterHandler(svc).ProcessTask(context.Background(), task(t, shared.NewsletterPayload{Subject: "S", Content: "C"}))
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestSendNewsletterHandler_InvalidIsNotRetried(t *testing.T) {
	svc := new(mockSender)
	svc.On("Send", mock.Anything, mock.Anything).Return(nil, record.Invalid(assert.AnError))

	err := job.NewSendNewsletterHandler(svc).ProcessTask(context.Background(), task(t, shared.NewsletterPayload{}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSendNewsletterHandler_BadPayload(t *testing.T) {
	err := job.NewSendNewsletterHandler(new(mockSender)).ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendNewsletter, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
