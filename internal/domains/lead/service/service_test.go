package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/lead/model"
	"consulting-backend/internal/domains/lead/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/filestore"
)

type outboxSpy struct {
	sent []email.Message
}

func (o *outboxSpy) Deliver(msg email.Message) { o.sent = append(o.sent, msg) }

func newService(t *testing.T, notifyTo string) (*service.Service, *outboxSpy) {
	t.Helper()
	store, err := filestore.New[model.Lead](t.TempDir(), model.Table)
	require.NoError(t, err)
	spy := &outboxSpy{}
	return service.NewService(store, spy, notifyTo), spy
}

func TestSubmit_StoresLeadAndNotifies(t *testing.T) {
	svc, spy := newService(t, "firm@example.com")

	lead, err := svc.Submit(context.Background(), model.SubmitLeadRequest{
		Name:    " Jo ",
		Email:   "JO@Example.com",
		Subject: "Tax",
		Message: "Need help with filings",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Jo", lead.Name)
	assert.Equal(t, "jo@example.com", lead.Email)
	assert.False(t, lead.CreatedAt.IsZero())

	require.Len(t, spy.sent, 1)
	assert.Equal(t, "firm@example.com", spy.sent[0].To)
	assert.Equal(t, "jo@example.com", spy.sent[0].ReplyTo)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmit_Validation(t *testing.T) {
	svc, spy := newService(t, "firm@example.com")

	tests := []struct {
		name string
		req  model.SubmitLeadRequest
	}{
		{"missing name", model.SubmitLeadRequest{Email: "a@b.com", Subject: "s", Message: "m"}},
		{"bad email", model.SubmitLeadRequest{Name: "A", Email: "nope", Subject: "s", Message: "m"}},
		{"missing subject", model.SubmitLeadRequest{Name: "A", Email: "a@b.com", Message: "m"}},
		{"blank message", model.SubmitLeadRequest{Name: "A", Email: "a@b.com", Subject: "s", Message: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			assert.True(t, record.IsValidation(err), "got %v", err)
		})
	}
	assert.Empty(t, spy.sent)
}

func TestSubmit_NoNotifyAddress(t *testing.T) {
	svc, spy := newService(t, "")

	_, err := svc.Submit(context.Background(), model.SubmitLeadRequest{Name: "A", Email: "a@b.com", Subject: "s", Message: "m"})
	require.NoError(t, err)
	assert.Empty(t, spy.sent)
}
