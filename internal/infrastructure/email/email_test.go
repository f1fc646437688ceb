package email

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_BuildsMultipartMessage(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotBody string
	)
	s := &smtpSender{
		cfg: SMTPConfig{Host: "smtp.example.com", Port: 2525, From: "noreply@example.com", FromName: "Firm"},
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotBody = addr, to, string(msg)
			assert.Nil(t, a, "no auth without a username")
			return nil
		},
	}

	err := s.Send(context.Background(), Message{
		To:      "jo@example.com",
		Subject: "Héllo",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
		ReplyTo: "lead@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"jo@example.com"}, gotTo)
	assert.Contains(t, gotBody, `From: "Firm" <noreply@example.com>`)
	assert.Contains(t, gotBody, "Reply-To: lead@example.com")
	assert.Contains(t, gotBody, "multipart/alternative")
	assert.Contains(t, gotBody, "text/plain; charset=UTF-8")
	assert.Contains(t, gotBody, "text/html; charset=UTF-8")
	assert.Contains(t, gotBody, "=?utf-8?q?H=C3=A9llo?=")
	assert.True(t, strings.Index(gotBody, "plain body") < strings.Index(gotBody, "html body"))
}

func TestSMTPSender_RejectsBadRecipient(t *testing.T) {
	s := &smtpSender{sendMail: func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not send")
		return nil
	}}
	assert.Error(t, s.Send(context.Background(), Message{To: "not an address"}))
}

func TestTemplates_EscapeUserInput(t *testing.T) {
	msg := LeadNotificationMessage("firm@example.com", LeadNotification{
		Name:    "<script>alert(1)</script>",
		Email:   "jo@example.com",
		Subject: "Tax",
		Message: "Need help",
	})

	assert.Equal(t, "jo@example.com", msg.ReplyTo)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.Text, "<script>alert(1)</script>")
}

func TestNewsletterMessage_PrefersSuppliedHTML(t *testing.T) {
	custom := NewsletterMessage("a@b.com", "Issue 1", "text", "<h1>custom</h1>")
	assert.Equal(t, "<h1>custom</h1>", custom.HTML)

	wrapped := NewsletterMessage("a@b.com", "Issue 1", "first\n\nsecond", "")
	assert.Contains(t, wrapped.HTML, "<p style=\"margin:0 0 16px;\">first</p>")
	assert.Contains(t, wrapped.HTML, "second")
}

type recordingSender struct {
	sent chan Message
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent <- msg
	return nil
}

type failingQueue struct{}

func (failingQueue) EnqueueEmail(context.Context, Message) error { return assert.AnError }

func TestQueueOutbox_FallsBackToDirectSend(t *testing.T) {
	rec := &recordingSender{sent: make(chan Message, 1)}
	out := NewQueueOutbox(failingQueue{}, NewGoroutineOutbox(rec, time.Second))

	out.Deliver(Message{To: "a@b.com", Subject: "x"})

	select {
	case msg := <-rec.sent:
		assert.Equal(t, "a@b.com", msg.To)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}
