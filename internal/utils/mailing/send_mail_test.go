package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_NewMessage(t *testing.T) {
	m := NewMailer(MailConfig{
		SMTPHost:   "smtp.example.com",
		SMTPPort:   "587",
		SMTPSender: "FeastForBeasts",
		SMTPEmail:  "noreply@example.com",
	})

	msg := m.NewMessage("donor@example.com", "Your donation was delivered", "<p>Thanks</p>")

	assert.Equal(t, []string{"donor@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your donation was delivered"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("From"), 1)
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@example.com")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>Thanks</p>")
}

func TestMailer_SendRequiresConfig(t *testing.T) {
	err := NewMailer(MailConfig{}).Send("donor@example.com", "subject", "body")
	assert.ErrorIs(t, err, ErrMailNotConfigured)

	err = NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "not-a-port", SMTPEmail: "a@b.c"}).
		Send("donor@example.com", "subject", "body")
	assert.Error(t, err)
}
