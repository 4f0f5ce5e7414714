package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"

	"talazo-api/internal/pkg/errs"
)

type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to send email via resend")
	}
	return sent.Id, nil
}
