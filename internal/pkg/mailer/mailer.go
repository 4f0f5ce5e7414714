package mailer

import "context"

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer abstracts the transactional-email provider so tests and alternative
// providers can swap in (same seam the SMS providers use in our other
// services).
type Mailer interface {
	// Send delivers one message and returns the provider's message id.
	Send(ctx context.Context, msg Message) (string, error)
}
