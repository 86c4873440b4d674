package email

import "context"

// Sender delivers transactional mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NopSender drops all mail. Used when SMTP is not configured.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
