package notification

import (
	"context"
	"log/slog"
)

// Mailer delivers email notifications. Transport details live outside the
// panel; the default implementation only records the attempt.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes outgoing mail to the log instead of delivering it.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the email instead of sending it.
func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("email notification",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
