package notifications

import (
	"context"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	"github.com/angelmondragon/labelworks-backend/pkg/logger"
)

// Mailer delivers a single lifecycle notification to a recipient.
type Mailer interface {
	Send(ctx context.Context, kind enums.NotificationKind, recipient string, payload map[string]any) error
}

// logMailer writes each send as a structured log line. It stands in for a
// real email provider in environments without outbound mail.
type logMailer struct {
	log  *logger.Logger
	from string
}

// NewLogMailer builds a mailer that records sends through the logger.
func NewLogMailer(log *logger.Logger, from string) Mailer {
	return &logMailer{log: log, from: from}
}

func (m *logMailer) Send(ctx context.Context, kind enums.NotificationKind, recipient string, payload map[string]any) error {
	ctx = m.log.WithFields(ctx, map[string]any{
		"kind":      kind.String(),
		"from":      m.from,
		"recipient": recipient,
		"payload":   payload,
	})
	m.log.Info(ctx, "notification dispatched")
	return nil
}
