package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes would-be messages to the log instead of delivering them.
// Used in development and whenever no SMTP host is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail delivery skipped, logging instead")
	return nil
}
