package mailer

import (
	"context"
	"log/slog"
)

// Log is a development mailer: it writes the reset token to the log instead
// of sending an email.
type Log struct {
	log     *slog.Logger
	linkFmt string
}

// NewLog builds the mailer; linkBase like "https://app.example.com/reset?token=" is prepended to tokens.
func NewLog(log *slog.Logger, linkBase string) *Log {
	if log == nil {
		log = slog.Default()
	}
	return &Log{log: log, linkFmt: linkBase}
}

func (m *Log) SendPasswordReset(ctx context.Context, to, token string) error {
	m.log.InfoContext(ctx, "password reset requested",
		slog.String("to", to),
		slog.String("link", m.linkFmt+token),
	)
	return nil
}
