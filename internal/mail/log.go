package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of sending them. Used for local development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	s.logger.Info("mock email sent",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.Strings("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	return nil
}
