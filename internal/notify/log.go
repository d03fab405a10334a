package notify

import (
	"context"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes verification codes to the log instead of sending them.
// Meant for local development only.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendCode(_ context.Context, identity, code string) error {
	n.logger.Info("verification code issued", "identity", identity, "code", code)
	return nil
}
