package notify

import (
	"go.uber.org/zap"

	"github.com/muurk/esplink/internal/logging"
)

// LogNotifier reports notifications through the process logger instead of
// drawing them. It is used when output must stay machine-readable.
type LogNotifier struct{}

// Notify implements Notifier
func (LogNotifier) Notify(message string, severity Severity) {
	severity = severity.Normalize()
	field := zap.String("severity", string(severity))
	if severity == SeverityError {
		logging.Error(message, field)
		return
	}
	logging.Info(message, field)
}
