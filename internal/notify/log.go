package notify

import "go.uber.org/zap"

// Logger writes every notification to a zap logger.
// Errors are logged at warn level since they never stop the dashboard.
type Logger struct {
	log *zap.Logger
}

func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{log: l}
}

func (l *Logger) Notify(kind Kind, message string) {
	switch kind {
	case KindError:
		l.log.Warn("notify", zap.String("kind", string(kind)), zap.String("message", message))
	default:
		l.log.Info("notify", zap.String("kind", string(kind)), zap.String("message", message))
	}
}
