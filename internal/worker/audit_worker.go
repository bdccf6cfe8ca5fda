package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bidworks/internal/events"
)

// StartAuditWorker subscribes the audit log to auth events. Called once from
// main; the handlers only write structured log lines, so failures are
// impossible and the dispatcher's synchronous delivery is cheap.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	handler := func(_ context.Context, event events.Event) error {
		audit.Info(string(event.Type),
			zap.String("event_id", event.ID),
			zap.String("user_id", event.UserID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventLoginSucceeded,
		events.EventLoginDenied,
		events.EventTokenRefreshed,
		events.EventAccessDenied,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
