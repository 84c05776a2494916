package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
)

// LogHandler writes every card event to the audit log with masked card data.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler returns a LogHandler writing to logger, or slog.Default when nil.
func NewLogHandler(l *slog.Logger) *LogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LogHandler{logger: l.With(slog.String("component", "card_audit"))}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *CardEvent) error {
	logger.FromContextOrDefault(ctx, h.logger).Info("card event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Int64("card_id", event.CardID),
		slog.String("mobile_number", redact.MobileNumber(event.MobileNumber)),
		slog.String("card_number", redact.CardNumber(event.CardNumber)),
		slog.String("actor", event.Actor))
	return nil
}
