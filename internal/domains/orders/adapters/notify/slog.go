package notify

import (
	"context"
	"log/slog"

	"github.com/retailcore/backoffice/internal/domains/orders/ports"
)

var _ ports.Notifier = (*SlogNotifier)(nil)

// SlogNotifier is the default notification sink: every transition outcome is
// written to the structured log so the surrounding UI (or an operator) can
// follow what happened.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(ctx context.Context, notification ports.Notification) {
	if n == nil || n.logger == nil {
		return
	}
	level := slog.LevelInfo
	if notification.Code != ports.CodeTransitionApplied {
		level = slog.LevelWarn
	}
	n.logger.LogAttrs(ctx, level, "order transition notification",
		slog.String("order.id", notification.OrderID),
		slog.String("code", notification.Code),
		slog.String("message", notification.Message),
		slog.Bool("sale.created", notification.SaleCreated),
	)
}
