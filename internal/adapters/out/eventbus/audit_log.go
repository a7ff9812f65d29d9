package eventbus

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/order"
)

// AuditLogObserver writes one structured log line per ledger entry.
type AuditLogObserver struct {
	logger *slog.Logger
}

func NewAuditLogObserver(logger *slog.Logger) *AuditLogObserver {
	return &AuditLogObserver{logger: logger.With("component", "order_audit")}
}

func (o *AuditLogObserver) OnStatusChanged(ctx context.Context, event order.StatusChanged) {
	from := ""
	if event.From != order.Unknown {
		from = event.From.String()
	}
	o.logger.InfoContext(ctx, "order status changed",
		"orderId", event.OrderID.String(),
		"ownerId", event.OwnerID.String(),
		"entryId", event.EntryID.String(),
		"actorId", event.ActorID.String(),
		"from", from,
		"to", event.To.String(),
		"version", event.Version,
		"occurredAt", event.OccurredAt,
	)
}
