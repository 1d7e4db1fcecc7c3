package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/totegamma/jobtrack/internal/domain"
)

// notifier invalidates the owner's dashboard and announces the change.
type notifier struct {
	events EventPublisher
	cache  DashboardCache
}

func (n notifier) changed(ctx context.Context, ownerID, eventType, resource string) {
	if n.cache != nil {
		n.cache.Invalidate(ctx, ownerID)
	}
	if n.events == nil {
		return
	}
	err := n.events.Publish(ctx, ownerID, domain.Event{
		Type:     eventType,
		Resource: resource,
		Date:     time.Now(),
	})
	if err != nil {
		slog.WarnContext(
			ctx, "failed to publish change event",
			slog.String("error", err.Error()),
			slog.String("type", eventType),
			slog.String("module", "usecase"),
		)
	}
}
