// Package eventbus fans committed status changes out to in-process observers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/ports"
)

// ObserverFunc adapts a function to ports.StatusChangeObserver.
type ObserverFunc func(ctx context.Context, event order.StatusChanged)

func (f ObserverFunc) OnStatusChanged(ctx context.Context, event order.StatusChanged) {
	f(ctx, event)
}

// Bus delivers every event to each subscriber in subscription order. A
// panicking subscriber is logged and skipped; the rest still run.
type Bus struct {
	mu        sync.RWMutex
	observers []ports.StatusChangeObserver
	logger    *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{logger: logger.With("component", "event_bus")}
}

func (b *Bus) Subscribe(observer ports.StatusChangeObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
}

func (b *Bus) OnStatusChanged(ctx context.Context, event order.StatusChanged) {
	b.mu.RLock()
	observers := append([]ports.StatusChangeObserver(nil), b.observers...)
	b.mu.RUnlock()

	for _, observer := range observers {
		b.deliver(ctx, observer, event)
	}
}

func (b *Bus) deliver(ctx context.Context, observer ports.StatusChangeObserver, event order.StatusChanged) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "status change observer panicked",
				"orderId", event.OrderID.String(),
				"status", event.To.String(),
				"panic", r,
			)
		}
	}()
	observer.OnStatusChanged(ctx, event)
}
