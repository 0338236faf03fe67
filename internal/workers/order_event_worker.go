package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/entities"
)

const (
	dequeueBlockTime   = 5 * time.Second
	dequeueBackoff     = time.Second
	staleClaimInterval = 30 * time.Second
	staleMinIdle       = time.Minute
	streamMaxLen       = 10000
)

// OrderEventSource is the consumer side of the order event stream.
// common.OrderEventStream satisfies it.
type OrderEventSource interface {
	CreateConsumerGroup(ctx context.Context, groupName string) error
	Dequeue(ctx context.Context, groupName, consumerName string, blockTime time.Duration) (*entities.OrderCreatedEvent, string, error)
	Ack(ctx context.Context, groupName, messageID string) error
	ClaimStale(ctx context.Context, groupName, consumerName string, minIdleTime time.Duration) ([]*entities.OrderCreatedEvent, []string, error)
	PendingCount(ctx context.Context, groupName string) (int64, error)
	Trim(ctx context.Context, maxLen int64) error
}

// OrderEventHandler processes one committed order
type OrderEventHandler func(ctx context.Context, event *entities.OrderCreatedEvent) error

// OrderEventWorker consumes order-created events from a Redis stream consumer group
type OrderEventWorker struct {
	workerID string
	group    string
	source   OrderEventSource
	handle   OrderEventHandler
	metrics  *metrics.MetricsRegistry
}

// NewOrderEventWorker creates a new order event worker
func NewOrderEventWorker(workerID, group string, source OrderEventSource, handle OrderEventHandler, m *metrics.MetricsRegistry) *OrderEventWorker {
	return &OrderEventWorker{
		workerID: workerID,
		group:    group,
		source:   source,
		handle:   handle,
		metrics:  m,
	}
}

// Start runs numWorkers consumers plus a stale message reclaimer until ctx is cancelled
func (w *OrderEventWorker) Start(ctx context.Context, numWorkers int) error {
	if err := w.source.CreateConsumerGroup(ctx, w.group); err != nil {
		return fmt.Errorf("failed to create consumer group %s: %w", w.group, err)
	}
	logging.Info("Order event workers starting", "worker_id", w.workerID, "consumers", numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		consumer := fmt.Sprintf("%s-%d", w.workerID, i)
		go func() {
			defer wg.Done()
			w.consume(ctx, consumer)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.maintain(ctx, w.workerID+"-reclaimer", staleClaimInterval)
	}()

	wg.Wait()
	logging.Info("Order event workers stopped", "worker_id", w.workerID)
	return nil
}

func (w *OrderEventWorker) consume(ctx context.Context, consumer string) {
	processed, failed := 0, 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("Order event consumer shutting down", "consumer", consumer, "processed", processed, "failed", failed)
			return
		default:
		}

		event, messageID, err := w.source.Dequeue(ctx, w.group, consumer, dequeueBlockTime)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			if messageID != "" {
				// unreadable payload; ack so it is not redelivered forever
				logging.Warn("Dropping unreadable order event", "consumer", consumer, "message_id", messageID, "error", err)
				w.record("invalid")
				w.ack(ctx, consumer, messageID)
				continue
			}
			logging.Error("Failed to read order events", "consumer", consumer, "error", err)
			sleepCtx(ctx, dequeueBackoff)
			continue
		}
		if event == nil {
			continue
		}

		if w.process(ctx, consumer, event, messageID) {
			processed++
		} else {
			failed++
		}
	}
}

// process handles one event and acks it. Failed events stay pending so the reclaimer retries them.
func (w *OrderEventWorker) process(ctx context.Context, consumer string, event *entities.OrderCreatedEvent, messageID string) bool {
	if err := w.handle(ctx, event); err != nil {
		logging.Error("Order event handler failed",
			"consumer", consumer,
			"message_id", messageID,
			"order_id", event.OrderID,
			"error", err,
		)
		w.record("error")
		return false
	}
	w.record("ok")
	w.ack(ctx, consumer, messageID)
	return true
}

func (w *OrderEventWorker) ack(ctx context.Context, consumer, messageID string) {
	if err := w.source.Ack(ctx, w.group, messageID); err != nil {
		logging.Error("Failed to ack order event", "consumer", consumer, "message_id", messageID, "error", err)
	}
}

// maintain periodically reclaims stale messages and caps the stream length
func (w *OrderEventWorker) maintain(ctx context.Context, consumer string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.reclaim(ctx, consumer)
		}
	}
}

func (w *OrderEventWorker) reclaim(ctx context.Context, consumer string) {
	events, ids, err := w.source.ClaimStale(ctx, w.group, consumer, staleMinIdle)
	if err != nil {
		logging.Error("Failed to claim stale order events", "error", err)
	}
	for i, event := range events {
		w.process(ctx, consumer, event, ids[i])
	}

	pending, err := w.source.PendingCount(ctx, w.group)
	if err != nil {
		logging.Warn("Failed to read pending order events", "error", err)
	} else if pending > 0 {
		logging.Info("Order events pending", "group", w.group, "pending", pending, "reclaimed", len(events))
	}

	if err := w.source.Trim(ctx, streamMaxLen); err != nil {
		logging.Warn("Failed to trim order event stream", "error", err)
	}
}

func (w *OrderEventWorker) record(outcome string) {
	if w.metrics != nil {
		w.metrics.OrderEventsTotal.WithLabelValues("consume", outcome).Inc()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
