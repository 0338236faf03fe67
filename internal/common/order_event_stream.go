package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/entities"

	"github.com/redis/go-redis/v9"
)

// OrderEventStream carries committed order events over a Redis Stream
type OrderEventStream struct {
	client *redis.Client
	stream string
}

// NewOrderEventStream creates a stream publisher/consumer for the given stream key
func NewOrderEventStream(client *redis.Client, stream string) *OrderEventStream {
	return &OrderEventStream{
		client: client,
		stream: stream,
	}
}

// Stream returns the stream key
func (s *OrderEventStream) Stream() string {
	return s.stream
}

// PublishOrderCreated appends the event to the stream
func (s *OrderEventStream) PublishOrderCreated(ctx context.Context, event entities.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	// XADD stream * data <json>
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// Dequeue reads the next new event for the consumer group.
// Returns (nil, "", nil) when the block time passes without a message.
func (s *OrderEventStream) Dequeue(ctx context.Context, groupName, consumerName string, blockTime time.Duration) (*entities.OrderCreatedEvent, string, error) {
	// XREADGROUP GROUP group consumer BLOCK ms COUNT 1 STREAMS stream >
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{s.stream, ">"},
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	event, err := DecodeOrderEvent(msg.Values)
	if err != nil {
		// Return the id so the caller can ack a poison message
		return nil, msg.ID, err
	}
	return event, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *OrderEventStream) Ack(ctx context.Context, groupName, messageID string) error {
	return s.client.XAck(ctx, s.stream, groupName, messageID).Err()
}

// CreateConsumerGroup creates the consumer group if it doesn't exist
func (s *OrderEventStream) CreateConsumerGroup(ctx context.Context, groupName string) error {
	// XGROUP CREATE stream group 0 MKSTREAM
	err := s.client.XGroupCreateMkStream(ctx, s.stream, groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

// PendingCount returns the number of delivered but unacknowledged messages
func (s *OrderEventStream) PendingCount(ctx context.Context, groupName string) (int64, error) {
	pending, err := s.client.XPending(ctx, s.stream, groupName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending count: %w", err)
	}
	return pending.Count, nil
}

// Trim keeps only the most recent maxLen messages
func (s *OrderEventStream) Trim(ctx context.Context, maxLen int64) error {
	return s.client.XTrimMaxLen(ctx, s.stream, maxLen).Err()
}

// ClaimStale takes over messages left pending by dead consumers for at least minIdleTime
func (s *OrderEventStream) ClaimStale(ctx context.Context, groupName, consumerName string, minIdleTime time.Duration) ([]*entities.OrderCreatedEvent, []string, error) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: s.stream,
		Group:  groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pending messages: %w", err)
	}

	var staleIDs []string
	for _, p := range pending {
		if p.Idle >= minIdleTime {
			staleIDs = append(staleIDs, p.ID)
		}
	}
	if len(staleIDs) == 0 {
		return nil, nil, nil
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   s.stream,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdleTime,
		Messages: staleIDs,
	}).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	var events []*entities.OrderCreatedEvent
	var messageIDs []string
	for _, msg := range messages {
		event, err := DecodeOrderEvent(msg.Values)
		if err != nil {
			logging.Warn("Skipping unreadable claimed order event", "message_id", msg.ID, "error", err)
			continue
		}
		events = append(events, event)
		messageIDs = append(messageIDs, msg.ID)
	}

	return events, messageIDs, nil
}

// DecodeOrderEvent parses the data field of a stream message
func DecodeOrderEvent(values map[string]interface{}) (*entities.OrderCreatedEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid message format: data field missing")
	}

	var event entities.OrderCreatedEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	return &event, nil
}
