package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/logger"
)

// DefaultChannelPrefix namespaces the event channels.
const DefaultChannelPrefix = "planner:events:"

const dialTimeout = 5 * time.Second

var (
	// ErrPublishFailed is returned when Redis rejects or cannot receive a message.
	ErrPublishFailed = errors.New("redis: publish failed")

	// ErrSerialization is returned when an event cannot be encoded.
	ErrSerialization = errors.New("redis: serialization failed")
)

// Publisher is the part of *redis.Client the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// EventPublisher is an events.EventHandler that publishes every plan event
// as JSON.
type EventPublisher struct {
	client Publisher
	prefix string
	logger *slog.Logger
	closer io.Closer
}

var _ events.EventHandler = (*EventPublisher)(nil)

// NewEventPublisher publishes through client. An empty prefix selects
// DefaultChannelPrefix. If logger is nil, a default logger will be used.
func NewEventPublisher(client Publisher, prefix string, logger *slog.Logger) *EventPublisher {
	if client == nil {
		panic("redis client cannot be nil") // ALLOW-PANIC
	}
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "redis_event_publisher"),
	}
}

// Dial connects to the Redis server at url (redis://[user:pass@]host:port/db),
// checks it with PING and returns a publisher that owns the connection.
func Dial(ctx context.Context, url, prefix string, logger *slog.Logger) (*EventPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	p := NewEventPublisher(client, prefix, logger)
	p.closer = client
	return p, nil
}

// Channel returns the channel that receives events of type t.
func (p *EventPublisher) Channel(t events.EventType) string {
	return p.prefix + string(t)
}

// HandleEvent implements events.EventHandler.
func (p *EventPublisher) HandleEvent(ctx context.Context, event *events.PlanEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	channel := p.Channel(event.Type)
	receivers, err := p.client.Publish(ctx, channel, data).Result()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, channel, err)
	}

	logger.FromContextOrDefault(ctx, p.logger).Debug("plan event published",
		slog.String("channel", channel),
		slog.String("event_id", event.ID.String()),
		slog.Int64("receivers", receivers))
	return nil
}

// Close releases the connection opened by Dial. It is a no-op for publishers
// built with NewEventPublisher.
func (p *EventPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
