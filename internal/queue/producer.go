package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"crewline.app/dispatch/internal/domain"
)

// ExceptionMessage is an exception event enqueued for asynchronous
// resolution by the background worker.
type ExceptionMessage struct {
	JobID        int64
	DecisionType domain.DecisionType
	Context      domain.ExceptionContext
	TraceID      *string
	Attempt      int
}

// NotificationMessage is an outbound notification task.
type NotificationMessage struct {
	JobID        int64
	Notification domain.Notification
	TraceID      *string
	Attempt      int
}

type Producer interface {
	EnqueueException(ctx context.Context, msg ExceptionMessage) error
	EnqueueNotification(ctx context.Context, msg NotificationMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) EnqueueException(ctx context.Context, msg ExceptionMessage) error {
	attempt := msg.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	payload, err := json.Marshal(msg.Context)
	if err != nil {
		return fmt.Errorf("marshal exception context: %w", err)
	}

	fields := map[string]any{
		"task_type":     string(TaskTypeExceptionEvent),
		"job_id":        msg.JobID,
		"decision_type": string(msg.DecisionType),
		"payload":       string(payload),
		"attempt":       attempt,
	}

	if msg.TraceID != nil && *msg.TraceID != "" {
		fields["trace_id"] = *msg.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue exception: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued exception event", "job_id", msg.JobID, "decision_type", msg.DecisionType, "attempt", attempt)
	return nil
}

func (p *redisProducer) EnqueueNotification(ctx context.Context, msg NotificationMessage) error {
	attempt := msg.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	payload, err := json.Marshal(msg.Notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	fields := map[string]any{
		"task_type": string(TaskTypeNotification),
		"job_id":    msg.JobID,
		"payload":   string(payload),
		"attempt":   attempt,
	}

	if msg.TraceID != nil && *msg.TraceID != "" {
		fields["trace_id"] = *msg.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued notification", "job_id", msg.JobID, "channel", msg.Notification.Channel, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
