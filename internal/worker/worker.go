package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"crewline.app/dispatch/common/logger"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/notify"
	"crewline.app/dispatch/internal/queue"
	"crewline.app/dispatch/internal/service"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the exception stream: exception events go through the policy
// engine, notification tasks go out through the sender.
type Worker struct {
	consumer   *queue.RedisConsumer
	exceptions service.ExceptionService
	sender     notify.Sender
	cfg        Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer *queue.RedisConsumer, exceptions service.ExceptionService, sender notify.Sender, cfg Config) *Worker {
	return &Worker{
		consumer:   consumer,
		exceptions: exceptions,
		sender:     sender,
		cfg:        cfg,
		stopCh:     make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"task_type", msg.TaskType)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"task_type", msg.TaskType)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// Exported so it can be reused by the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.process_message",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer sc.End()
	ctx = sc.Context()

	taskType := string(msg.TaskType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msg.ID,
		JobID:     msg.JobID,
		EventType: &taskType,
		Component: "dispatch.worker",
	})

	slog.InfoContext(ctx, "processing message", "attempt", msg.Attempt)

	var err error
	switch msg.TaskType {
	case queue.TaskTypeExceptionEvent:
		err = w.processException(ctx, msg)
	case queue.TaskTypeNotification:
		err = w.processNotification(ctx, msg)
	default:
		// ParseMessage already rejects unknown task types; ack defensively.
		slog.WarnContext(ctx, "skipping message with unhandled task type")
	}
	if err != nil {
		sc.RecordError(err)
		return err
	}

	if ackErr := w.consumer.Ack(ctx, msg); ackErr != nil {
		// The reclaimer will pick it up; processing is idempotent enough to
		// tolerate a redelivery.
		slog.WarnContext(ctx, "failed to ACK message", "error", ackErr)
	}

	return nil
}

func (w *Worker) processException(ctx context.Context, msg queue.Message) error {
	if msg.JobID == nil {
		return fmt.Errorf("exception message without job_id")
	}

	var exc domain.ExceptionContext
	if msg.Payload != "" {
		if err := json.Unmarshal([]byte(msg.Payload), &exc); err != nil {
			return fmt.Errorf("decoding exception context: %w", err)
		}
	}

	decision, err := w.exceptions.Handle(ctx, *msg.JobID, domain.DecisionType(msg.DecisionType), exc)
	if err != nil {
		return fmt.Errorf("handling exception: %w", err)
	}

	slog.InfoContext(ctx, "exception resolved",
		"resolution", decision.Resolution,
		"confidence", decision.Confidence)
	return nil
}

func (w *Worker) processNotification(ctx context.Context, msg queue.Message) error {
	var n domain.Notification
	if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
		return fmt.Errorf("decoding notification: %w", err)
	}

	if err := w.sender.Send(ctx, n); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}

	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"task_type", msg.TaskType,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"task_type", msg.TaskType,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
