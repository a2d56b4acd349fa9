// Package notify executes the notification side effects that decisions
// declare. The engine only declares; this package is the messaging
// collaborator that actually delivers.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crewline.app/dispatch/internal/domain"
)

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// LogSender writes notifications to the structured log instead of a real
// channel. Production deployments swap in an email/SMS gateway behind the
// same interface.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, n domain.Notification) error {
	slog.InfoContext(ctx, "notification delivered",
		"channel", n.Channel,
		"recipient", n.Recipient,
		"subject", n.Subject,
		"body_preview", preview(n.Body))
	return nil
}

func preview(body string) string {
	const max = 120
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}

// ScheduleConfirmation builds the client-facing confirmation for a booked
// slot.
func ScheduleConfirmation(clientName, jobType string, slot domain.ScheduleSlot) domain.Notification {
	return domain.Notification{
		Channel:   domain.ChannelEmail,
		Recipient: "client",
		Subject:   fmt.Sprintf("Your %s appointment is confirmed", jobType),
		Body: fmt.Sprintf("Hi %s, your %s appointment is scheduled for %s between %s and %s.",
			clientName, jobType,
			slot.Start.Format("Monday, January 2"),
			slot.Start.Format("15:04"),
			slot.End.Format("15:04")),
	}
}

// WorkerAssignment builds the worker-facing dispatch message.
func WorkerAssignment(workerName, jobType, location string, start time.Time) domain.Notification {
	return domain.Notification{
		Channel:   domain.ChannelSMS,
		Recipient: "worker",
		Body: fmt.Sprintf("%s: new %s job at %s, starting %s.",
			workerName, jobType, location, start.Format("Mon Jan 2 15:04")),
	}
}

// RescheduleNotice tells the client their appointment moved.
func RescheduleNotice(clientName string, newSlot domain.ScheduleSlot, reason string) domain.Notification {
	return domain.Notification{
		Channel:   domain.ChannelEmail,
		Recipient: "client",
		Subject:   "Your appointment has been rescheduled",
		Body: fmt.Sprintf("Hi %s, due to %s your appointment was moved to %s between %s and %s.",
			clientName, reason,
			newSlot.Start.Format("Monday, January 2"),
			newSlot.Start.Format("15:04"),
			newSlot.End.Format("15:04")),
	}
}
