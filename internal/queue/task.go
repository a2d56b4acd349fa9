package queue

type TaskType string

const (
	TaskTypeExceptionEvent TaskType = "exception_event"
	TaskTypeNotification   TaskType = "notification"
)
