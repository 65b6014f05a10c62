package appointment

import (
	"context"
	"time"
)

type EventKind string

const (
	EventCreated       EventKind = "created"
	EventStatusChanged EventKind = "status_changed"
	EventRescheduled   EventKind = "rescheduled"
)

// LifecycleEvent carries a snapshot of the appointment after the change.
type LifecycleEvent struct {
	ID             string
	Kind           EventKind
	Appointment    Appointment
	PreviousStatus Status
	PreviousStart  *time.Time
	OccurredAt     time.Time
}

// Notifier queues lifecycle events for delivery. Implementations must not block
// the booking path and must not report delivery failures back to the caller.
// ctx is only used to carry trace context; cancelling it does not drop the event.
type Notifier interface {
	Dispatch(ctx context.Context, ev LifecycleEvent)
}
