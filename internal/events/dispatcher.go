package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

const (
	DefaultQueueSize = 100
	deliveryTimeout  = 10 * time.Second
)

var ErrClosed = errors.New("event dispatcher closed")

// Sink delivers one lifecycle event. Errors are logged by the dispatcher and
// never reach the booking path.
type Sink interface {
	Notify(ctx context.Context, ev domain.LifecycleEvent) error
}

type envelope struct {
	ev   domain.LifecycleEvent
	span trace.SpanContext
}

// Dispatcher is a bounded in-process queue drained by a single worker.
type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan envelope

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan envelope, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for env := range d.queue {
		d.deliver(env)
	}
}

func (d *Dispatcher) deliver(env envelope) {
	ctx := trace.ContextWithRemoteSpanContext(context.Background(), env.span)
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	ev := env.ev
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event sink panicked",
				"event_id", ev.ID,
				"event_type", string(ev.Kind),
				"appointment_id", ev.Appointment.ID,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := d.sink.Notify(ctx, ev); err != nil {
		d.logger.Error("event delivery failed",
			"event_id", ev.ID,
			"event_type", string(ev.Kind),
			"appointment_id", ev.Appointment.ID,
			"err", err,
		)
	}
}

// Dispatch never blocks. A full queue drops the event with a warning.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.LifecycleEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("event dispatcher closed, dropping event",
			"event_id", ev.ID, "event_type", string(ev.Kind))
		return
	}

	select {
	case d.queue <- envelope{ev: ev, span: trace.SpanContextFromContext(ctx)}:
	default:
		// fila cheia: nunca quebrar a API
		d.logger.Warn("event queue full, dropping event",
			"event_id", ev.ID,
			"event_type", string(ev.Kind),
			"appointment_id", ev.Appointment.ID,
		)
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain events: %w", ctx.Err())
	}
}

var _ domain.Notifier = (*Dispatcher)(nil)
