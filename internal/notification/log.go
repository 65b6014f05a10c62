package notification

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// LogSink writes one structured line per event. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, ev domain.LifecycleEvent) error {
	p := NewPayload(ev)
	s.logger.InfoContext(ctx, "appointment event",
		"event_id", p.EventID,
		"event_type", p.EventType,
		"appointment_id", p.AppointmentID,
		"barber_id", p.BarberID,
		"client_id", p.ClientID,
		"status", string(p.Status),
		"previous_status", string(p.PreviousStatus),
		"start_time", p.Start,
	)
	return nil
}
