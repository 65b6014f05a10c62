package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment")

// ======================================================
// DEPENDENCIES
// ======================================================

type Deps struct {
	Appointments domain.AppointmentRepository
	Services     domain.ServiceCatalog
	Clients      domain.ClientDirectory
	Barbers      domain.BarberDirectory
	Hours        domain.BusinessHours
	Notifier     domain.Notifier
	Clock        domain.Clock

	Location *time.Location

	// granularidade dos slots públicos (minutos)
	SlotMinutes int
	// antecedência mínima para reservas públicas
	PublicMinAdvance time.Duration

	Logger *slog.Logger
}

// SchedulingService is the only entry point that mutates appointments.
// It holds no state between calls and is safe for concurrent use.
type SchedulingService struct {
	appointments domain.AppointmentRepository
	services     domain.ServiceCatalog
	clients      domain.ClientDirectory
	barbers      domain.BarberDirectory
	hours        domain.BusinessHours
	notifier     domain.Notifier
	clock        domain.Clock

	loc              *time.Location
	slotMinutes      int
	publicMinAdvance time.Duration

	logger *slog.Logger
}

func NewSchedulingService(d Deps) *SchedulingService {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	slot := d.SlotMinutes
	if slot <= 0 {
		slot = domain.DefaultSlotMinutes
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SchedulingService{
		appointments:     d.Appointments,
		services:         d.Services,
		clients:          d.Clients,
		barbers:          d.Barbers,
		hours:            d.Hours,
		notifier:         d.Notifier,
		clock:            d.Clock,
		loc:              loc,
		slotMinutes:      slot,
		publicMinAdvance: d.PublicMinAdvance,
		logger:           logger,
	}
}

func (s *SchedulingService) Location() *time.Location {
	return s.loc
}

func (s *SchedulingService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (s *SchedulingService) resolveBarber(ctx context.Context, id uint) (*domain.Barber, error) {
	b, err := s.barbers.GetBarber(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get barber", err)
	}
	return b, nil
}

func (s *SchedulingService) resolveClient(ctx context.Context, id uint) (*domain.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get client", err)
	}
	return c, nil
}

// resolveService returns only active services with a usable duration.
func (s *SchedulingService) resolveService(ctx context.Context, id uint) (*domain.Service, error) {
	svc, err := s.services.GetService(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get service", err)
	}
	if !svc.Active {
		return nil, domain.ErrValidation("service_inactive", "Serviço indisponível para agendamento.")
	}
	if svc.DurationMin <= 0 {
		return nil, domain.ErrValidation("invalid_duration", "Serviço sem duração configurada.")
	}
	return svc, nil
}

// serviceTerms is what an appointment snapshots from the catalog.
type serviceTerms struct {
	id          uint
	durationMin int
	price       float64
}

// snapshotService reads the current duration and price of an active service.
func (s *SchedulingService) snapshotService(ctx context.Context, id uint) (*serviceTerms, error) {
	if _, err := s.resolveService(ctx, id); err != nil {
		return nil, err
	}
	duration, err := s.services.GetDuration(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get service duration", err)
	}
	if duration <= 0 {
		return nil, domain.ErrValidation("invalid_duration", "Serviço sem duração configurada.")
	}
	price, err := s.services.GetPrice(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get service price", err)
	}
	return &serviceTerms{id: id, durationMin: duration, price: price}, nil
}

// --------------------------------------------------
// Conflicts
// --------------------------------------------------

// checkConflict runs inside the barber's serialized section.
func (s *SchedulingService) checkConflict(
	ctx context.Context,
	tx domain.AppointmentStore,
	ap *domain.Appointment,
) error {

	detector := domain.NewConflictDetector(tx, s.loc)
	conflict, info, err := detector.HasConflict(ctx, ap.BarberID, ap.Start, ap.Duration(), ap.ID)
	if err != nil {
		return err
	}
	if conflict {
		return &domain.BookingConflictError{Conflict: *info}
	}
	return nil
}

// conflictError turns a storage-level overlap into a named conflict.
// The competitor is looked up again outside the failed transaction.
func (s *SchedulingService) conflictError(ctx context.Context, ap *domain.Appointment, cause error) error {
	var bc *domain.BookingConflictError
	if errors.As(cause, &bc) {
		s.enrichConflict(ctx, &bc.Conflict)
		return bc
	}
	if !errors.Is(cause, domain.ErrOverlap) {
		return cause
	}

	info := domain.ConflictInfo{BarberID: ap.BarberID}
	detector := domain.NewConflictDetector(s.appointments, s.loc)
	if found, got, err := detector.HasConflict(ctx, ap.BarberID, ap.Start, ap.Duration(), ap.ID); err == nil && found {
		info = *got
	}
	s.enrichConflict(ctx, &info)
	return &domain.BookingConflictError{Conflict: info}
}

// enrichConflict fills display names. Lookup failures leave the names empty.
func (s *SchedulingService) enrichConflict(ctx context.Context, info *domain.ConflictInfo) {
	info.Start = info.Start.In(s.loc)
	info.End = info.End.In(s.loc)

	if info.BarberID != 0 {
		if b, err := s.barbers.GetBarber(ctx, info.BarberID); err == nil {
			info.BarberName = b.Name
		}
	}
	if info.ClientID != 0 {
		if c, err := s.clients.FindByID(ctx, info.ClientID); err == nil {
			info.ClientName = c.Name
		}
	}
	if info.ServiceID != 0 {
		if svc, err := s.services.GetService(ctx, info.ServiceID); err == nil {
			info.ServiceName = svc.Name
		}
	}
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (s *SchedulingService) emit(ctx context.Context, ev domain.LifecycleEvent) {
	if s.notifier == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = s.now()
	}
	s.notifier.Dispatch(ctx, ev)
}

// --------------------------------------------------
// Tracing
// --------------------------------------------------

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
