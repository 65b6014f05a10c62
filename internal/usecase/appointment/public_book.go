package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type PublicBookInput struct {
	BarberID  uint
	ServiceID uint
	Start     time.Time

	ClientName  string
	ClientEmail string
	ClientPhone string
	LGPDConsent bool

	Notes string
}

// ======================================================
// EXECUTE
// ======================================================

// PublicBook is the self-service booking path. On top of CreateAppointment it
// rejects past starts and starts outside business hours, and resolves the
// client by email.
func (s *SchedulingService) PublicBook(
	ctx context.Context,
	in PublicBookInput,
) (ap *domain.Appointment, err error) {

	ctx, span := tracer.Start(ctx, "SchedulingService.PublicBook")
	span.SetAttributes(
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)
	defer func() { endSpan(span, err) }()

	// --------------------------------------------------
	// 1️⃣ Dados do cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	email := validators.NormalizeEmail(in.ClientEmail)
	if name == "" {
		return nil, domain.ErrValidation("client_name_required", "Nome é obrigatório.")
	}
	if !validators.IsEmailSyntaxValid(email) {
		return nil, domain.ErrValidation("invalid_email", "E-mail inválido.")
	}

	// --------------------------------------------------
	// 2️⃣ Horário no passado / antecedência mínima
	// --------------------------------------------------
	if in.Start.IsZero() {
		return nil, domain.ErrValidation("invalid_start", "Horário inicial inválido.")
	}
	start := in.Start.In(s.loc)
	now := s.now()
	if !start.After(now) {
		return nil, domain.ErrValidation("start_in_past", "Não é possível agendar para datas/horários passados.")
	}
	if s.publicMinAdvance > 0 && start.Before(now.Add(s.publicMinAdvance)) {
		return nil, domain.ErrValidation("too_soon", "Horário muito próximo. Escolha um horário com mais antecedência.")
	}

	// --------------------------------------------------
	// 3️⃣ Barbeiro, serviço e expediente
	// --------------------------------------------------
	barber, err := s.resolveBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	svc, err := s.resolveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	hours, err := s.hours.HoursFor(ctx, barber.ID, domain.DayStart(start, s.loc))
	if err != nil {
		return nil, domain.WrapStorage("business hours", err)
	}
	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)
	if !hours.Contains(start, end) {
		return nil, domain.ErrValidation("outside_business_hours", "Horário fora do expediente.")
	}

	// --------------------------------------------------
	// 4️⃣ Cliente (get or create por email)
	// --------------------------------------------------
	client, err := s.upsertClient(ctx, domain.Client{
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(in.ClientPhone),
		LGPDConsent: in.LGPDConsent,
	})
	if err != nil {
		return nil, err
	}

	return s.book(ctx, barber, client, svc.ID, start, in.Notes)
}

// upsertClient is idempotent under concurrent first bookings with the same email.
func (s *SchedulingService) upsertClient(ctx context.Context, c domain.Client) (*domain.Client, error) {
	existing, err := s.clients.FindByEmail(ctx, c.Email)
	if err != nil {
		return nil, domain.WrapStorage("find client", err)
	}
	if existing != nil {
		return existing, nil
	}

	if c.LGPDConsent {
		at := s.now()
		c.LGPDConsentAt = &at
	}

	err = s.clients.Create(ctx, &c)
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, domain.ErrDuplicate):
		existing, err = s.clients.FindByEmail(ctx, c.Email)
		if err != nil {
			return nil, domain.WrapStorage("find client", err)
		}
		if existing == nil {
			return nil, &domain.StorageError{Op: "create client", Err: domain.ErrDuplicate}
		}
		return existing, nil
	default:
		return nil, domain.WrapStorage("create client", err)
	}
}
