package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

type ConfirmResult struct {
	Appointment      *domain.Appointment
	AlreadyConfirmed bool
}

// ConfirmPublic backs the confirmation link sent to clients. Confirming twice
// is reported, not rejected.
func (s *SchedulingService) ConfirmPublic(ctx context.Context, id uint) (*ConfirmResult, error) {
	ap, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("find appointment", err)
	}

	if ap.Status == domain.StatusConfirmed {
		return &ConfirmResult{Appointment: ap, AlreadyConfirmed: true}, nil
	}

	ap, err = s.UpdateStatus(ctx, id, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Appointment: ap}, nil
}
