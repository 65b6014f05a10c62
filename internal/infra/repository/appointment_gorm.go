package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/db/pgerr"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// set on the store handed to InBarberTransaction callbacks
	lockRows bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toDomainAppointment(m models.Appointment) domain.Appointment {
	duration := m.DurationMin
	if duration <= 0 {
		duration = int(m.EndTime.Sub(m.StartTime) / time.Minute)
	}
	return domain.Appointment{
		ID:          m.ID,
		ClientID:    m.ClientID,
		BarberID:    m.BarberID,
		ServiceID:   m.ServiceID,
		Start:       m.StartTime,
		DurationMin: duration,
		Price:       m.Price,
		Status:      domain.Status(m.Status),
		Notes:       m.Notes,
		CancelledAt: m.CancelledAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toAppointmentModel(ap *domain.Appointment) models.Appointment {
	return models.Appointment{
		ID:          ap.ID,
		BarberID:    ap.BarberID,
		ClientID:    ap.ClientID,
		ServiceID:   ap.ServiceID,
		StartTime:   ap.Start,
		EndTime:     ap.End(),
		DurationMin: ap.DurationMin,
		Price:       ap.Price,
		Status:      string(ap.Status),
		Notes:       ap.Notes,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
}

func activeStatusValues() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, st := range domain.ActiveStatuses {
		out = append(out, string(st))
	}
	return out
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) FindActiveByBarberAndDate(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]domain.Appointment, error) {

	dayEnd := day.AddDate(0, 0, 1)

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			activeStatusValues(),
			dayEnd,
			day,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active appointments: %w", err)
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*domain.Appointment, error) {

	q := r.db.WithContext(ctx)
	if r.lockRows {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.Appointment
	if err := q.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("appointment", id)
		}
		return nil, fmt.Errorf("find appointment %d: %w", id, err)
	}

	ap := toDomainAppointment(m)
	return &ap, nil
}

func (r *AppointmentGormRepository) Insert(
	ctx context.Context,
	ap *domain.Appointment,
) error {

	m := toAppointmentModel(ap)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if pgerr.IsExclusionViolation(err) {
			return domain.ErrOverlap
		}
		return fmt.Errorf("insert appointment: %w", err)
	}

	ap.ID = m.ID
	ap.CreatedAt = m.CreatedAt
	ap.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *domain.Appointment,
) error {

	m := toAppointmentModel(ap)
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"barber_id":    m.BarberID,
			"client_id":    m.ClientID,
			"service_id":   m.ServiceID,
			"start_time":   m.StartTime,
			"end_time":     m.EndTime,
			"duration_min": m.DurationMin,
			"price":        m.Price,
			"status":       m.Status,
			"notes":        m.Notes,
			"cancelled_at": m.CancelledAt,
			"completed_at": m.CompletedAt,
		})
	if res.Error != nil {
		if pgerr.IsExclusionViolation(res.Error) {
			return domain.ErrOverlap
		}
		return fmt.Errorf("update appointment %d: %w", ap.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound("appointment", ap.ID)
	}
	return nil
}

// ListForPeriod returns appointments of any status starting in [start, end).
// barberID zero lists every barber.
func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]domain.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", start, end)
	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var rows []models.Appointment
	if err := q.Order("start_time ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list appointments for period: %w", err)
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

// --------------------------------------------------
// Serialized section
// --------------------------------------------------

// InBarberTransaction holds a transaction-scoped advisory lock for every
// given barber, taken in ascending id order so that two transactions touching
// the same pair of barbers cannot deadlock. Reads through the store passed to
// fn lock the appointment row until commit.
func (r *AppointmentGormRepository) InBarberTransaction(
	ctx context.Context,
	barberIDs []uint,
	fn func(ctx context.Context, tx domain.AppointmentStore) error,
) error {

	ids := slices.Clone(barberIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				barberLockKey(id),
			).Error; err != nil {
				return fmt.Errorf("lock barber %d: %w", id, err)
			}
		}
		return fn(ctx, &AppointmentGormRepository{db: tx, lockRows: true})
	})
}

func barberLockKey(barberID uint) string {
	return "appointments:barber:" + strconv.FormatUint(uint64(barberID), 10)
}

// Compile-time check
var _ domain.AppointmentRepository = (*AppointmentGormRepository)(nil)
