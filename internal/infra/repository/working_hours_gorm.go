package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// WorkingHoursGormRepository resolves business hours per barber and weekday.
// Barbers without their own rows follow domain.DefaultWeeklyHours.
type WorkingHoursGormRepository struct {
	db *gorm.DB
}

func NewWorkingHoursGormRepository(db *gorm.DB) *WorkingHoursGormRepository {
	return &WorkingHoursGormRepository{db: db}
}

func weekdayHoursFromModel(wh models.WorkingHours) domain.WeekdayHours {
	if !wh.Active {
		return domain.WeekdayHours{Closed: true}
	}
	return domain.WeekdayHours{
		Open:       wh.StartTime,
		Close:      wh.EndTime,
		LunchStart: wh.LunchStart,
		LunchEnd:   wh.LunchEnd,
	}
}

func (r *WorkingHoursGormRepository) HoursFor(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (domain.DayHours, error) {

	weekday := date.Weekday()

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, int(weekday)).
		First(&wh).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.DefaultWeeklyHours[weekday].On(date)
	case err != nil:
		return domain.DayHours{}, fmt.Errorf("find working hours: %w", err)
	}

	return weekdayHoursFromModel(wh).On(date)
}

// Weekly returns the effective template for all seven weekdays.
func (r *WorkingHoursGormRepository) Weekly(
	ctx context.Context,
	barberID uint,
) (map[time.Weekday]domain.WeekdayHours, error) {

	rows, err := r.ListForBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	out := make(map[time.Weekday]domain.WeekdayHours, 7)
	for wd, h := range domain.DefaultWeeklyHours {
		out[wd] = h
	}
	for _, wh := range rows {
		out[time.Weekday(wh.Weekday)] = weekdayHoursFromModel(wh)
	}
	return out, nil
}

func (r *WorkingHoursGormRepository) ListForBarber(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return hours, nil
}

// ReplaceForBarber swaps the whole weekly configuration of a barber atomically.
func (r *WorkingHoursGormRepository) ReplaceForBarber(
	ctx context.Context,
	barberID uint,
	days []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return fmt.Errorf("clear working hours: %w", err)
		}

		if len(days) == 0 {
			return nil
		}

		for i := range days {
			days[i].ID = 0
			days[i].BarberID = barberID
		}
		if err := tx.Create(&days).Error; err != nil {
			return fmt.Errorf("save working hours: %w", err)
		}
		return nil
	})
}

var _ domain.BusinessHours = (*WorkingHoursGormRepository)(nil)
