package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// CatalogGormRepository serves the service catalog and the barber directory.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func toDomainService(m models.Service) domain.Service {
	return domain.Service{
		ID:          m.ID,
		Name:        m.Name,
		DurationMin: m.DurationMin,
		Price:       m.Price,
		Active:      m.Active,
	}
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*domain.Service, error) {
	var m models.Service
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("service", id)
		}
		return nil, fmt.Errorf("find service %d: %w", id, err)
	}
	svc := toDomainService(m)
	return &svc, nil
}

func (r *CatalogGormRepository) GetDuration(ctx context.Context, id uint) (int, error) {
	svc, err := r.GetService(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.DurationMin, nil
}

func (r *CatalogGormRepository) GetPrice(ctx context.Context, id uint) (float64, error) {
	svc, err := r.GetService(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.Price, nil
}

func (r *CatalogGormRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainService(m))
	}
	return out, nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id uint) (*domain.Barber, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND active = ?", id, models.RoleBarber, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("barber", id)
		}
		return nil, fmt.Errorf("find barber %d: %w", id, err)
	}

	return &domain.Barber{ID: u.ID, Name: u.Name, Email: u.Email, Active: u.Active}, nil
}

func (r *CatalogGormRepository) ListBarbers(ctx context.Context) ([]domain.Barber, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", models.RoleBarber, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}

	out := make([]domain.Barber, 0, len(rows))
	for _, u := range rows {
		out = append(out, domain.Barber{ID: u.ID, Name: u.Name, Email: u.Email, Active: u.Active})
	}
	return out, nil
}

var (
	_ domain.ServiceCatalog  = (*CatalogGormRepository)(nil)
	_ domain.BarberDirectory = (*CatalogGormRepository)(nil)
)
