package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/db/pgerr"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		LGPDConsent:   m.LGPDConsent,
		LGPDConsentAt: m.LGPDConsentAt,
	}
}

func (r *ClientGormRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var m models.Client
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client by email: %w", err)
	}

	c := toDomainClient(m)
	return &c, nil
}

func (r *ClientGormRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var m models.Client
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("client", id)
		}
		return nil, fmt.Errorf("find client %d: %w", id, err)
	}

	c := toDomainClient(m)
	return &c, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, c *domain.Client) error {
	m := models.Client{
		Name:          strings.TrimSpace(c.Name),
		Email:         strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:         c.Phone,
		LGPDConsent:   c.LGPDConsent,
		LGPDConsentAt: c.LGPDConsentAt,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create client: %w", err)
	}

	c.ID = m.ID
	c.Email = m.Email
	return nil
}

var _ domain.ClientDirectory = (*ClientGormRepository)(nil)
