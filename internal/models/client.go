package models

import "time"

// Cliente sem login; identificado pelo email nas reservas públicas
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	LGPDConsent   bool       `gorm:"column:lgpd_consent;default:false" json:"lgpd_consent"`
	LGPDConsentAt *time.Time `gorm:"column:lgpd_consent_at" json:"lgpd_consent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
