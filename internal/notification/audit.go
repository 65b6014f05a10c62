package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// AuditSink persists every lifecycle event as an audit_logs row.
type AuditSink struct {
	db *gorm.DB
}

func NewAuditSink(db *gorm.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (s *AuditSink) Notify(ctx context.Context, ev domain.LifecycleEvent) error {
	row, err := auditRecord(ev)
	if err != nil {
		return err
	}

	// event_id é único: reentregas não duplicam o registro
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("audit insert %s: %w", ev.ID, err)
	}
	return nil
}

func auditRecord(ev domain.LifecycleEvent) (models.AuditLog, error) {
	meta, err := json.Marshal(NewPayload(ev))
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("encode audit metadata: %w", err)
	}

	apID := ev.Appointment.ID
	barberID := ev.Appointment.BarberID

	return models.AuditLog{
		EventID:   ev.ID,
		UserID:    &barberID,
		Action:    "appointment_" + string(ev.Kind),
		Entity:    "appointment",
		EntityID:  &apID,
		Metadata:  string(meta),
		CreatedAt: ev.OccurredAt,
	}, nil
}
