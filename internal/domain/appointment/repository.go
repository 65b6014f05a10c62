package appointment

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate is returned by directories when a unique key already exists.
var ErrDuplicate = errors.New("duplicate record")

// -------- Appointment --------

// AppointmentStore is the part of the repository usable inside a barber transaction.
type AppointmentStore interface {
	// FindActiveByBarberAndDate returns active appointments whose interval
	// intersects the calendar day starting at day (midnight, configured location).
	FindActiveByBarberAndDate(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]Appointment, error)

	// FindByID returns a *NotFoundError when the appointment does not exist.
	// Inside InBarberTransaction the row stays locked until commit.
	FindByID(
		ctx context.Context,
		id uint,
	) (*Appointment, error)

	// Insert returns ErrOverlap when the storage constraint rejects the interval.
	Insert(
		ctx context.Context,
		ap *Appointment,
	) error

	Update(
		ctx context.Context,
		ap *Appointment,
	) error
}

type AppointmentRepository interface {
	AppointmentStore

	ListForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]Appointment, error)

	// InBarberTransaction runs fn serialized against every other booking for
	// any of the given barbers (read-check-write section). Locks are taken in
	// ascending id order.
	InBarberTransaction(
		ctx context.Context,
		barberIDs []uint,
		fn func(ctx context.Context, tx AppointmentStore) error,
	) error
}

// -------- Service --------

type Service struct {
	ID          uint
	Name        string
	DurationMin int
	Price       float64
	Active      bool
}

type ServiceCatalog interface {
	GetService(ctx context.Context, id uint) (*Service, error)
	GetDuration(ctx context.Context, id uint) (int, error)
	GetPrice(ctx context.Context, id uint) (float64, error)
	ListActive(ctx context.Context) ([]Service, error)
}

// -------- Client --------

type Client struct {
	ID            uint
	Name          string
	Email         string
	Phone         string
	LGPDConsent   bool
	LGPDConsentAt *time.Time
}

type ClientDirectory interface {
	// FindByEmail returns (nil, nil) when no client uses the email.
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByID(ctx context.Context, id uint) (*Client, error)
	// Create returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, c *Client) error
}

// -------- Barber --------

type Barber struct {
	ID     uint
	Name   string
	Email  string
	Active bool
}

type BarberDirectory interface {
	// GetBarber returns a *NotFoundError for unknown users, non-barbers and inactive barbers.
	GetBarber(ctx context.Context, id uint) (*Barber, error)
	ListBarbers(ctx context.Context) ([]Barber, error)
}

// -------- Business hours --------

type BusinessHours interface {
	HoursFor(ctx context.Context, barberID uint, date time.Time) (DayHours, error)
}

// -------- Clock --------

type Clock interface {
	Now() time.Time
}
