package appointment

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// -------- appointments --------

type memAppointments struct {
	mu     sync.Mutex
	rows   map[uint]domain.Appointment
	nextID uint

	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex

	// staleReads hides existing rows from the conflict query so only the
	// storage constraint can catch an overlap.
	staleReads bool
	failWith   error

	// beforeLock runs before barber locks are taken; onTxRead runs after
	// each FindByID made through a transaction store.
	beforeLock func()
	onTxRead   func()
}

func newMemAppointments() *memAppointments {
	return &memAppointments{
		rows:  map[uint]domain.Appointment{},
		locks: map[uint]*sync.Mutex{},
	}
}

func (m *memAppointments) seed(ap domain.Appointment) domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ap.ID = m.nextID
	m.rows[ap.ID] = ap
	return ap
}

func (m *memAppointments) FindActiveByBarberAndDate(_ context.Context, barberID uint, day time.Time) ([]domain.Appointment, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.staleReads {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dayEnd := day.AddDate(0, 0, 1)
	var out []domain.Appointment
	for _, ap := range m.rows {
		if ap.BarberID == barberID && ap.Status.IsActive() && domain.Overlaps(ap.Start, ap.End(), day, dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *memAppointments) FindByID(_ context.Context, id uint) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound("appointment", id)
	}
	return &ap, nil
}

// overlapsLocked emulates the exclusion constraint.
func (m *memAppointments) overlapsLocked(ap *domain.Appointment) bool {
	if !ap.Status.IsActive() {
		return false
	}
	for _, other := range m.rows {
		if other.ID == ap.ID || other.BarberID != ap.BarberID || !other.Status.IsActive() {
			continue
		}
		if domain.Overlaps(ap.Start, ap.End(), other.Start, other.End()) {
			return true
		}
	}
	return false
}

func (m *memAppointments) Insert(_ context.Context, ap *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.overlapsLocked(ap) {
		return domain.ErrOverlap
	}
	m.nextID++
	ap.ID = m.nextID
	m.rows[ap.ID] = *ap
	return nil
}

func (m *memAppointments) Update(_ context.Context, ap *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[ap.ID]; !ok {
		return domain.ErrNotFound("appointment", ap.ID)
	}
	if m.overlapsLocked(ap) {
		return domain.ErrOverlap
	}
	m.rows[ap.ID] = *ap
	return nil
}

func (m *memAppointments) ListForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Appointment
	for _, ap := range m.rows {
		if barberID != 0 && ap.BarberID != barberID {
			continue
		}
		if !ap.Start.Before(start) && ap.Start.Before(end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (m *memAppointments) barberLock(barberID uint) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[barberID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[barberID] = l
	}
	return l
}

func (m *memAppointments) InBarberTransaction(
	ctx context.Context,
	barberIDs []uint,
	fn func(ctx context.Context, tx domain.AppointmentStore) error,
) error {
	if m.beforeLock != nil {
		m.beforeLock()
	}

	ids := slices.Clone(barberIDs)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		l := m.barberLock(id)
		l.Lock()
		defer l.Unlock()
	}
	return fn(ctx, txAppointments{m})
}

type txAppointments struct {
	*memAppointments
}

func (t txAppointments) FindByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	ap, err := t.memAppointments.FindByID(ctx, id)
	if t.onTxRead != nil {
		t.onTxRead()
	}
	return ap, err
}

func (m *memAppointments) row(id uint) domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memAppointments) moveTo(id, barberID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap := m.rows[id]
	ap.BarberID = barberID
	m.rows[id] = ap
}

func (m *memAppointments) active(barberID uint) []domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Appointment
	for _, ap := range m.rows {
		if ap.BarberID == barberID && ap.Status.IsActive() {
			out = append(out, ap)
		}
	}
	return out
}

// -------- catalog / directories --------

type memCatalog struct {
	services map[uint]domain.Service
	barbers  map[uint]domain.Barber
}

func (c *memCatalog) GetService(_ context.Context, id uint) (*domain.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, domain.ErrNotFound("service", id)
	}
	return &svc, nil
}

func (c *memCatalog) GetDuration(ctx context.Context, id uint) (int, error) {
	svc, err := c.GetService(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.DurationMin, nil
}

func (c *memCatalog) GetPrice(ctx context.Context, id uint) (float64, error) {
	svc, err := c.GetService(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.Price, nil
}

func (c *memCatalog) ListActive(context.Context) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range c.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *memCatalog) GetBarber(_ context.Context, id uint) (*domain.Barber, error) {
	b, ok := c.barbers[id]
	if !ok || !b.Active {
		return nil, domain.ErrNotFound("barber", id)
	}
	return &b, nil
}

func (c *memCatalog) ListBarbers(context.Context) ([]domain.Barber, error) {
	var out []domain.Barber
	for _, b := range c.barbers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memClients struct {
	mu     sync.Mutex
	rows   map[uint]domain.Client
	nextID uint

	creates int
	// raceOnCreate simulates another request inserting the same email first.
	raceOnCreate bool
}

func newMemClients(seed ...domain.Client) *memClients {
	c := &memClients{rows: map[uint]domain.Client{}}
	for _, cl := range seed {
		c.nextID++
		cl.ID = c.nextID
		c.rows[cl.ID] = cl
	}
	return c
}

func (c *memClients) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cl := range c.rows {
		if strings.EqualFold(cl.Email, email) {
			return &cl, nil
		}
	}
	return nil, nil
}

func (c *memClients) FindByID(_ context.Context, id uint) (*domain.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl, ok := c.rows[id]
	if !ok {
		return nil, domain.ErrNotFound("client", id)
	}
	return &cl, nil
}

func (c *memClients) Create(_ context.Context, cl *domain.Client) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creates++

	if c.raceOnCreate {
		c.raceOnCreate = false
		c.nextID++
		winner := *cl
		winner.ID = c.nextID
		c.rows[winner.ID] = winner
		return domain.ErrDuplicate
	}

	for _, existing := range c.rows {
		if strings.EqualFold(existing.Email, cl.Email) {
			return domain.ErrDuplicate
		}
	}
	c.nextID++
	cl.ID = c.nextID
	c.rows[cl.ID] = *cl
	return nil
}

// -------- hours / events --------

type weeklyHours struct{}

func (weeklyHours) HoursFor(_ context.Context, _ uint, date time.Time) (domain.DayHours, error) {
	return domain.DefaultWeeklyHours[date.Weekday()].On(date)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (n *recordingNotifier) Dispatch(_ context.Context, ev domain.LifecycleEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) kinds() []domain.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.EventKind, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

// -------- fixture --------

var saoPaulo = timezone.Location("America/Sao_Paulo")

// monday returns 2026-03-02 (a Monday) at h:m in São Paulo.
func monday(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, saoPaulo)
}

const (
	barberAna   uint = 1
	barberBruno uint = 2

	svcCut     uint = 10 // 30 min
	svcBeard   uint = 11 // 60 min
	svcRetired uint = 12

	clientJoao uint = 1
)

type fixture struct {
	svc      *SchedulingService
	store    *memAppointments
	clients  *memClients
	notifier *recordingNotifier
}

func newFixture(now time.Time) *fixture {
	store := newMemAppointments()
	clients := newMemClients(domain.Client{Name: "João", Email: "joao@example.com"})
	notifier := &recordingNotifier{}
	catalog := &memCatalog{
		services: map[uint]domain.Service{
			svcCut:     {ID: svcCut, Name: "Corte", DurationMin: 30, Price: 40, Active: true},
			svcBeard:   {ID: svcBeard, Name: "Corte + Barba", DurationMin: 60, Price: 70, Active: true},
			svcRetired: {ID: svcRetired, Name: "Platinado", DurationMin: 120, Price: 200, Active: false},
		},
		barbers: map[uint]domain.Barber{
			barberAna:   {ID: barberAna, Name: "Ana", Active: true},
			barberBruno: {ID: barberBruno, Name: "Bruno", Active: true},
		},
	}

	svc := NewSchedulingService(Deps{
		Appointments: store,
		Services:     catalog,
		Clients:      clients,
		Barbers:      catalog,
		Hours:        weeklyHours{},
		Notifier:     notifier,
		Clock:        timezone.FixedClock{At: now},
		Location:     saoPaulo,
		SlotMinutes:  30,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &fixture{svc: svc, store: store, clients: clients, notifier: notifier}
}

func (f *fixture) seedBooking(barberID uint, start time.Time, minutes int, st domain.Status) domain.Appointment {
	return f.store.seed(domain.Appointment{
		ClientID:    clientJoao,
		BarberID:    barberID,
		ServiceID:   svcCut,
		Start:       start,
		DurationMin: minutes,
		Status:      st,
	})
}
