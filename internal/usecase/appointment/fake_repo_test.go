package appointment_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// fakeRepo keeps everything in memory. Its overlap check and insert are
// deliberately separate critical sections, so only the use case's lock
// keeps concurrent bookings apart.
type fakeRepo struct {
	mu sync.Mutex

	services      map[uint]*models.Service
	barbers       map[uint]*models.User
	schedules     map[uint][]models.WeeklySchedule
	appointments  map[uint]*models.Appointment
	payments      map[uint]*models.Payment
	subscriptions []models.Subscription
	discounts     []models.PlanDiscount

	nextID   uint
	inserted int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		barbers:      map[uint]*models.User{},
		schedules:    map[uint][]models.WeeklySchedule{},
		appointments: map[uint]*models.Appointment{},
		payments:     map[uint]*models.Payment{},
		nextID:       100,
	}
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) ListSchedule(_ context.Context, barberID uint) ([]models.WeeklySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.schedules[barberID]), nil
}

func (f *fakeRepo) ReplaceSchedule(_ context.Context, barberID uint, entries []models.WeeklySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := slices.Clone(entries)
	for i := range rows {
		rows[i].BarberID = barberID
	}
	f.schedules[barberID] = rows
	return nil
}

func (f *fakeRepo) ListAppointments(_ context.Context, barberID uint, start, end time.Time, exclude []domain.Status) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	window := interval.Interval{Start: start, End: end}
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || slices.Contains(exclude, domain.Status(ap.Status)) {
			continue
		}
		if interval.Overlaps(window, interval.Interval{Start: ap.ScheduledAt, End: ap.EndsAt}) {
			out = append(out, *ap)
		}
	}
	slices.SortFunc(out, func(a, b models.Appointment) int { return a.ScheduledAt.Compare(b.ScheduledAt) })
	return out, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) InsertAppointment(ctx context.Context, ap *models.Appointment, payment *models.Payment) error {
	requested := interval.New(ap.ScheduledAt, ap.DurationMinutes)

	existing, _ := f.ListAppointments(ctx, ap.BarberID, requested.Start, requested.End, domain.BookingIgnoredStatuses)
	if hit := domain.FirstConflict(requested, existing); hit != nil {
		return &domain.SlotConflictError{BarberID: ap.BarberID, Requested: requested, ConflictingID: hit.ID}
	}

	// Widen the window between check and insert.
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	f.inserted++
	if payment != nil {
		payment.AppointmentID = ap.ID
		p := *payment
		f.payments[ap.ID] = &p
	}
	return nil
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment, from domain.Status, action domain.Action, payment *domain.PaymentChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.appointments[ap.ID]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if stored.Status != string(from) {
		return &domain.InvalidTransitionError{AppointmentID: ap.ID, From: domain.Status(stored.Status), Action: action}
	}
	cp := *ap
	f.appointments[ap.ID] = &cp

	if payment != nil {
		p := f.payments[ap.ID]
		if p == nil {
			p = &models.Payment{AppointmentID: ap.ID}
			f.payments[ap.ID] = p
		}
		p.Status = payment.Status
		p.Amount = payment.Amount
		if payment.Method != "" {
			p.Method = payment.Method
		}
		if payment.ConfirmedAt != nil {
			p.ConfirmedAt = payment.ConfirmedAt
		}
	}
	return nil
}

func (f *fakeRepo) GetCurrentSubscription(_ context.Context, clientID uint, now time.Time) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subscriptions {
		if s.ClientID == clientID && s.Status == models.SubscriptionActive &&
			!now.Before(s.CurrentPeriodStart) && now.Before(s.CurrentPeriodEnd) {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetPlanDiscount(_ context.Context, planID, serviceID uint) (*models.PlanDiscount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.discounts {
		if d.PlanID == planID && d.ServiceID == serviceID {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------
// Fixture
// --------------------------------------------------

const (
	barberID  uint = 7
	clientID  uint = 10
	serviceID uint = 3
)

// Sunday 2026-03-01 12:00 in São Paulo.
var fixedNow = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

type fixture struct {
	repo  *fakeRepo
	conv  *timezone.Converter
	sink  *memorySink
	audit *audit.Dispatcher
	log   *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conv, err := timezone.NewConverter("America/Sao_Paulo")
	require.NoError(t, err)

	repo := newFakeRepo()
	repo.services[serviceID] = &models.Service{ID: serviceID, Name: "Corte", DurationMinutes: 45, Price: decimal.RequireFromString("50.00"), Active: true}
	repo.barbers[barberID] = &models.User{ID: barberID, Name: "Zé", Role: models.RoleBarber, Active: true}
	repo.schedules[barberID] = []models.WeeklySchedule{
		{BarberID: barberID, DayOfWeek: 1, StartTime: "09:00", EndTime: "20:00", IsActive: true},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := &memorySink{}

	return &fixture{
		repo:  repo,
		conv:  conv.WithClock(func() time.Time { return fixedNow }),
		sink:  sink,
		audit: audit.NewDispatcher(sink, log),
		log:   log,
	}
}

// auditActions drains the dispatcher and returns the recorded actions.
func (fx *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fx.audit.Close(ctx))

	fx.sink.mu.Lock()
	defer fx.sink.mu.Unlock()
	out := make([]string, 0, len(fx.sink.events))
	for _, ev := range fx.sink.events {
		out = append(out, ev.Action)
	}
	return out
}

func (fx *fixture) book(t *testing.T, date, hhmm string, minutes int, status domain.Status) uint {
	t.Helper()
	d, err := timezone.ParseDate(date)
	require.NoError(t, err)
	c, err := timezone.ParseClock(hhmm)
	require.NoError(t, err)

	start := fx.conv.ToUTC(d, c)
	fx.repo.mu.Lock()
	defer fx.repo.mu.Unlock()
	fx.repo.nextID++
	id := fx.repo.nextID
	fx.repo.appointments[id] = &models.Appointment{
		ID:              id,
		ClientID:        clientID,
		BarberID:        barberID,
		ServiceID:       serviceID,
		ScheduledAt:     start,
		DurationMinutes: minutes,
		EndsAt:          interval.AddMinutes(start, minutes),
		Status:          string(status),
		PriceAmount:     decimal.RequireFromString("50.00"),
	}
	return id
}
