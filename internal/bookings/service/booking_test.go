package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"trizone/internal/bookings/validator"
	"trizone/pkg/config"
	apperrors "trizone/pkg/errors"
	"trizone/pkg/logger"
	"trizone/pkg/model"
)

type mockBookingRepo struct {
	mu          sync.Mutex
	createFunc  func(ctx context.Context, booking *model.Booking) error
	findAllFunc func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc   func(ctx context.Context) (int64, error)
	created     []*model.Booking
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = fmt.Sprintf("booking_%d", len(m.created)+1)
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created, nil
}

func (m *mockBookingRepo) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.created)), nil
}

// mockRegistry holds one resource status behind a mutex so the concurrent
// create test keeps the registry's one-winner reserve semantics.
type mockRegistry struct {
	mu          sync.Mutex
	resource    *model.Resource
	reserveFunc func(ctx context.Context, id string) (*model.Resource, error)
}

func (m *mockRegistry) Get(ctx context.Context, id string) (*model.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resource == nil || m.resource.ID != id {
		return nil, apperrors.NotFoundWithID("Resource", id)
	}
	clone := *m.resource
	return &clone, nil
}

func (m *mockRegistry) List(ctx context.Context) ([]*model.Resource, error) {
	return nil, nil
}

func (m *mockRegistry) Reserve(ctx context.Context, id string) (*model.Resource, error) {
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resource == nil || m.resource.ID != id {
		return nil, apperrors.NotFoundWithID("Resource", id)
	}
	if m.resource.Status != model.StatusAvailable {
		return nil, apperrors.Conflict("Resource is not available")
	}
	m.resource.Status = model.StatusOccupied
	clone := *m.resource
	return &clone, nil
}

func (m *mockRegistry) Release(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	return nil, nil
}

func (m *mockRegistry) ToggleMaintenance(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	return nil, nil
}

func (m *mockRegistry) Seed(ctx context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		DefaultBookingHours: 1.0,
		DefaultRatePerHour:  25.0,
	}
}

func newTestService(repo *mockBookingRepo, registry *mockRegistry) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, registry, validator.NewBookingValidator(cfg.Log), nil, cfg)
}

func availableResource(id, name string) *model.Resource {
	return &model.Resource{ID: id, Name: name, Kind: model.KindWorkstation, Status: model.StatusAvailable, Seq: 1}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockBookingRepo{}
	registry := &mockRegistry{resource: availableResource("pc_3", "Station 3")}
	svc := newTestService(repo, registry)

	booking, err := svc.Create(context.Background(), &model.BookingRequest{
		ResourceID:    "pc_3",
		User:          "Rika",
		DurationHours: 2,
		RatePerHour:   30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking ID to be assigned")
	}
	if booking.ResourceName != "Station 3" {
		t.Errorf("expected resource name Station 3, got %s", booking.ResourceName)
	}
	if booking.Total != 60 {
		t.Errorf("expected total 60, got %v", booking.Total)
	}
	if got := booking.End.Sub(booking.Start); got != 2*time.Hour {
		t.Errorf("expected 2h window, got %v", got)
	}
	if registry.resource.Status != model.StatusOccupied {
		t.Errorf("expected resource occupied, got %s", registry.resource.Status)
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &mockBookingRepo{}
	registry := &mockRegistry{resource: availableResource("pc_1", "Station 1")}
	svc := newTestService(repo, registry)

	booking, err := svc.Create(context.Background(), &model.BookingRequest{ResourceID: "pc_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.User != "Guest" {
		t.Errorf("expected default user Guest, got %s", booking.User)
	}
	if booking.DurationHours != 1 {
		t.Errorf("expected default duration 1, got %v", booking.DurationHours)
	}
	if booking.RatePerHour != 25 {
		t.Errorf("expected default rate 25, got %v", booking.RatePerHour)
	}
	if booking.Total != 25 {
		t.Errorf("expected total 25, got %v", booking.Total)
	}
	if got := booking.End.Sub(booking.Start); got != time.Hour {
		t.Errorf("expected 1h window, got %v", got)
	}
}

func TestCreate_TotalIsRateTimesDuration(t *testing.T) {
	cases := []struct {
		duration float64
		rate     float64
		total    float64
	}{
		{1, 25, 25},
		{0.5, 40, 20},
		{3, 15.5, 46.5},
		{24, 10, 240},
	}

	for _, tc := range cases {
		repo := &mockBookingRepo{}
		registry := &mockRegistry{resource: availableResource("pc_1", "Station 1")}
		svc := newTestService(repo, registry)

		booking, err := svc.Create(context.Background(), &model.BookingRequest{
			ResourceID:    "pc_1",
			DurationHours: tc.duration,
			RatePerHour:   tc.rate,
		})
		if err != nil {
			t.Fatalf("duration=%v rate=%v: unexpected error: %v", tc.duration, tc.rate, err)
		}
		if booking.Total != tc.total {
			t.Errorf("duration=%v rate=%v: expected total %v, got %v", tc.duration, tc.rate, tc.total, booking.Total)
		}
	}
}

func TestCreate_MissingResourceID(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockRegistry{})

	_, err := svc.Create(context.Background(), &model.BookingRequest{})
	assertCode(t, err, apperrors.CodeValidation)
}

func TestCreate_DurationOutOfRange(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockRegistry{resource: availableResource("pc_1", "Station 1")})

	_, err := svc.Create(context.Background(), &model.BookingRequest{
		ResourceID:    "pc_1",
		DurationHours: 30,
	})
	assertCode(t, err, apperrors.CodeValidation)
}

func TestCreate_UserTooLong(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockRegistry{resource: availableResource("pc_1", "Station 1")})

	_, err := svc.Create(context.Background(), &model.BookingRequest{
		ResourceID: "pc_1",
		User:       strings.Repeat("x", 101),
	})
	assertCode(t, err, apperrors.CodeValidation)
}

func TestCreate_ConflictPassesThrough(t *testing.T) {
	repo := &mockBookingRepo{}
	occupied := availableResource("pc_1", "Station 1")
	occupied.Status = model.StatusOccupied
	registry := &mockRegistry{resource: occupied}
	svc := newTestService(repo, registry)

	_, err := svc.Create(context.Background(), &model.BookingRequest{ResourceID: "pc_1"})
	assertCode(t, err, apperrors.CodeConflict)

	if len(repo.created) != 0 {
		t.Errorf("no booking must be written when reserve fails, got %d", len(repo.created))
	}
}

func TestCreate_NotFoundPassesThrough(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, &mockRegistry{})

	_, err := svc.Create(context.Background(), &model.BookingRequest{ResourceID: "ghost"})
	assertCode(t, err, apperrors.CodeNotFound)

	if len(repo.created) != 0 {
		t.Errorf("no booking must be written for an unknown resource, got %d", len(repo.created))
	}
}

func TestCreate_PersistFailureIsInternal(t *testing.T) {
	repo := &mockBookingRepo{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return fmt.Errorf("write concern failed")
		},
	}
	registry := &mockRegistry{resource: availableResource("pc_1", "Station 1")}
	svc := newTestService(repo, registry)

	_, err := svc.Create(context.Background(), &model.BookingRequest{ResourceID: "pc_1"})
	assertCode(t, err, apperrors.CodeInternal)

	// The reserve already happened; recovery is the admin release path.
	if registry.resource.Status != model.StatusOccupied {
		t.Errorf("expected resource to stay occupied, got %s", registry.resource.Status)
	}
}

func TestCreate_ConcurrentExactlyOneBooking(t *testing.T) {
	repo := &mockBookingRepo{}
	registry := &mockRegistry{resource: availableResource("pc_1", "Station 1")}
	svc := newTestService(repo, registry)

	const callers = 12
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), &model.BookingRequest{ResourceID: "pc_1"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 booking, got %d", successes)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected exactly 1 persisted booking, got %d", len(repo.created))
	}
}

func TestGetAll_Forbidden(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockRegistry{})

	_, _, err := svc.GetAll(context.Background(), model.GuestCaller(), 10, 0)
	assertCode(t, err, apperrors.CodeForbidden)
}

func TestGetAll_AdminReceivesPage(t *testing.T) {
	repo := &mockBookingRepo{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "b1", ResourceID: "pc_1"},
				{ID: "b2", ResourceID: "pc_2"},
			}, nil
		},
		countFunc: func(ctx context.Context) (int64, error) {
			return 42, nil
		},
	}
	svc := newTestService(repo, &mockRegistry{})

	bookings, total, err := svc.GetAll(context.Background(), model.Caller{Role: model.RoleAdmin}, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(bookings))
	}
	if total != 42 {
		t.Errorf("expected total 42, got %d", total)
	}
}

func TestGetAll_CountFailureIsInternal(t *testing.T) {
	repo := &mockBookingRepo{
		countFunc: func(ctx context.Context) (int64, error) {
			return 0, fmt.Errorf("cursor timeout")
		},
	}
	svc := newTestService(repo, &mockRegistry{})

	_, _, err := svc.GetAll(context.Background(), model.Caller{Role: model.RoleAdmin}, 10, 0)
	assertCode(t, err, apperrors.CodeInternal)
}
