package service

import (
	"context"
	"sync"
	"time"

	"trizone/internal/bookings/repository"
	"trizone/internal/bookings/validator"
	registryservice "trizone/internal/registry/service"
	"trizone/pkg/config"
	apperrors "trizone/pkg/errors"
	"trizone/pkg/events"
	"trizone/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetAll(ctx context.Context, caller model.Caller, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	registry  registryservice.RegistryService
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	registry registryservice.RegistryService,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		registry:  registry,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create fulfills a reservation request. The registry's conditional reserve
// completes before the booking record is written; a crash between the two
// steps can leave an occupied resource without a booking (recoverable via the
// release operation), never a booking without an occupied resource.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.applyDefaults(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	resource, err := s.registry.Reserve(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(time.Millisecond)
	end := start.Add(time.Duration(req.DurationHours * float64(time.Hour)))

	booking := &model.Booking{
		ResourceID:    resource.ID,
		ResourceName:  resource.Name,
		User:          req.User,
		DurationHours: req.DurationHours,
		RatePerHour:   req.RatePerHour,
		Start:         start,
		End:           end,
		Total:         req.RatePerHour * req.DurationHours,
		CreatedAt:     start,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// The resource stays occupied without a booking record; surface the
		// failure and leave recovery to the admin release path.
		s.cfg.Log.Error("Failed to persist booking for reserved resource",
			"resource_id", resource.ID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"resource_id", booking.ResourceID,
		"user", booking.User,
		"total", booking.Total,
	)
	s.publishCreated(ctx, booking)
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, caller model.Caller, limit int, offset int64) ([]*model.Booking, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Admin role required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) applyDefaults(req *model.BookingRequest) {
	if req.User == "" {
		req.User = "Guest"
	}
	if req.DurationHours == 0 {
		req.DurationHours = s.cfg.DefaultBookingHours
	}
	if req.RatePerHour == 0 {
		req.RatePerHour = s.cfg.DefaultRatePerHour
	}
}

func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, events.TypeBookingCreated, booking.ResourceID, events.BookingCreated{
		BookingID:    booking.ID,
		ResourceID:   booking.ResourceID,
		ResourceName: booking.ResourceName,
		User:         booking.User,
		Start:        booking.Start,
		End:          booking.End,
		Total:        booking.Total,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish booking created event", "id", booking.ID, "error", err)
	}
}
