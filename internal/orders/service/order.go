package service

import (
	"context"
	"sync"
	"time"

	"trizone/internal/orders/repository"
	"trizone/pkg/config"
	apperrors "trizone/pkg/errors"
	"trizone/pkg/events"
	"trizone/pkg/model"

	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	Place(ctx context.Context, order *model.Order) error
	GetAll(ctx context.Context, caller model.Caller, limit int, offset int64) ([]*model.Order, int64, error)
}

type orderService struct {
	repo      repository.OrderRepository
	validate  *validator.Validate
	publisher events.Publisher
	cfg       *config.Config
}

func NewOrderService(repo repository.OrderRepository, publisher events.Publisher, cfg *config.Config) OrderService {
	return &orderService{
		repo:      repo,
		validate:  validator.New(),
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *orderService) Place(ctx context.Context, order *model.Order) error {
	s.applyDefaults(order)
	if err := s.validate.Struct(order); err != nil {
		s.cfg.Log.Warn("Order validation failed", "error", err)
		return apperrors.Validation("Order validation failed", map[string]any{"error": err.Error()})
	}

	order.Status = model.OrderStatusPending
	order.Timestamp = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Create(ctx, order); err != nil {
		s.cfg.Log.Error("Failed to place order", "error", err)
		return apperrors.Internal("Failed to place order", err)
	}

	s.cfg.Log.Info("Order placed", "id", order.ID, "user", order.User, "total", order.Total)
	s.publishPlaced(ctx, order)
	return nil
}

func (s *orderService) GetAll(ctx context.Context, caller model.Caller, limit int, offset int64) ([]*model.Order, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Admin role required")
	}

	var count int64
	var orders []*model.Order
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count orders", "error", errCount)
			errCount = apperrors.Internal("Failed to count orders", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		orders, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list orders", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve orders", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return orders, count, nil
}

func (s *orderService) applyDefaults(order *model.Order) {
	if order.User == "" {
		order.User = "Guest"
	}
	if order.DeliveryType == "" {
		order.DeliveryType = model.DeliveryTypePickup
	}
	for i := range order.Items {
		if order.Items[i].Qty == 0 {
			order.Items[i].Qty = 1
		}
	}
}

func (s *orderService) publishPlaced(ctx context.Context, order *model.Order) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, events.TypeOrderPlaced, order.ID, events.OrderPlaced{
		OrderID:      order.ID,
		User:         order.User,
		Total:        order.Total,
		DeliveryType: order.DeliveryType,
		PlacedAt:     order.Timestamp,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish order placed event", "id", order.ID, "error", err)
	}
}
