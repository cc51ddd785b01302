package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	registryerrors "trizone/internal/registry/errors"
	"trizone/internal/registry/repository"
	"trizone/pkg/config"
	apperrors "trizone/pkg/errors"
	"trizone/pkg/events"
	"trizone/pkg/model"
)

// RegistryService is the single owner of resource status. Every transition
// goes through one conditional update in the repository, so two concurrent
// reservations of the same resource can never both succeed.
type RegistryService interface {
	Get(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context) ([]*model.Resource, error)
	Reserve(ctx context.Context, id string) (*model.Resource, error)
	Release(ctx context.Context, caller model.Caller, id string) (*model.Resource, error)
	ToggleMaintenance(ctx context.Context, caller model.Caller, id string) (*model.Resource, error)
	Seed(ctx context.Context) error
}

type registryService struct {
	repo      repository.ResourceRepository
	publisher events.Publisher
	cfg       *config.Config
}

func NewRegistryService(repo repository.ResourceRepository, publisher events.Publisher, cfg *config.Config) RegistryService {
	return &registryService{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *registryService) Get(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, registryerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", id)
		}
		return nil, apperrors.Internal("Failed to retrieve resource", err)
	}

	return resource, nil
}

func (s *registryService) List(ctx context.Context) ([]*model.Resource, error) {
	resources, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list resources", "error", err)
		return nil, apperrors.Internal("Failed to retrieve resources", err)
	}

	return resources, nil
}

func (s *registryService) Reserve(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := s.repo.SwapStatus(ctx, id, model.StatusAvailable, model.StatusOccupied)
	if err != nil {
		if errors.Is(err, registryerrors.ErrStatusChanged) {
			return nil, s.classifySwapFailure(ctx, id, "Resource is not available")
		}
		s.cfg.Log.Error("Failed to reserve resource", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to reserve resource", err)
	}

	s.cfg.Log.Info("Resource reserved", "id", id)
	s.publishStatusChange(ctx, id, model.StatusAvailable, model.StatusOccupied)
	return resource, nil
}

func (s *registryService) Release(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Admin role required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := s.repo.SwapStatus(ctx, id, model.StatusOccupied, model.StatusAvailable)
	if err != nil {
		if errors.Is(err, registryerrors.ErrStatusChanged) {
			return nil, s.classifySwapFailure(ctx, id, "Resource is not occupied")
		}
		s.cfg.Log.Error("Failed to release resource", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to release resource", err)
	}

	s.cfg.Log.Info("Resource released", "id", id)
	s.publishStatusChange(ctx, id, model.StatusOccupied, model.StatusAvailable)
	return resource, nil
}

// ToggleMaintenance flips a resource between available and maintenance. An
// occupied resource is rejected with a conflict: forcing maintenance would
// silently orphan the active booking.
func (s *registryService) ToggleMaintenance(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Admin role required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var from, to string
	switch current.Status {
	case model.StatusAvailable:
		from, to = model.StatusAvailable, model.StatusMaintenance
	case model.StatusMaintenance:
		from, to = model.StatusMaintenance, model.StatusAvailable
	case model.StatusOccupied:
		return nil, apperrors.Conflict("Resource is occupied; release it before toggling maintenance")
	default:
		return nil, apperrors.Internal("Resource has unknown status", fmt.Errorf("status %q", current.Status))
	}

	resource, err := s.repo.SwapStatus(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, registryerrors.ErrStatusChanged) {
			// Status moved between the read and the swap.
			return nil, s.classifySwapFailure(ctx, id, "Resource status changed concurrently")
		}
		s.cfg.Log.Error("Failed to toggle maintenance", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to toggle maintenance", err)
	}

	s.cfg.Log.Info("Maintenance toggled", "id", id, "from", from, "to", to)
	s.publishStatusChange(ctx, id, from, to)
	return resource, nil
}

func (s *registryService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count resources", err)
	}
	if count > 0 {
		s.cfg.Log.Debug("Resource registry already provisioned", "count", count)
		return nil
	}

	resources := make([]*model.Resource, 0, s.cfg.SeedWorkstations+s.cfg.SeedLounges)
	seq := 0
	for i := 1; i <= s.cfg.SeedWorkstations; i++ {
		seq++
		resources = append(resources, &model.Resource{
			ID:     fmt.Sprintf("pc_%d", i),
			Name:   fmt.Sprintf("Station %d", i),
			Kind:   model.KindWorkstation,
			Status: model.StatusAvailable,
			Seq:    seq,
		})
	}
	for i := 1; i <= s.cfg.SeedLounges; i++ {
		seq++
		resources = append(resources, &model.Resource{
			ID:     fmt.Sprintf("rm_%d", i),
			Name:   fmt.Sprintf("Lounge %c", 'A'+i-1),
			Kind:   model.KindLounge,
			Status: model.StatusAvailable,
			Seq:    seq,
		})
	}

	if len(resources) == 0 {
		return nil
	}

	if err := s.repo.InsertMany(ctx, resources); err != nil {
		return apperrors.Internal("Failed to seed resources", err)
	}

	s.cfg.Log.Info("Seeded resource registry",
		"workstations", s.cfg.SeedWorkstations,
		"lounges", s.cfg.SeedLounges,
	)
	return nil
}

// classifySwapFailure decides whether a failed conditional update was a
// missing resource or a status conflict. The follow-up read is advisory only;
// the swap itself stays the single atomic step.
func (s *registryService) classifySwapFailure(ctx context.Context, id string, conflictMsg string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, registryerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Resource", id)
		}
		return apperrors.Internal("Failed to inspect resource after conflict", err)
	}

	return apperrors.Conflict(conflictMsg).WithDetails(map[string]any{
		"id":     id,
		"status": current.Status,
	})
}

func (s *registryService) publishStatusChange(ctx context.Context, id, from, to string) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, events.TypeResourceStatusChanged, id, events.ResourceStatusChanged{
		ResourceID: id,
		From:       from,
		To:         to,
		At:         time.Now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish status change event", "id", id, "error", err)
	}
}
