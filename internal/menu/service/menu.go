package service

import (
	"context"
	"errors"

	menuerrors "trizone/internal/menu/errors"
	"trizone/internal/menu/repository"
	"trizone/pkg/config"
	apperrors "trizone/pkg/errors"
	"trizone/pkg/model"

	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
)

const listCacheKey = "menu:list"

type MenuService interface {
	List(ctx context.Context) ([]*model.MenuItem, error)
	Create(ctx context.Context, caller model.Caller, item *model.MenuItem) error
	Update(ctx context.Context, caller model.Caller, id string, update *model.MenuItemUpdate) (*model.MenuItem, error)
	Delete(ctx context.Context, caller model.Caller, id string) error
	Seed(ctx context.Context) error
}

type menuService struct {
	repo     repository.MenuRepository
	validate *validator.Validate
	cache    *gocache.Cache
	cfg      *config.Config
}

func NewMenuService(repo repository.MenuRepository, cfg *config.Config) MenuService {
	return &menuService{
		repo:     repo,
		validate: validator.New(),
		cache:    gocache.New(cfg.MenuCacheTTL, 2*cfg.MenuCacheTTL),
		cfg:      cfg,
	}
}

// List serves from a short-lived cache; the catalog changes rarely and every
// page load of the frontend fetches it.
func (s *menuService) List(ctx context.Context) ([]*model.MenuItem, error) {
	if cached, found := s.cache.Get(listCacheKey); found {
		if items, ok := cached.([]*model.MenuItem); ok {
			return items, nil
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list menu items", "error", err)
		return nil, apperrors.Internal("Failed to retrieve menu", err)
	}

	s.cache.SetDefault(listCacheKey, items)
	return items, nil
}

func (s *menuService) Create(ctx context.Context, caller model.Caller, item *model.MenuItem) error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("Admin role required")
	}

	if item.Icon == "" {
		item.Icon = model.DefaultMenuIcon
	}
	if err := s.validate.Struct(item); err != nil {
		s.cfg.Log.Warn("Menu item validation failed", "error", err)
		return apperrors.Validation("Menu item validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.cfg.Log.Error("Failed to create menu item", "error", err)
		return apperrors.Internal("Failed to create menu item", err)
	}

	s.cache.Delete(listCacheKey)
	s.cfg.Log.Info("Menu item created", "id", item.ID, "name", item.Name)
	return nil
}

func (s *menuService) Update(ctx context.Context, caller model.Caller, id string, update *model.MenuItemUpdate) (*model.MenuItem, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Admin role required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Menu item ID cannot be empty")
	}
	if update.Name == "" && update.Price == nil && update.Icon == "" {
		return nil, apperrors.InvalidInput("Nothing to update")
	}
	if err := s.validate.Struct(update); err != nil {
		s.cfg.Log.Warn("Menu item update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	item, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, menuerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Menu item", id)
		}
		if errors.Is(err, menuerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid menu item ID format")
		}
		s.cfg.Log.Error("Failed to update menu item", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update menu item", err)
	}

	s.cache.Delete(listCacheKey)
	s.cfg.Log.Info("Menu item updated", "id", id)
	return item, nil
}

func (s *menuService) Delete(ctx context.Context, caller model.Caller, id string) error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("Admin role required")
	}
	if id == "" {
		return apperrors.InvalidInput("Menu item ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, menuerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Menu item", id)
		}
		if errors.Is(err, menuerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid menu item ID format")
		}
		s.cfg.Log.Error("Failed to delete menu item", "id", id, "error", err)
		return apperrors.Internal("Failed to delete menu item", err)
	}

	s.cache.Delete(listCacheKey)
	s.cfg.Log.Info("Menu item deleted", "id", id)
	return nil
}

func (s *menuService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count menu items", err)
	}
	if count > 0 {
		s.cfg.Log.Debug("Menu already provisioned", "count", count)
		return nil
	}

	items := []*model.MenuItem{
		{Name: "Neon Burger", Price: 120, Icon: "ph-hamburger"},
		{Name: "Cyber Soda", Price: 45, Icon: "ph-coffee"},
		{Name: "Power Fries", Price: 80, Icon: "ph-pizza"},
		{Name: "Energy Shot", Price: 60, Icon: "ph-lightning"},
	}

	if err := s.repo.InsertMany(ctx, items); err != nil {
		return apperrors.Internal("Failed to seed menu", err)
	}

	s.cfg.Log.Info("Seeded menu", "items", len(items))
	return nil
}
