package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "trizone/pkg/errors"
	"trizone/pkg/logger"
	"trizone/pkg/middleware"
	"trizone/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockRegistryService struct {
	getFunc     func(ctx context.Context, id string) (*model.Resource, error)
	listFunc    func(ctx context.Context) ([]*model.Resource, error)
	reserveFunc func(ctx context.Context, id string) (*model.Resource, error)
	releaseFunc func(ctx context.Context, caller model.Caller, id string) (*model.Resource, error)
	toggleFunc  func(ctx context.Context, caller model.Caller, id string) (*model.Resource, error)
}

func (m *mockRegistryService) Get(ctx context.Context, id string) (*model.Resource, error) {
	return m.getFunc(ctx, id)
}

func (m *mockRegistryService) List(ctx context.Context) ([]*model.Resource, error) {
	return m.listFunc(ctx)
}

func (m *mockRegistryService) Reserve(ctx context.Context, id string) (*model.Resource, error) {
	return m.reserveFunc(ctx, id)
}

func (m *mockRegistryService) Release(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	return m.releaseFunc(ctx, caller, id)
}

func (m *mockRegistryService) ToggleMaintenance(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
	return m.toggleFunc(ctx, caller, id)
}

func (m *mockRegistryService) Seed(ctx context.Context) error { return nil }

func newTestRouter(svc *mockRegistryService) http.Handler {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	router := httprouter.New()
	NewResourceHandler(svc, log).RegisterRoutes(router)
	return middleware.CallerFromHeader()(router)
}

func TestList_ReturnsResources(t *testing.T) {
	svc := &mockRegistryService{
		listFunc: func(ctx context.Context) ([]*model.Resource, error) {
			return []*model.Resource{
				{ID: "pc_1", Name: "Station 1", Kind: model.KindWorkstation, Status: model.StatusAvailable, Seq: 1},
				{ID: "rm_1", Name: "Lounge A", Kind: model.KindLounge, Status: model.StatusOccupied, Seq: 11},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []model.Resource `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resp.Data))
	}
	if resp.Data[0].ID != "pc_1" || resp.Data[1].Status != model.StatusOccupied {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
}

func TestToggleMaintenance_PassesCallerFromHeader(t *testing.T) {
	var gotCaller model.Caller
	var gotID string
	svc := &mockRegistryService{
		toggleFunc: func(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
			gotCaller, gotID = caller, id
			return &model.Resource{ID: id, Status: model.StatusMaintenance}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources/id/pc_3/maintenance", nil)
	req.Header.Set(middleware.RoleHeader, model.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotCaller.IsAdmin() {
		t.Error("expected admin caller to reach the service")
	}
	if gotID != "pc_3" {
		t.Errorf("expected id pc_3, got %s", gotID)
	}
}

func TestToggleMaintenance_GuestGets403(t *testing.T) {
	svc := &mockRegistryService{
		toggleFunc: func(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
			if !caller.IsAdmin() {
				return nil, apperrors.Forbidden("Admin role required")
			}
			return &model.Resource{ID: id}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources/id/pc_3/maintenance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRelease_ConflictGets409(t *testing.T) {
	svc := &mockRegistryService{
		releaseFunc: func(ctx context.Context, caller model.Caller, id string) (*model.Resource, error) {
			return nil, apperrors.Conflict("Resource is not occupied")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources/id/pc_1/release", nil)
	req.Header.Set(middleware.RoleHeader, model.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}
