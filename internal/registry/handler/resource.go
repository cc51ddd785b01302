package handler

import (
	"net/http"

	"trizone/internal/registry/service"
	"trizone/pkg/httputil"
	"trizone/pkg/logger"
	"trizone/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type ResourceHandler struct {
	service service.RegistryService
	log     *logger.Logger
}

func NewResourceHandler(service service.RegistryService, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		log:     log,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resources, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resources); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *ResourceHandler) ToggleMaintenance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := middleware.CallerFromContext(r.Context())

	resource, err := h.service.ToggleMaintenance(r.Context(), caller, ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleMaintenance", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "ToggleMaintenance", "error", err)
	}
}

func (h *ResourceHandler) Release(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := middleware.CallerFromContext(r.Context())

	resource, err := h.service.Release(r.Context(), caller, ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Release", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "Release", "error", err)
	}
}

func (h *ResourceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/resources", h.List)
	router.POST("/api/v1/resources/id/:id/maintenance", h.ToggleMaintenance)
	router.POST("/api/v1/resources/id/:id/release", h.Release)
}
