package handler

import (
	"encoding/json"
	"net/http"

	"trizone/internal/menu/service"
	"trizone/pkg/httputil"
	"trizone/pkg/logger"
	"trizone/pkg/middleware"
	"trizone/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type MenuHandler struct {
	service service.MenuService
	log     *logger.Logger
}

func NewMenuHandler(service service.MenuService, log *logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log,
	}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	if err := h.service.Create(r.Context(), caller, &item); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, item); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.MenuItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	item, err := h.service.Update(r.Context(), caller, ps.ByName("id"), &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, item); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := middleware.CallerFromContext(r.Context())

	if err := h.service.Delete(r.Context(), caller, ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *MenuHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/menu", h.List)
	router.POST("/api/v1/menu", h.Create)
	router.PATCH("/api/v1/menu/id/:id", h.Update)
	router.DELETE("/api/v1/menu/id/:id", h.Delete)
}
