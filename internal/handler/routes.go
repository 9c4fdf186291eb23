package handler

import (
	"errors"
	"net/http"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,max=255"`
		Identifier  string `json:"identifier" validate:"required,max=255"`
		Description string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	route, err := h.service.CreateRoute(service.RouteInput{
		Name:        req.Name,
		Identifier:  req.Identifier,
		Description: req.Description,
	})
	if err != nil {
		// the unique index backs up the service-level check under races
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "routes_identifier_key":
			h.validationFailed(w, r, map[string][]string{"identifier": {"identifier is already taken"}})
		default:
			h.serviceError(w, r, err, http.StatusConflict)
		}
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Route created successfully", route)
}

func (h *Handler) GetAllRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.GetAllRoutes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", routes)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	h.successResponse(w, r, http.StatusOK, "", route)
}

func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	var req struct {
		Name        *string `json:"name" validate:"omitempty,max=255"`
		Identifier  *string `json:"identifier" validate:"omitempty,max=255"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	input := service.RouteInput{
		Name:        route.Name,
		Identifier:  route.Identifier,
		Description: route.Description,
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Identifier != nil {
		input.Identifier = *req.Identifier
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	route, err := h.service.UpdateRoute(route, input)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "routes_identifier_key":
			h.validationFailed(w, r, map[string][]string{"identifier": {"identifier is already taken"}})
		default:
			h.serviceError(w, r, err, http.StatusConflict)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "Route updated successfully", route)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	if err := h.service.DeleteRoute(route); err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Route deleted successfully", nil)
}
