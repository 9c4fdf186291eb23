package handler

import (
	"net/http"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     string         `json:"type" validate:"required,oneof=vehicle worker"`
		Name     string         `json:"name" validate:"required,max=255"`
		Details  map[string]any `json:"details"`
		IsActive *bool          `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	resource, err := h.service.CreateResource(service.ResourceInput{
		Type:     domain.ResourceType(req.Type),
		Name:     req.Name,
		Details:  req.Details,
		IsActive: isActive,
	})
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Resource created successfully", resource)
}

func (h *Handler) GetAllResources(w http.ResponseWriter, r *http.Request) {
	filter := domain.ResourceFilter{
		Type:       domain.ResourceType(r.URL.Query().Get("type")),
		ActiveOnly: r.URL.Query().Get("active_only") == "true",
	}

	resources, err := h.service.GetAllResources(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", resources)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)

	h.successResponse(w, r, http.StatusOK, "", resource)
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)

	var req struct {
		Type     *string        `json:"type" validate:"omitempty,oneof=vehicle worker"`
		Name     *string        `json:"name" validate:"omitempty,max=255"`
		Details  map[string]any `json:"details"`
		IsActive *bool          `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	input := service.ResourceInput{
		Type:     resource.Type,
		Name:     resource.Name,
		Details:  resource.Details,
		IsActive: resource.IsActive,
	}
	if req.Type != nil {
		input.Type = domain.ResourceType(*req.Type)
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Details != nil {
		input.Details = req.Details
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}

	resource, err := h.service.UpdateResource(resource, input)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Resource updated successfully", resource)
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)

	if err := h.service.DeleteResource(resource); err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Resource deleted successfully", nil)
}
