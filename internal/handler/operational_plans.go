package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type versionResourceReq struct {
	ResourceID  int64  `json:"resourceID" validate:"required"`
	Capacity    int32  `json:"capacity" validate:"required,min=1"`
	IsPermanent bool   `json:"isPermanent"`
	Notes       string `json:"notes"`
}

type planVersionReq struct {
	ValidFrom string               `json:"validFrom" validate:"required,datetime=2006-01-02"`
	ValidTo   string               `json:"validTo" validate:"required,datetime=2006-01-02"`
	Notes     string               `json:"notes"`
	IsActive  bool                 `json:"isActive"`
	Resources []versionResourceReq `json:"resources" validate:"dive"`
}

func versionInputFromReq(req planVersionReq) service.PlanVersionInput {
	validFrom, _ := time.Parse(time.DateOnly, req.ValidFrom)
	validTo, _ := time.Parse(time.DateOnly, req.ValidTo)

	resources := make([]service.VersionResourceInput, len(req.Resources))
	for i, resource := range req.Resources {
		resources[i] = service.VersionResourceInput{
			ResourceID:  resource.ResourceID,
			Capacity:    resource.Capacity,
			IsPermanent: resource.IsPermanent,
			Notes:       resource.Notes,
		}
	}

	return service.PlanVersionInput{
		ValidFrom: validFrom,
		ValidTo:   validTo,
		Notes:     req.Notes,
		IsActive:  req.IsActive,
		Resources: resources,
	}
}

func (h *Handler) CreateOperationalPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanningRequestItemID int64          `json:"planningRequestItemID" validate:"required"`
		Version               planVersionReq `json:"version" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	creatorID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := h.service.CreateOperationalPlan(req.PlanningRequestItemID, versionInputFromReq(req.Version), creatorID)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Operational plan created successfully", plan)
}

func (h *Handler) GetAllOperationalPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.GetAllOperationalPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", plans)
}

func (h *Handler) GetActiveOperationalPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.GetActiveOperationalPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", plans)
}

func (h *Handler) GetOperationalPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(OperationalPlanCtx).(*domain.OperationalPlan)

	h.successResponse(w, r, http.StatusOK, "", plan)
}

func (h *Handler) CreatePlanVersion(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(OperationalPlanCtx).(*domain.OperationalPlan)

	var req planVersionReq
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	creatorID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	version, err := h.service.CreatePlanVersion(plan, versionInputFromReq(req), creatorID)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Plan version created successfully", version)
}

func (h *Handler) SuggestVersionResources(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	itemID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid planning request item id")
		return
	}

	suggestions, err := h.service.SuggestVersionResources(itemID)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", suggestions)
}

func (h *Handler) GetPlanVersion(w http.ResponseWriter, r *http.Request) {
	version := r.Context().Value(PlanVersionCtx).(*domain.OperationalPlanVersion)

	h.successResponse(w, r, http.StatusOK, "", version)
}

func (h *Handler) ActivatePlanVersion(w http.ResponseWriter, r *http.Request) {
	version := r.Context().Value(PlanVersionCtx).(*domain.OperationalPlanVersion)

	version, err := h.service.ActivatePlanVersion(version)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Plan version activated successfully", version)
}
