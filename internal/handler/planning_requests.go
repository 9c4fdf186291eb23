package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

type planningRequestItemReq struct {
	RouteID   int64  `json:"routeID" validate:"required"`
	Capacity  int32  `json:"capacity" validate:"required,min=1"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

func itemInputsFromReq(items []planningRequestItemReq) []service.PlanningRequestItemInput {
	inputs := make([]service.PlanningRequestItemInput, len(items))
	for i, item := range items {
		// the datetime tag already guaranteed the format
		startDate, _ := time.Parse(time.DateOnly, item.StartDate)
		endDate, _ := time.Parse(time.DateOnly, item.EndDate)
		inputs[i] = service.PlanningRequestItemInput{
			RouteID:   item.RouteID,
			Capacity:  item.Capacity,
			StartDate: startDate,
			EndDate:   endDate,
		}
	}
	return inputs
}

func (h *Handler) CreatePlanningRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []planningRequestItemReq `json:"items" validate:"required,min=1,dive"`
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

	request, err := h.service.CreatePlanningRequest(itemInputsFromReq(req.Items), creatorID)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Planning request created successfully", request)
}

func (h *Handler) GetAllPlanningRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.GetAllPlanningRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", requests)
}

func (h *Handler) GetSubmittedPlanningRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.GetPlanningRequestsByStatus(domain.StatusSubmitted)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", requests)
}

func (h *Handler) GetDraftPlanningRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.GetPlanningRequestsByStatus(domain.StatusDraft)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", requests)
}

func (h *Handler) GetPlanningRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(PlanningRequestCtx).(*domain.PlanningRequest)

	h.successResponse(w, r, http.StatusOK, "", request)
}

func (h *Handler) UpdatePlanningRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(PlanningRequestCtx).(*domain.PlanningRequest)

	var req struct {
		Items []planningRequestItemReq `json:"items" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request, err := h.service.ReplacePlanningRequestItems(request, itemInputsFromReq(req.Items))
	if err != nil {
		h.serviceError(w, r, err, http.StatusForbidden)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Planning request updated successfully", request)
}

func (h *Handler) DeletePlanningRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(PlanningRequestCtx).(*domain.PlanningRequest)

	if err := h.service.DeletePlanningRequest(request); err != nil {
		h.serviceError(w, r, err, http.StatusForbidden)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Planning request deleted successfully", nil)
}

func (h *Handler) SubmitPlanningRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(PlanningRequestCtx).(*domain.PlanningRequest)

	request, err := h.service.SubmitPlanningRequest(request)
	if err != nil {
		h.serviceError(w, r, err, http.StatusBadRequest)
		return
	}

	h.notifyRequestSubmitted(r, request)

	h.successResponse(w, r, http.StatusOK, "Planning request submitted successfully", request)
}

// notifyRequestSubmitted tells the planning team a request is ready for them.
// The submission already committed, so a publish failure is logged and the
// response stays successful.
func (h *Handler) notifyRequestSubmitted(r *http.Request, request *domain.PlanningRequest) {
	submitterName := ""
	if callerID, err := h.callerID(r); err == nil {
		if caller, err := h.service.GetUser(callerID); err == nil {
			submitterName = caller.Name
		}
	}

	emails, err := h.service.TeamEmails(domain.RoleTeamB)
	if err != nil {
		slog.Error("failed to look up notification recipients", "requestID", request.ID, "error", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	submittedAt := time.Now()
	if request.SubmittedAt != nil {
		submittedAt = *request.SubmittedAt
	}

	msg := domain.NotificationMessage{
		Type: domain.NotificationRequestSubmitted,
		To:   emails,
		Data: domain.RequestSubmittedData{
			RequestID:   request.ID,
			SubmittedBy: submitterName,
			SubmittedAt: submittedAt,
			ItemCount:   len(request.Items),
		},
	}
	if err := h.notifier.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish submission notification", "requestID", request.ID, "error", err)
	}
}
