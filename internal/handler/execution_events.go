package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

func (h *Handler) RecordExecutionEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationalPlanVersionID int64          `json:"operationalPlanVersionID" validate:"required"`
		EventType                string         `json:"eventType" validate:"required,max=255"`
		EventData                map[string]any `json:"eventData"`
		RecordedAt               *time.Time     `json:"recordedAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	recorderID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	event, err := h.service.RecordExecutionEvent(service.ExecutionEventInput{
		OperationalPlanVersionID: req.OperationalPlanVersionID,
		EventType:                req.EventType,
		EventData:                req.EventData,
		RecordedAt:               req.RecordedAt,
	}, recorderID)
	if err != nil {
		h.serviceError(w, r, err, http.StatusConflict)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Execution event recorded successfully", event)
}

func (h *Handler) GetAllExecutionEvents(w http.ResponseWriter, r *http.Request) {
	filter := domain.ExecutionEventFilter{
		EventType: r.URL.Query().Get("event_type"),
	}
	if raw := r.URL.Query().Get("operational_plan_version_id"); raw != "" {
		versionID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid operational_plan_version_id")
			return
		}
		filter.OperationalPlanVersionID = versionID
	}

	events, err := h.service.ListExecutionEvents(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", events)
}

func (h *Handler) GetExecutionEvent(w http.ResponseWriter, r *http.Request) {
	event := r.Context().Value(ExecutionEventCtx).(*domain.ExecutionEvent)

	h.successResponse(w, r, http.StatusOK, "", event)
}
