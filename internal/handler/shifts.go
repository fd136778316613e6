package handler

import (
	"errors"
	"net/http"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.ListShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts listed", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.service.CreateShift(r.Context(), req.Name, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	var req struct {
		Name      *string `json:"name"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.service.UpdateShift(r.Context(), shift.ID, req.Name, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "update failed, please retry")
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift updated", updated)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	if err := h.service.DeleteShift(r.Context(), shift.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInUse):
			h.errorResponse(w, r, "shift has booked sessions and cannot be deleted")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}
