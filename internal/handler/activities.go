package handler

import (
	"errors"
	"net/http"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "activities listed", activities)
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
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

	activity, err := h.service.CreateActivity(r.Context(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateActivityName):
			h.errorResponse(w, r, "an activity with that name already exists")
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "activity created", activity)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtxKey).(*domain.Activity)
	h.successResponse(w, r, "activity fetched", activity)
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtxKey).(*domain.Activity)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.service.UpdateActivity(r.Context(), activity.ID, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateActivityName):
			h.errorResponse(w, r, "an activity with that name already exists")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "update failed, please retry")
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "activity updated", updated)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtxKey).(*domain.Activity)

	if err := h.service.DeleteActivity(r.Context(), activity.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInUse):
			h.errorResponse(w, r, "activity has booked sessions and cannot be deleted")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "activity not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "activity deleted", nil)
}
