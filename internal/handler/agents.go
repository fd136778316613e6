package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/javialvarezdrive/gym-policia-local/internal/booking"
	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	filter := domain.AgentFilter{}
	for _, section := range r.URL.Query()["section"] {
		filter.Sections = append(filter.Sections, domain.Section(section))
	}
	for _, group := range r.URL.Query()["group"] {
		filter.Groups = append(filter.Groups, domain.Group(group))
	}
	filter.MonitorsOnly = r.URL.Query().Get("monitors") == "true"

	agents, err := h.service.ListAgents(r.Context(), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agents listed", agents)
}

func (h *Handler) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Badge     string `json:"badge" validate:"required,len=6,numeric"`
		Section   string `json:"section" validate:"required,oneof=Motorista Patrullas GOA Atestados"`
		Group     string `json:"group" validate:"required,oneof=G-1 G-2 G-3"`
		Email     string `json:"email" validate:"omitempty,email"`
		Phone     string `json:"phone"`
		IsMonitor bool   `json:"isMonitor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	agent, err := h.service.RegisterAgent(r.Context(), &domain.Agent{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Badge:     req.Badge,
		Section:   domain.Section(req.Section),
		Group:     domain.Group(req.Group),
		Email:     req.Email,
		Phone:     req.Phone,
		IsMonitor: req.IsMonitor,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateBadge):
			h.errorResponse(w, r, "an agent with that badge already exists")
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "agent registered", agent)
}

func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtxKey).(*domain.Agent)
	h.successResponse(w, r, "agent fetched", agent)
}

func (h *Handler) GetAgentByBadge(w http.ResponseWriter, r *http.Request) {
	badge := chi.URLParam(r, "nip")

	agent, err := h.service.GetAgentByBadge(r.Context(), badge)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "no agent with that badge")
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "agent fetched", agent)
}

func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtxKey).(*domain.Agent)

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Section   *string `json:"section" validate:"omitempty,oneof=Motorista Patrullas GOA Atestados"`
		Group     *string `json:"group" validate:"omitempty,oneof=G-1 G-2 G-3"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Phone     *string `json:"phone"`
		IsMonitor *bool   `json:"isMonitor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := booking.AgentPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsMonitor: req.IsMonitor,
	}
	if req.Section != nil {
		section := domain.Section(*req.Section)
		patch.Section = &section
	}
	if req.Group != nil {
		group := domain.Group(*req.Group)
		patch.Group = &group
	}

	updated, err := h.service.UpdateAgent(r.Context(), agent.ID, patch)
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

	h.successResponse(w, r, "agent updated", updated)
}

func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	agent := r.Context().Value(AgentCtxKey).(*domain.Agent)

	if err := h.service.DeleteAgent(r.Context(), agent.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInUse):
			h.errorResponse(w, r, "agent leads or attends sessions and cannot be deleted")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "agent not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "agent deleted", nil)
}
