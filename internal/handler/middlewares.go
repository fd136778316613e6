package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog mangles multi-line stacks
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) activityCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		activityIDParam := chi.URLParam(r, "id")
		activityID, err := strconv.ParseInt(activityIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid activity id")
			return
		}

		activity, err := h.service.GetActivity(r.Context(), activityID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				h.errorResponse(w, r, "activity not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ActivityCtxKey, activity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shiftIDParam := chi.URLParam(r, "id")
		shiftID, err := strconv.ParseInt(shiftIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid shift id")
			return
		}

		shift, err := h.service.GetShift(r.Context(), shiftID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				h.errorResponse(w, r, "shift not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtxKey, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) agentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentIDParam := chi.URLParam(r, "id")
		agentID, err := strconv.ParseInt(agentIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid agent id")
			return
		}

		agent, err := h.service.GetAgent(r.Context(), agentID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				h.errorResponse(w, r, "agent not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), AgentCtxKey, agent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionIDParam := chi.URLParam(r, "id")
		sessionID, err := strconv.ParseInt(sessionIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid session id")
			return
		}

		session, err := h.service.GetSession(r.Context(), sessionID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				h.errorResponse(w, r, "session not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), SessionCtxKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
