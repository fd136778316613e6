package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

const dateLayout = "2006-01-02"

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string `json:"date" validate:"required"`
		ShiftID    int64  `json:"shiftID" validate:"required"`
		ActivityID int64  `json:"activityID" validate:"required"`
		MonitorID  int64  `json:"monitorID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.errorResponse(w, r, "date must use the YYYY-MM-DD format")
		return
	}

	session, err := h.service.CreateSession(r.Context(), date, req.ShiftID, req.ActivityID, req.MonitorID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotAlreadyBooked):
			h.errorResponse(w, r, "a session is already booked for that date and shift")
		case errors.Is(err, domain.ErrNotAMonitor):
			h.errorResponse(w, r, "the selected agent is not a monitor")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, err.Error())
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.bumpStatsVersion(r.Context())
	h.notifyMonitor(r, session, "session_booked")

	h.successResponse(w, r, "session booked", session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtxKey).(*domain.Session)
	h.successResponse(w, r, "session fetched", session)
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	// Default window matches the original calendar: today through +30 days.
	now := time.Now()
	start, end, err := parseDateRange(r, now, now.AddDate(0, 0, 30))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	views, err := h.service.ListSessions(r.Context(), start, end)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "sessions listed", views)
}

func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtxKey).(*domain.Session)

	// Capture the mail payload before the roster disappears with the session.
	msg := h.buildMonitorMail(r.Context(), session, "session_cancelled")

	if err := h.service.CancelSession(r.Context(), session.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "session not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.bumpStatsVersion(r.Context())
	h.publishMail(msg)

	h.successResponse(w, r, "session cancelled", nil)
}

func (h *Handler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtxKey).(*domain.Session)

	var req struct {
		AgentID int64 `json:"agentID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	attendance, err := h.service.AddAttendee(r.Context(), session.ID, req.AgentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateAttendance):
			h.errorResponse(w, r, "agent is already enrolled in this session")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.bumpStatsVersion(r.Context())

	h.successResponse(w, r, "attendee added", attendance)
}

func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtxKey).(*domain.Session)

	attendees, err := h.service.ListAttendees(r.Context(), session.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "session not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "attendees listed", attendees)
}

func (h *Handler) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtxKey).(*domain.Session)

	agentIDParam := chi.URLParam(r, "agentID")
	agentID, err := strconv.ParseInt(agentIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid agent id")
		return
	}

	if err := h.service.RemoveAttendee(r.Context(), session.ID, agentID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "agent is not enrolled in this session")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.bumpStatsVersion(r.Context())

	h.successResponse(w, r, "attendee removed", nil)
}

// parseDateRange reads the optional start/end query parameters, falling back
// to the given defaults.
func parseDateRange(r *http.Request, defaultStart, defaultEnd time.Time) (time.Time, time.Time, error) {
	start, end := defaultStart, defaultEnd

	if param := r.URL.Query().Get("start"); param != "" {
		parsed, err := time.Parse(dateLayout, param)
		if err != nil {
			return start, end, errors.New("start must use the YYYY-MM-DD format")
		}
		start = parsed
	}
	if param := r.URL.Query().Get("end"); param != "" {
		parsed, err := time.Parse(dateLayout, param)
		if err != nil {
			return start, end, errors.New("end must use the YYYY-MM-DD format")
		}
		end = parsed
	}

	return start, end, nil
}

// buildMonitorMail assembles the notification for the session's monitor, or
// nil when the monitor has no email address. Lookup failures only cost the
// notification, never the request.
func (h *Handler) buildMonitorMail(ctx context.Context, session *domain.Session, mailType string) *domain.MailMessage {
	monitor, err := h.service.GetAgent(ctx, session.MonitorID)
	if err != nil || monitor.Email == "" {
		return nil
	}

	shiftName, startTime, endTime := domain.UnknownShift, domain.UnknownTime, domain.UnknownTime
	if shift, err := h.service.GetShift(ctx, session.ShiftID); err == nil {
		shiftName, startTime, endTime = shift.Name, shift.StartTime, shift.EndTime
	}
	activityName := domain.UnknownActivity
	if activity, err := h.service.GetActivity(ctx, session.ActivityID); err == nil {
		activityName = activity.Name
	}

	msg := &domain.MailMessage{
		Type: mailType,
		To:   monitor.Email,
	}
	switch mailType {
	case "session_booked":
		msg.Data = domain.SessionBookedMailData{
			MonitorName:  monitor.FullName(),
			ActivityName: activityName,
			Date:         session.Date.Format(dateLayout),
			ShiftName:    shiftName,
			StartTime:    startTime,
			EndTime:      endTime,
		}
	case "session_cancelled":
		msg.Data = domain.SessionCancelledMailData{
			MonitorName:  monitor.FullName(),
			ActivityName: activityName,
			Date:         session.Date.Format(dateLayout),
			ShiftName:    shiftName,
		}
	}

	return msg
}

func (h *Handler) notifyMonitor(r *http.Request, session *domain.Session, mailType string) {
	h.publishMail(h.buildMonitorMail(r.Context(), session, mailType))
}

func (h *Handler) publishMail(msg *domain.MailMessage) {
	if msg == nil {
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("unable to serialize mail message", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"booking_email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		// Notifications are best effort; the booking already committed.
		slog.Error("unable to publish mail message", "type", msg.Type, "error", err)
	}
}
