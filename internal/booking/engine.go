package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// CreateSession books an activity into the (date, shift) slot under a monitor.
// The shift, activity and monitor must resolve, and the monitor must carry the
// monitor flag. Slot uniqueness is enforced by the store's constrained insert:
// of N concurrent calls for the same slot exactly one succeeds and the rest
// observe domain.ErrSlotAlreadyBooked.
func (s *Service) CreateSession(ctx context.Context, date time.Time, shiftID, activityID, monitorID int64) (*domain.Session, error) {
	date = normalizeDate(date)

	if !s.allowPastDates && date.Before(normalizeDate(s.now())) {
		return nil, domain.NewValidationError("date", "past dates cannot be booked")
	}

	if _, err := s.store.GetShift(ctx, shiftID); err != nil {
		return nil, fmt.Errorf("shift %d: %w", shiftID, err)
	}
	if _, err := s.store.GetActivity(ctx, activityID); err != nil {
		return nil, fmt.Errorf("activity %d: %w", activityID, err)
	}
	monitor, err := s.store.GetAgent(ctx, monitorID)
	if err != nil {
		return nil, fmt.Errorf("monitor %d: %w", monitorID, err)
	}
	if !monitor.IsMonitor {
		return nil, domain.ErrNotAMonitor
	}

	session := &domain.Session{
		Date:       date,
		ShiftID:    shiftID,
		ActivityID: activityID,
		MonitorID:  monitorID,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	return s.store.GetSession(ctx, id)
}

// CancelSession removes the session and its whole roster in one atomic
// operation; no observer sees the session without its attendance or vice
// versa.
func (s *Service) CancelSession(ctx context.Context, id int64) error {
	return s.store.DeleteSessionCascade(ctx, id)
}

// AddAttendee enrolls an agent in a session. Duplicate enrollment of the same
// (session, agent) pair fails with domain.ErrDuplicateAttendance regardless of
// interleaving.
func (s *Service) AddAttendee(ctx context.Context, sessionID, agentID int64) (*domain.Attendance, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, err)
	}
	if _, err := s.store.GetAgent(ctx, agentID); err != nil {
		return nil, fmt.Errorf("agent %d: %w", agentID, err)
	}

	attendance := &domain.Attendance{
		SessionID: sessionID,
		AgentID:   agentID,
	}
	if err := s.store.CreateAttendance(ctx, attendance); err != nil {
		return nil, err
	}

	return attendance, nil
}

// RemoveAttendee drops an agent from a session's roster. Removing an agent who
// is not enrolled reports domain.ErrNotFound; callers may treat that as
// benign.
func (s *Service) RemoveAttendee(ctx context.Context, sessionID, agentID int64) error {
	return s.store.DeleteAttendance(ctx, sessionID, agentID)
}

// ListAttendees returns the session's roster in enrollment order.
func (s *Service) ListAttendees(ctx context.Context, sessionID int64) ([]*domain.Agent, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, err)
	}
	return s.store.ListSessionAttendees(ctx, sessionID)
}
