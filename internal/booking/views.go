package booking

import (
	"context"
	"sort"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// ListSessions returns the calendar rows for the date range, inclusive on both
// ends. Shift, activity and monitor are resolved with batched lookups; a
// reference that no longer resolves yields an explicit unknown placeholder
// instead of failing or dropping the row. Rows are ordered by date ascending,
// then shift name.
func (s *Service) ListSessions(ctx context.Context, start, end time.Time) ([]*domain.SessionView, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if start.After(end) {
		return nil, domain.NewValidationError("start", "must not be after the end date")
	}

	sessions, err := s.store.ListSessionsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []*domain.SessionView{}, nil
	}

	shiftIDs := make([]int64, 0, len(sessions))
	activityIDs := make([]int64, 0, len(sessions))
	monitorIDs := make([]int64, 0, len(sessions))
	sessionIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		shiftIDs = append(shiftIDs, session.ShiftID)
		activityIDs = append(activityIDs, session.ActivityID)
		monitorIDs = append(monitorIDs, session.MonitorID)
		sessionIDs = append(sessionIDs, session.ID)
	}

	shifts, err := s.store.GetShiftsByIDs(ctx, shiftIDs)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.GetActivitiesByIDs(ctx, activityIDs)
	if err != nil {
		return nil, err
	}
	monitors, err := s.store.GetAgentsByIDs(ctx, monitorIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CountAttendees(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.SessionView, 0, len(sessions))
	for _, session := range sessions {
		view := &domain.SessionView{
			ID:            session.ID,
			Date:          session.Date,
			ShiftName:     domain.UnknownShift,
			StartTime:     domain.UnknownTime,
			EndTime:       domain.UnknownTime,
			ActivityName:  domain.UnknownActivity,
			MonitorName:   domain.UnknownMonitor,
			AttendeeCount: counts[session.ID],
		}
		if shift, ok := shifts[session.ShiftID]; ok {
			view.ShiftName = shift.Name
			view.StartTime = shift.StartTime
			view.EndTime = shift.EndTime
		}
		if activity, ok := activities[session.ActivityID]; ok {
			view.ActivityName = activity.Name
		}
		if monitor, ok := monitors[session.MonitorID]; ok {
			view.MonitorName = monitor.FullName()
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Date.Equal(views[j].Date) {
			return views[i].Date.Before(views[j].Date)
		}
		return views[i].ShiftName < views[j].ShiftName
	})

	return views, nil
}

// AttendanceStats counts each agent's attendance inside the date range. Every
// registered agent appears, zero-filled when they attended nothing, so
// least-active reporting is complete. Rows are ordered by count descending,
// then full name.
func (s *Service) AttendanceStats(ctx context.Context, start, end time.Time) ([]*domain.AgentParticipation, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if start.After(end) {
		return nil, domain.NewValidationError("start", "must not be after the end date")
	}

	agents, err := s.store.ListAgents(ctx, domain.AgentFilter{})
	if err != nil {
		return nil, err
	}
	attendance, err := s.store.ListAttendanceBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(agents))
	for _, a := range attendance {
		counts[a.AgentID]++
	}

	stats := make([]*domain.AgentParticipation, 0, len(agents))
	for _, agent := range agents {
		stats = append(stats, &domain.AgentParticipation{
			AgentID:  agent.ID,
			FullName: agent.FullName(),
			Badge:    agent.Badge,
			Section:  agent.Section,
			Group:    agent.Group,
			Count:    counts[agent.ID],
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].FullName < stats[j].FullName
	})

	return stats, nil
}

// StatsBySection sums attendance per section, ordered by label.
func (s *Service) StatsBySection(ctx context.Context, start, end time.Time) ([]*domain.ParticipationTotal, error) {
	stats, err := s.AttendanceStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return sumByLabel(stats, func(p *domain.AgentParticipation) string { return string(p.Section) }), nil
}

// StatsByGroup sums attendance per group, ordered by label.
func (s *Service) StatsByGroup(ctx context.Context, start, end time.Time) ([]*domain.ParticipationTotal, error) {
	stats, err := s.AttendanceStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return sumByLabel(stats, func(p *domain.AgentParticipation) string { return string(p.Group) }), nil
}

// LeastActive returns the n agents with the fewest attendances in range,
// fewest first.
func (s *Service) LeastActive(ctx context.Context, start, end time.Time, n int) ([]*domain.AgentParticipation, error) {
	if n <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}

	stats, err := s.AttendanceStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count < stats[j].Count
		}
		return stats[i].FullName < stats[j].FullName
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n], nil
}

func sumByLabel(stats []*domain.AgentParticipation, label func(*domain.AgentParticipation) string) []*domain.ParticipationTotal {
	sums := make(map[string]int)
	for _, p := range stats {
		sums[label(p)] += p.Count
	}

	totals := make([]*domain.ParticipationTotal, 0, len(sums))
	for l, count := range sums {
		totals = append(totals, &domain.ParticipationTotal{Label: l, Count: count})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Label < totals[j].Label })

	return totals
}
