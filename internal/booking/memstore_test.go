package booking

import (
	"context"
	"sync"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// memStore is an in-memory Store with the same constraint semantics as the
// postgres repository: uniqueness is checked under one lock together with the
// insert, so concurrent duplicate inserts race exactly like they do against
// the database's unique indexes.
type memStore struct {
	mu sync.Mutex

	activities map[int64]*domain.Activity
	shifts     map[int64]*domain.Shift
	agents     map[int64]*domain.Agent
	sessions   map[int64]*domain.Session
	attendance []*domain.Attendance

	nextID int64

	// forcedErr, when set, is returned by every method. Used to simulate an
	// unreachable backend.
	forcedErr error
}

func newMemStore() *memStore {
	return &memStore{
		activities: make(map[int64]*domain.Activity),
		shifts:     make(map[int64]*domain.Shift),
		agents:     make(map[int64]*domain.Agent),
		sessions:   make(map[int64]*domain.Session),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateActivity(_ context.Context, activity *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	for _, a := range m.activities {
		if a.Name == activity.Name {
			return domain.ErrDuplicateActivityName
		}
	}
	activity.ID = m.id()
	activity.CreatedAt = time.Now()
	activity.Version = 1
	m.activities[activity.ID] = copyActivity(activity)
	return nil
}

func (m *memStore) GetActivity(_ context.Context, id int64) (*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	activity, ok := m.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyActivity(activity), nil
}

func (m *memStore) ListActivities(_ context.Context) ([]*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	activities := make([]*domain.Activity, 0, len(m.activities))
	for _, a := range m.activities {
		activities = append(activities, copyActivity(a))
	}
	return activities, nil
}

func (m *memStore) UpdateActivity(_ context.Context, activity *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.activities[activity.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, a := range m.activities {
		if id != activity.ID && a.Name == activity.Name {
			return domain.ErrDuplicateActivityName
		}
	}
	activity.Version++
	m.activities[activity.ID] = copyActivity(activity)
	return nil
}

func (m *memStore) DeleteActivity(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.activities[id]; !ok {
		return domain.ErrNotFound
	}
	for _, s := range m.sessions {
		if s.ActivityID == id {
			return domain.ErrInUse
		}
	}
	delete(m.activities, id)
	return nil
}

func (m *memStore) CreateShift(_ context.Context, shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	shift.ID = m.id()
	shift.CreatedAt = time.Now()
	shift.Version = 1
	m.shifts[shift.ID] = copyShift(shift)
	return nil
}

func (m *memStore) GetShift(_ context.Context, id int64) (*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	shift, ok := m.shifts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyShift(shift), nil
}

func (m *memStore) ListShifts(_ context.Context) ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	shifts := make([]*domain.Shift, 0, len(m.shifts))
	for _, s := range m.shifts {
		shifts = append(shifts, copyShift(s))
	}
	return shifts, nil
}

func (m *memStore) UpdateShift(_ context.Context, shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.shifts[shift.ID]; !ok {
		return domain.ErrNotFound
	}
	shift.Version++
	m.shifts[shift.ID] = copyShift(shift)
	return nil
}

func (m *memStore) DeleteShift(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.shifts[id]; !ok {
		return domain.ErrNotFound
	}
	for _, s := range m.sessions {
		if s.ShiftID == id {
			return domain.ErrInUse
		}
	}
	delete(m.shifts, id)
	return nil
}

func (m *memStore) CreateAgent(_ context.Context, agent *domain.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	for _, a := range m.agents {
		if a.Badge == agent.Badge {
			return domain.ErrDuplicateBadge
		}
	}
	agent.ID = m.id()
	agent.CreatedAt = time.Now()
	agent.Version = 1
	m.agents[agent.ID] = copyAgent(agent)
	return nil
}

func (m *memStore) GetAgent(_ context.Context, id int64) (*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	agent, ok := m.agents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAgent(agent), nil
}

func (m *memStore) GetAgentByBadge(_ context.Context, badge string) (*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	for _, a := range m.agents {
		if a.Badge == badge {
			return copyAgent(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListAgents(_ context.Context, filter domain.AgentFilter) ([]*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	agents := make([]*domain.Agent, 0, len(m.agents))
	for _, a := range m.agents {
		if len(filter.Sections) > 0 && !containsSection(filter.Sections, a.Section) {
			continue
		}
		if len(filter.Groups) > 0 && !containsGroup(filter.Groups, a.Group) {
			continue
		}
		if filter.MonitorsOnly && !a.IsMonitor {
			continue
		}
		agents = append(agents, copyAgent(a))
	}
	return agents, nil
}

func (m *memStore) UpdateAgent(_ context.Context, agent *domain.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.agents[agent.ID]; !ok {
		return domain.ErrNotFound
	}
	agent.Version++
	m.agents[agent.ID] = copyAgent(agent)
	return nil
}

func (m *memStore) DeleteAgent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.agents[id]; !ok {
		return domain.ErrNotFound
	}
	for _, s := range m.sessions {
		if s.MonitorID == id {
			return domain.ErrInUse
		}
	}
	for _, a := range m.attendance {
		if a.AgentID == id {
			return domain.ErrInUse
		}
	}
	delete(m.agents, id)
	return nil
}

func (m *memStore) CreateSession(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	for _, s := range m.sessions {
		if s.Date.Equal(session.Date) && s.ShiftID == session.ShiftID {
			return domain.ErrSlotAlreadyBooked
		}
	}
	session.ID = m.id()
	session.CreatedAt = time.Now()
	m.sessions[session.ID] = copySession(session)
	return nil
}

func (m *memStore) GetSession(_ context.Context, id int64) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copySession(session), nil
}

func (m *memStore) ListSessionsBetween(_ context.Context, start, end time.Time) ([]*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	sessions := []*domain.Session{}
	for _, s := range m.sessions {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		sessions = append(sessions, copySession(s))
	}
	return sessions, nil
}

func (m *memStore) DeleteSessionCascade(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	kept := m.attendance[:0]
	for _, a := range m.attendance {
		if a.SessionID != id {
			kept = append(kept, a)
		}
	}
	m.attendance = kept
	delete(m.sessions, id)
	return nil
}

func (m *memStore) CreateAttendance(_ context.Context, attendance *domain.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if _, ok := m.sessions[attendance.SessionID]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range m.attendance {
		if a.SessionID == attendance.SessionID && a.AgentID == attendance.AgentID {
			return domain.ErrDuplicateAttendance
		}
	}
	attendance.ID = m.id()
	attendance.CreatedAt = time.Now()
	m.attendance = append(m.attendance, copyAttendance(attendance))
	return nil
}

func (m *memStore) DeleteAttendance(_ context.Context, sessionID, agentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}
	for i, a := range m.attendance {
		if a.SessionID == sessionID && a.AgentID == agentID {
			m.attendance = append(m.attendance[:i], m.attendance[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListSessionAttendees(_ context.Context, sessionID int64) ([]*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	agents := []*domain.Agent{}
	for _, a := range m.attendance {
		if a.SessionID != sessionID {
			continue
		}
		if agent, ok := m.agents[a.AgentID]; ok {
			agents = append(agents, copyAgent(agent))
		}
	}
	return agents, nil
}

func (m *memStore) CountAttendees(_ context.Context, sessionIDs []int64) (map[int64]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	counts := make(map[int64]int)
	for _, a := range m.attendance {
		for _, id := range sessionIDs {
			if a.SessionID == id {
				counts[id]++
				break
			}
		}
	}
	return counts, nil
}

func (m *memStore) ListAttendanceBetween(_ context.Context, start, end time.Time) ([]*domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	attendance := []*domain.Attendance{}
	for _, a := range m.attendance {
		session, ok := m.sessions[a.SessionID]
		if !ok {
			continue
		}
		if session.Date.Before(start) || session.Date.After(end) {
			continue
		}
		attendance = append(attendance, copyAttendance(a))
	}
	return attendance, nil
}

func (m *memStore) GetShiftsByIDs(_ context.Context, ids []int64) (map[int64]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	shifts := make(map[int64]*domain.Shift)
	for _, id := range ids {
		if s, ok := m.shifts[id]; ok {
			shifts[id] = copyShift(s)
		}
	}
	return shifts, nil
}

func (m *memStore) GetActivitiesByIDs(_ context.Context, ids []int64) (map[int64]*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	activities := make(map[int64]*domain.Activity)
	for _, id := range ids {
		if a, ok := m.activities[id]; ok {
			activities[id] = copyActivity(a)
		}
	}
	return activities, nil
}

func (m *memStore) GetAgentsByIDs(_ context.Context, ids []int64) (map[int64]*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	agents := make(map[int64]*domain.Agent)
	for _, id := range ids {
		if a, ok := m.agents[id]; ok {
			agents[id] = copyAgent(a)
		}
	}
	return agents, nil
}

// removeAgentUnchecked drops an agent row directly, bypassing the in-use
// check, to simulate a roster row that vanished underneath existing sessions.
func (m *memStore) removeAgentUnchecked(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.agents, id)
}

func (m *memStore) removeActivityUnchecked(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.activities, id)
}

func (m *memStore) setForcedErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedErr = err
}

func copyActivity(a *domain.Activity) *domain.Activity {
	c := *a
	return &c
}

func copyShift(s *domain.Shift) *domain.Shift {
	c := *s
	return &c
}

func copyAgent(a *domain.Agent) *domain.Agent {
	c := *a
	return &c
}

func copySession(s *domain.Session) *domain.Session {
	c := *s
	return &c
}

func copyAttendance(a *domain.Attendance) *domain.Attendance {
	c := *a
	return &c
}

func containsSection(sections []domain.Section, s domain.Section) bool {
	for _, candidate := range sections {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsGroup(groups []domain.Group, g domain.Group) bool {
	for _, candidate := range groups {
		if candidate == g {
			return true
		}
	}
	return false
}
