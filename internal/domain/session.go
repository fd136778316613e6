package domain

import (
	"time"
)

// Session books an activity into a (date, shift) slot under a monitor. At most
// one session may exist per slot.
type Session struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	ShiftID    int64     `json:"shiftID"`
	ActivityID int64     `json:"activityID"`
	MonitorID  int64     `json:"monitorID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Attendance enrolls one agent in one session. The (session, agent) pair is
// unique.
type Attendance struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"sessionID"`
	AgentID   int64     `json:"agentID"`
	CreatedAt time.Time `json:"createdAt"`
}

// Placeholders rendered when a session references a shift, activity or monitor
// that no longer resolves. Calendar rows must survive dangling references.
const (
	UnknownShift    = "Unknown shift"
	UnknownActivity = "Unknown activity"
	UnknownMonitor  = "Unknown monitor"
	UnknownTime     = "??:??:??"
)

// SessionView is the denormalized calendar row.
type SessionView struct {
	ID            int64     `json:"id"`
	Date          time.Time `json:"date"`
	ShiftName     string    `json:"shiftName"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	ActivityName  string    `json:"activityName"`
	MonitorName   string    `json:"monitorName"`
	AttendeeCount int       `json:"attendeeCount"`
}

// AgentParticipation counts an agent's attendance inside a date range. Agents
// with no attendance appear with Count == 0 so least-active reporting is
// complete.
type AgentParticipation struct {
	AgentID  int64   `json:"agentID"`
	FullName string  `json:"fullName"`
	Badge    string  `json:"badge"`
	Section  Section `json:"section"`
	Group    Group   `json:"group"`
	Count    int     `json:"count"`
}

// ParticipationTotal aggregates attendance by section or group.
type ParticipationTotal struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
