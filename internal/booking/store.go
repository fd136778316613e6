package booking

import (
	"context"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// Store is the storage collaborator behind the booking service. Implementations
// must enforce the uniqueness constraints atomically at insert time and report
// violations with the matching domain error; the service never relies on a
// check-then-insert round-trip for correctness.
//
// Contract for every method: domain.ErrNotFound when a point read or delete
// misses, domain.ErrStoreUnavailable (wrapped) when the backend failed or
// timed out before any state change.
type Store interface {
	// Catalog.
	CreateActivity(ctx context.Context, activity *domain.Activity) error
	GetActivity(ctx context.Context, id int64) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]*domain.Activity, error)
	UpdateActivity(ctx context.Context, activity *domain.Activity) error
	DeleteActivity(ctx context.Context, id int64) error

	CreateShift(ctx context.Context, shift *domain.Shift) error
	GetShift(ctx context.Context, id int64) (*domain.Shift, error)
	ListShifts(ctx context.Context) ([]*domain.Shift, error)
	UpdateShift(ctx context.Context, shift *domain.Shift) error
	DeleteShift(ctx context.Context, id int64) error

	// Roster.
	CreateAgent(ctx context.Context, agent *domain.Agent) error
	GetAgent(ctx context.Context, id int64) (*domain.Agent, error)
	GetAgentByBadge(ctx context.Context, badge string) (*domain.Agent, error)
	ListAgents(ctx context.Context, filter domain.AgentFilter) ([]*domain.Agent, error)
	UpdateAgent(ctx context.Context, agent *domain.Agent) error
	DeleteAgent(ctx context.Context, id int64) error

	// Booking. CreateSession fails with domain.ErrSlotAlreadyBooked and
	// CreateAttendance with domain.ErrDuplicateAttendance, atomically with
	// respect to concurrent identical inserts. DeleteSessionCascade removes the
	// session together with its attendance in one transaction.
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id int64) (*domain.Session, error)
	ListSessionsBetween(ctx context.Context, start, end time.Time) ([]*domain.Session, error)
	DeleteSessionCascade(ctx context.Context, id int64) error

	CreateAttendance(ctx context.Context, attendance *domain.Attendance) error
	DeleteAttendance(ctx context.Context, sessionID, agentID int64) error
	ListSessionAttendees(ctx context.Context, sessionID int64) ([]*domain.Agent, error)
	CountAttendees(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
	ListAttendanceBetween(ctx context.Context, start, end time.Time) ([]*domain.Attendance, error)

	// Batched lookups for the read side.
	GetShiftsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Shift, error)
	GetActivitiesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error)
	GetAgentsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Agent, error)
}
