package repository

import (
	"context"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// CreateSession inserts the booking. The schema's UNIQUE(date, shift_id)
// constraint arbitrates concurrent bookings of the same slot; its violation is
// the authoritative signal, there is no pre-check.
func (r *Repository) CreateSession(ctx context.Context, session *domain.Session) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO sessions (date, shift_id, activity_id, monitor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	args := []any{session.Date, session.ShiftID, session.ActivityID, session.MonitorID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&session.ID, &session.CreatedAt); err != nil {
		if uniqueViolation(err, "sessions_date_shift_id_key") {
			return domain.ErrSlotAlreadyBooked
		}
		if fkViolation(err) {
			// A referenced row vanished between the service's precondition
			// check and the insert.
			return domain.ErrNotFound
		}
		return mapError(err)
	}

	return nil
}

func (r *Repository) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT date, shift_id, activity_id, monitor_id, created_at
		FROM sessions WHERE id = $1
	`

	session := &domain.Session{
		ID: id,
	}

	dst := []any{&session.Date, &session.ShiftID, &session.ActivityID, &session.MonitorID, &session.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, mapError(err)
	}

	return session, nil
}

func (r *Repository) ListSessionsBetween(ctx context.Context, start, end time.Time) ([]*domain.Session, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, date, shift_id, activity_id, monitor_id, created_at
		FROM sessions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session := &domain.Session{}
		dst := []any{&session.ID, &session.Date, &session.ShiftID, &session.ActivityID, &session.MonitorID, &session.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return sessions, nil
}

// DeleteSessionCascade removes the session together with its attendance rows
// in a single transaction, so no observer sees one without the other.
func (r *Repository) DeleteSessionCascade(ctx context.Context, id int64) error {
	ctx, cancel := r.txCtx(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM attendance WHERE session_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return mapError(err)
	}

	query = `
		DELETE FROM sessions WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return mapError(err)
	}

	return nil
}

// CreateAttendance enrolls the agent; UNIQUE(session_id, agent_id) arbitrates
// concurrent duplicate enrollments.
func (r *Repository) CreateAttendance(ctx context.Context, attendance *domain.Attendance) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO attendance (session_id, agent_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, attendance.SessionID, attendance.AgentID).Scan(&attendance.ID, &attendance.CreatedAt); err != nil {
		if uniqueViolation(err, "attendance_session_id_agent_id_key") {
			return domain.ErrDuplicateAttendance
		}
		if fkViolation(err) {
			return domain.ErrNotFound
		}
		return mapError(err)
	}

	return nil
}

func (r *Repository) DeleteAttendance(ctx context.Context, sessionID, agentID int64) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		DELETE FROM attendance WHERE session_id = $1 AND agent_id = $2
	`

	result, err := r.dbpool.ExecContext(ctx, query, sessionID, agentID)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListSessionAttendees returns the roster in enrollment order (attendance row
// id ascending).
func (r *Repository) ListSessionAttendees(ctx context.Context, sessionID int64) ([]*domain.Agent, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT ag.id, ag.first_name, ag.last_name, ag.badge, ag.section, ag.group_name, ag.email, ag.phone, ag.is_monitor, ag.created_at, ag.version
		FROM attendance at
		JOIN agents ag ON ag.id = at.agent_id
		WHERE at.session_id = $1
		ORDER BY at.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		agent := &domain.Agent{}
		dst := []any{&agent.ID, &agent.FirstName, &agent.LastName, &agent.Badge, &agent.Section, &agent.Group, &agent.Email, &agent.Phone, &agent.IsMonitor, &agent.CreatedAt, &agent.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return agents, nil
}

func (r *Repository) CountAttendees(ctx context.Context, sessionIDs []int64) (map[int64]int, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT session_id, COUNT(*)
		FROM attendance
		WHERE session_id = ANY(` + inClause(sessionIDs) + `)
		GROUP BY session_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	counts := make(map[int64]int, len(sessionIDs))
	for rows.Next() {
		var sessionID int64
		var count int
		if err := rows.Scan(&sessionID, &count); err != nil {
			return nil, err
		}
		counts[sessionID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return counts, nil
}

// ListAttendanceBetween returns attendance rows whose session date falls in
// the inclusive range. Single join instead of the per-row lookups the
// dashboard used to need.
func (r *Repository) ListAttendanceBetween(ctx context.Context, start, end time.Time) ([]*domain.Attendance, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT at.id, at.session_id, at.agent_id, at.created_at
		FROM attendance at
		JOIN sessions se ON se.id = at.session_id
		WHERE se.date BETWEEN $1 AND $2
		ORDER BY at.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	attendance := make([]*domain.Attendance, 0)
	for rows.Next() {
		a := &domain.Attendance{}
		dst := []any{&a.ID, &a.SessionID, &a.AgentID, &a.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		attendance = append(attendance, a)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return attendance, nil
}
