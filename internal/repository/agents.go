package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (r *Repository) CreateAgent(ctx context.Context, agent *domain.Agent) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO agents (first_name, last_name, badge, section, group_name, email, phone, is_monitor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{agent.FirstName, agent.LastName, agent.Badge, agent.Section, agent.Group, agent.Email, agent.Phone, agent.IsMonitor}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&agent.ID, &agent.CreatedAt, &agent.Version); err != nil {
		if uniqueViolation(err, "agents_badge_key") {
			return domain.ErrDuplicateBadge
		}
		return mapError(err)
	}

	return nil
}

func (r *Repository) GetAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT first_name, last_name, badge, section, group_name, email, phone, is_monitor, created_at, version
		FROM agents WHERE id = $1
	`

	agent := &domain.Agent{
		ID: id,
	}

	dst := []any{&agent.FirstName, &agent.LastName, &agent.Badge, &agent.Section, &agent.Group, &agent.Email, &agent.Phone, &agent.IsMonitor, &agent.CreatedAt, &agent.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, mapError(err)
	}

	return agent, nil
}

func (r *Repository) GetAgentByBadge(ctx context.Context, badge string) (*domain.Agent, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, first_name, last_name, section, group_name, email, phone, is_monitor, created_at, version
		FROM agents WHERE badge = $1
	`

	agent := &domain.Agent{
		Badge: badge,
	}

	dst := []any{&agent.ID, &agent.FirstName, &agent.LastName, &agent.Section, &agent.Group, &agent.Email, &agent.Phone, &agent.IsMonitor, &agent.CreatedAt, &agent.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, badge).Scan(dst...); err != nil {
		return nil, mapError(err)
	}

	return agent, nil
}

func (r *Repository) ListAgents(ctx context.Context, filter domain.AgentFilter) ([]*domain.Agent, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var b strings.Builder
	b.WriteString(`
		SELECT id, first_name, last_name, badge, section, group_name, email, phone, is_monitor, created_at, version
		FROM agents WHERE TRUE
	`)

	args := []any{}
	if len(filter.Sections) > 0 {
		placeholders := make([]string, 0, len(filter.Sections))
		for _, section := range filter.Sections {
			args = append(args, string(section))
			placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
		}
		b.WriteString(" AND section IN (" + strings.Join(placeholders, ", ") + ")")
	}
	if len(filter.Groups) > 0 {
		placeholders := make([]string, 0, len(filter.Groups))
		for _, group := range filter.Groups {
			args = append(args, string(group))
			placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
		}
		b.WriteString(" AND group_name IN (" + strings.Join(placeholders, ", ") + ")")
	}
	if filter.MonitorsOnly {
		b.WriteString(" AND is_monitor")
	}
	b.WriteString(" ORDER BY last_name, first_name")

	rows, err := r.dbpool.QueryContext(ctx, b.String(), args...)
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

func (r *Repository) UpdateAgent(ctx context.Context, agent *domain.Agent) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		UPDATE agents
		SET
			first_name = $1,
			last_name = $2,
			section = $3,
			group_name = $4,
			email = $5,
			phone = $6,
			is_monitor = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING badge, created_at, version
	`

	args := []any{agent.FirstName, agent.LastName, agent.Section, agent.Group, agent.Email, agent.Phone, agent.IsMonitor, agent.ID, agent.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&agent.Badge, &agent.CreatedAt, &agent.Version); err != nil {
		return mapError(err)
	}

	return nil
}

func (r *Repository) DeleteAgent(ctx context.Context, id int64) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		DELETE FROM agents WHERE id = $1
	`

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		if fkViolation(err) {
			return domain.ErrInUse
		}
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

func (r *Repository) GetAgentsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Agent, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, first_name, last_name, badge, section, group_name, email, phone, is_monitor, created_at, version
		FROM agents WHERE id = ANY(` + inClause(ids) + `)
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	agents := make(map[int64]*domain.Agent, len(ids))
	for rows.Next() {
		agent := &domain.Agent{}
		dst := []any{&agent.ID, &agent.FirstName, &agent.LastName, &agent.Badge, &agent.Section, &agent.Group, &agent.Email, &agent.Phone, &agent.IsMonitor, &agent.CreatedAt, &agent.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		agents[agent.ID] = agent
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return agents, nil
}
