package repository

import (
	"context"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (r *Repository) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO activities (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, activity.Name, activity.Description).Scan(&activity.ID, &activity.CreatedAt, &activity.Version); err != nil {
		if uniqueViolation(err, "activities_name_key") {
			return domain.ErrDuplicateActivityName
		}
		return mapError(err)
	}

	return nil
}

func (r *Repository) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT name, description, created_at, version
		FROM activities WHERE id = $1
	`

	activity := &domain.Activity{
		ID: id,
	}

	dst := []any{&activity.Name, &activity.Description, &activity.CreatedAt, &activity.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, mapError(err)
	}

	return activity, nil
}

func (r *Repository) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, created_at, version
		FROM activities ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity := &domain.Activity{}
		dst := []any{&activity.ID, &activity.Name, &activity.Description, &activity.CreatedAt, &activity.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return activities, nil
}

func (r *Repository) UpdateActivity(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		UPDATE activities
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING created_at, version
	`

	args := []any{activity.Name, activity.Description, activity.ID, activity.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&activity.CreatedAt, &activity.Version); err != nil {
		if uniqueViolation(err, "activities_name_key") {
			return domain.ErrDuplicateActivityName
		}
		return mapError(err)
	}

	return nil
}

func (r *Repository) DeleteActivity(ctx context.Context, id int64) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		DELETE FROM activities WHERE id = $1
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

func (r *Repository) GetActivitiesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, created_at, version
		FROM activities WHERE id = ANY(` + inClause(ids) + `)
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	activities := make(map[int64]*domain.Activity, len(ids))
	for rows.Next() {
		activity := &domain.Activity{}
		dst := []any{&activity.ID, &activity.Name, &activity.Description, &activity.CreatedAt, &activity.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		activities[activity.ID] = activity
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return activities, nil
}
