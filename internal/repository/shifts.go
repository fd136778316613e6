package repository

import (
	"context"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func (r *Repository) CreateShift(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO shifts (name, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{shift.Name, shift.StartTime, shift.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return mapError(err)
	}

	return nil
}

func (r *Repository) GetShift(ctx context.Context, id int64) (*domain.Shift, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT name, start_time, end_time, created_at, version
		FROM shifts WHERE id = $1
	`

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Name, &shift.StartTime, &shift.EndTime, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, mapError(err)
	}

	return shift, nil
}

func (r *Repository) ListShifts(ctx context.Context) ([]*domain.Shift, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, name, start_time, end_time, created_at, version
		FROM shifts ORDER BY start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		UPDATE shifts
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	args := []any{shift.Name, shift.StartTime, shift.EndTime, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return mapError(err)
	}

	return nil
}

func (r *Repository) DeleteShift(ctx context.Context, id int64) error {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
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

func (r *Repository) GetShiftsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Shift, error) {
	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	query := `
		SELECT id, name, start_time, end_time, created_at, version
		FROM shifts WHERE id = ANY(` + inClause(ids) + `)
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	shifts := make(map[int64]*domain.Shift, len(ids))
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts[shift.ID] = shift
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return shifts, nil
}
