package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/javialvarezdrive/gym-policia-local/internal/config"
	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// Repository implements booking.Store against Postgres. The uniqueness rules
// the booking engine depends on live in the schema (see migrations/init.sql);
// this layer translates constraint violations into the domain error taxonomy
// so callers never see driver errors.
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) txCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}

// uniqueViolation reports whether err is a unique-key violation of the named
// constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// fkViolation reports whether err is a foreign-key violation.
func fkViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// inClause renders a bigint array literal for ANY() filters. The values are
// numeric, so inlining avoids driver-specific array binding.
func inClause(ids []int64) string {
	var b strings.Builder
	b.WriteString("ARRAY[")
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteString("]::bigint[]")
	return b.String()
}

// mapError converts driver-level failures shared by every query: a missing row
// and a timed-out or unreachable store. Timeouts surface as
// domain.ErrStoreUnavailable because the statement never committed; callers
// may retry idempotent operations.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	default:
		return err
	}
}
