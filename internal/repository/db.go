package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var ErrNotFound = errors.New("record not found")

// SQLSTATE codes the callers care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeIntegrityViolation  = "23000"

	slugPerDateConstraint = "posts_slug_publish_date_key"
)

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	e, ok := pgCode(err)
	return ok && e.Code == codeUniqueViolation
}

// IsSlugTaken reports whether err is the slug-per-publish-date constraint firing.
func IsSlugTaken(err error) bool {
	e, ok := pgCode(err)
	return ok && e.Code == codeUniqueViolation && e.ConstraintName == slugPerDateConstraint
}

func IsForeignKeyViolation(err error) bool {
	e, ok := pgCode(err)
	return ok && e.Code == codeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	e, ok := pgCode(err)
	return ok && e.Code == codeCheckViolation
}

// IsIntegrityViolation matches any SQLSTATE in class 23.
func IsIntegrityViolation(err error) bool {
	e, ok := pgCode(err)
	return ok && len(e.Code) == 5 && e.Code[:2] == codeIntegrityViolation[:2]
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func expectOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
