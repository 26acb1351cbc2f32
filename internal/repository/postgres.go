package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPostgresStore returns repositories backed by a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:       NewUserRepository(pool),
		Experiences: NewExperienceRepository(pool),
		Discussions: NewDiscussionRepository(pool),
		Health:      pool,
	}
}

// pgID validates an identifier before it reaches a uuid column.
func pgID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func pgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
