package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placement-portal/experience-service/internal/domain"
)

type discussionRepository struct {
	pool *pgxpool.Pool
}

// NewDiscussionRepository builds repository.
func NewDiscussionRepository(pool *pgxpool.Pool) DiscussionRepository {
	return &discussionRepository{pool: pool}
}

func (r *discussionRepository) Create(ctx context.Context, d *domain.Discussion) error {
	const query = `
        INSERT INTO discussions (user_id, company, message, created_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id::text`
	userID, ok := pgID(d.UserID)
	if !ok {
		return fmt.Errorf("invalid owner id %q", d.UserID)
	}
	return pgErr(r.pool.QueryRow(ctx, query, userID, d.Company, d.Message, d.CreatedAt).Scan(&d.ID))
}

func (r *discussionRepository) GetByID(ctx context.Context, id string) (*domain.Discussion, error) {
	const query = `
        SELECT id::text, user_id::text, company, message, created_at
        FROM discussions WHERE id=$1`
	pid, ok := pgID(id)
	if !ok {
		return nil, ErrNotFound
	}
	d, err := scanDiscussion(r.pool.QueryRow(ctx, query, pid))
	if err != nil {
		return nil, pgErr(err)
	}
	return d, nil
}

func (r *discussionRepository) ListByCompany(ctx context.Context, company string) ([]domain.Discussion, error) {
	const query = `
        SELECT id::text, user_id::text, company, message, created_at
        FROM discussions WHERE company=$1 ORDER BY created_at DESC, id ASC`
	rows, err := r.pool.Query(ctx, query, company)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Discussion{}
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *discussionRepository) UpdateMessage(ctx context.Context, id, message string) (*domain.Discussion, error) {
	const query = `
        UPDATE discussions SET message=$1 WHERE id=$2
        RETURNING id::text, user_id::text, company, message, created_at`
	pid, ok := pgID(id)
	if !ok {
		return nil, ErrNotFound
	}
	d, err := scanDiscussion(r.pool.QueryRow(ctx, query, message, pid))
	if err != nil {
		return nil, pgErr(err)
	}
	return d, nil
}

func (r *discussionRepository) Delete(ctx context.Context, id string) error {
	pid, ok := pgID(id)
	if !ok {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM discussions WHERE id=$1`, pid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDiscussion(row pgx.Row) (*domain.Discussion, error) {
	var d domain.Discussion
	if err := row.Scan(&d.ID, &d.UserID, &d.Company, &d.Message, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
