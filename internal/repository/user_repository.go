package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placement-portal/experience-service/internal/domain"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, name, department, graduation_year, profile_picture, is_verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id::text`

	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Department,
		user.GraduationYear,
		user.ProfilePicture,
		user.IsVerified,
		user.CreatedAt,
	).Scan(&user.ID)
	return pgErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id::text, email, password_hash, name, department, graduation_year, profile_picture, is_verified, created_at
        FROM users WHERE id=$1`

	pid, ok := pgID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return r.fetchSingle(ctx, query, pid)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id::text, email, password_hash, name, department, graduation_year, profile_picture, is_verified, created_at
        FROM users WHERE lower(email)=lower($1)`

	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Department,
		&user.GraduationYear,
		&user.ProfilePicture,
		&user.IsVerified,
		&user.CreatedAt,
	); err != nil {
		return nil, pgErr(err)
	}
	return &user, nil
}
