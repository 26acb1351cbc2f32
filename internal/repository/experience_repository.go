package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placement-portal/experience-service/internal/domain"
)

const experienceColumns = `id::text, user_id::text, student_name, company, role, package, type, department,
               cgpa, cgpa_matters, rounds, questions, question_tags, preparation_duration,
               resources, timeline, difficulty_rating, would_recommend, got_selected, created_at`

type experienceRepository struct {
	pool *pgxpool.Pool
}

// NewExperienceRepository instantiates repository.
func NewExperienceRepository(pool *pgxpool.Pool) ExperienceRepository {
	return &experienceRepository{pool: pool}
}

func (r *experienceRepository) Create(ctx context.Context, exp *domain.Experience) error {
	const query = `
        INSERT INTO experiences (user_id, student_name, company, role, package, type, department,
            cgpa, cgpa_matters, rounds, questions, question_tags, preparation_duration,
            resources, timeline, difficulty_rating, would_recommend, got_selected, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id::text`
	userID, ok := pgID(exp.UserID)
	if !ok {
		return fmt.Errorf("invalid owner id %q", exp.UserID)
	}
	err := r.pool.QueryRow(ctx, query,
		userID,
		exp.StudentName,
		exp.Company,
		exp.Role,
		exp.Package,
		string(exp.Type),
		exp.Department,
		exp.CGPA,
		exp.CGPAMatters,
		exp.Rounds,
		exp.Questions,
		exp.QuestionTags,
		exp.PreparationDuration,
		exp.Resources,
		exp.Timeline,
		exp.DifficultyRating,
		exp.WouldRecommend,
		exp.GotSelected,
		exp.CreatedAt,
	).Scan(&exp.ID)
	return pgErr(err)
}

func (r *experienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	pid, ok := pgID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return fetchExperience(ctx, r.pool, `SELECT `+experienceColumns+` FROM experiences WHERE id=$1`, pid)
}

func (r *experienceRepository) List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, error) {
	clauses, args, ok := experienceClauses(filter)
	if !ok {
		return []domain.Experience{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM experiences WHERE %s ORDER BY created_at DESC, id ASC`,
		experienceColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExperiences(rows)
}

// Update applies the patch under a row lock so concurrent patches to the same
// record do not interleave.
func (r *experienceRepository) Update(ctx context.Context, id string, patch ExperiencePatch) (*domain.Experience, error) {
	pid, ok := pgID(id)
	if !ok {
		return nil, ErrNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	exp, err := fetchExperience(ctx, tx, `SELECT `+experienceColumns+` FROM experiences WHERE id=$1 FOR UPDATE`, pid)
	if err != nil {
		return nil, err
	}
	patch.Apply(exp)

	const query = `
        UPDATE experiences SET student_name=$1, company=$2, role=$3, package=$4, type=$5, department=$6,
            cgpa=$7, cgpa_matters=$8, rounds=$9, questions=$10, question_tags=$11, preparation_duration=$12,
            resources=$13, timeline=$14, difficulty_rating=$15, would_recommend=$16, got_selected=$17
        WHERE id=$18`
	cmd, err := tx.Exec(ctx, query,
		exp.StudentName,
		exp.Company,
		exp.Role,
		exp.Package,
		string(exp.Type),
		exp.Department,
		exp.CGPA,
		exp.CGPAMatters,
		exp.Rounds,
		exp.Questions,
		exp.QuestionTags,
		exp.PreparationDuration,
		exp.Resources,
		exp.Timeline,
		exp.DifficultyRating,
		exp.WouldRecommend,
		exp.GotSelected,
		pid,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return exp, nil
}

func (r *experienceRepository) Delete(ctx context.Context, id string) error {
	pid, ok := pgID(id)
	if !ok {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id=$1`, pid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// experienceClauses renders the filter as SQL predicates. ok is false when the
// filter cannot match any row, such as an owner id that is not a UUID.
func experienceClauses(filter ExperienceFilter) (clauses []string, args []any, ok bool) {
	clauses = []string{"1=1"}

	if filter.UserID != nil {
		userID, valid := pgID(*filter.UserID)
		if !valid {
			return nil, nil, false
		}
		args = append(args, userID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Company != nil {
		args = append(args, *filter.Company)
		clauses = append(clauses, fmt.Sprintf("strpos(lower(company), lower($%d)) > 0", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.MinPackage != nil || filter.MaxPackage != nil {
		clauses = append(clauses, "package IS NOT NULL")
	}
	if filter.MinPackage != nil {
		args = append(args, *filter.MinPackage)
		clauses = append(clauses, fmt.Sprintf("package >= $%d", len(args)))
	}
	if filter.MaxPackage != nil {
		args = append(args, *filter.MaxPackage)
		clauses = append(clauses, fmt.Sprintf("package <= $%d", len(args)))
	}
	if filter.Selected != nil {
		args = append(args, *filter.Selected)
		clauses = append(clauses, fmt.Sprintf("got_selected=$%d", len(args)))
	}
	return clauses, args, true
}

func fetchExperience(ctx context.Context, q rowQuerier, query string, arg any) (*domain.Experience, error) {
	exp, err := scanExperience(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, pgErr(err)
	}
	return exp, nil
}

func scanExperiences(rows pgx.Rows) ([]domain.Experience, error) {
	result := []domain.Experience{}
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *exp)
	}
	return result, rows.Err()
}

func scanExperience(row pgx.Row) (*domain.Experience, error) {
	var exp domain.Experience
	var expType string
	if err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.StudentName,
		&exp.Company,
		&exp.Role,
		&exp.Package,
		&expType,
		&exp.Department,
		&exp.CGPA,
		&exp.CGPAMatters,
		&exp.Rounds,
		&exp.Questions,
		&exp.QuestionTags,
		&exp.PreparationDuration,
		&exp.Resources,
		&exp.Timeline,
		&exp.DifficultyRating,
		&exp.WouldRecommend,
		&exp.GotSelected,
		&exp.CreatedAt,
	); err != nil {
		return nil, err
	}
	exp.Type = domain.ExperienceType(expType)
	return &exp, nil
}
