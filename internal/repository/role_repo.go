package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-path/internal/domain"
)

// RoleRepository define el contrato de lectura del corpus de roles.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]domain.CareerRole, error)
}

// PgRoleRepository implementa RoleRepository usando pgxpool.
type PgRoleRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoleRepository(pool *pgxpool.Pool) *PgRoleRepository {
	return &PgRoleRepository{pool: pool}
}

// ListRoles devuelve los roles en el orden de carga; ese orden decide los empates del ranking.
func (r *PgRoleRepository) ListRoles(ctx context.Context) ([]domain.CareerRole, error) {
	const query = `
		SELECT career_cluster, career_role, required_skills, education_level_required,
			avg_salary_range, job_outlook, growth_path, learning_resources,
			entrance_exams, field_for_admission, online_resources_links, free_certifications
		FROM career_roles
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRoles(rows)
}

func scanRoles(rows pgxRows) ([]domain.CareerRole, error) {
	var roles []domain.CareerRole
	for rows.Next() {
		var (
			role     domain.CareerRole
			optional [10]sql.NullString
		)
		if err := rows.Scan(
			&role.Cluster,
			&role.Role,
			&optional[0],
			&optional[1],
			&optional[2],
			&optional[3],
			&optional[4],
			&optional[5],
			&optional[6],
			&optional[7],
			&optional[8],
			&optional[9],
		); err != nil {
			return nil, err
		}
		targets := []*string{
			&role.RequiredSkills,
			&role.EducationRequired,
			&role.SalaryRange,
			&role.Outlook,
			&role.GrowthPath,
			&role.LearningResources,
			&role.EntranceExams,
			&role.FieldForAdmission,
			&role.OnlineResourcesLinks,
			&role.FreeCertifications,
		}
		for i, v := range optional {
			if v.Valid {
				*targets[i] = v.String
			}
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// pgxRows es la parte de pgx.Rows que usa scanRoles; permite tests sin base.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
