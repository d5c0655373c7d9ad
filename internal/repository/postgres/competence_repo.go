package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"recruit-portal-api/internal/domain"
)

type competenceRepo struct {
	db *pgxpool.Pool
}

func NewCompetenceRepository(db *pgxpool.Pool) domain.CompetenceRepository {
	return &competenceRepo{db: db}
}

func (r *competenceRepo) List(ctx context.Context) ([]domain.Competence, error) {
	query := `SELECT id, name FROM competence ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var competences []domain.Competence
	for rows.Next() {
		var c domain.Competence
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		competences = append(competences, c)
	}
	return competences, rows.Err()
}

func (r *competenceRepo) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	query := `SELECT COUNT(DISTINCT id) FROM competence WHERE id = ANY($1)`
	var count int
	err := r.db.QueryRow(ctx, query, ids).Scan(&count)
	return count, err
}
